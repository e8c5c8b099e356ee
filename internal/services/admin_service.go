// internal/services/admin_service.go
package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inkrights/ledger-backend/internal/apperrors"
	"github.com/inkrights/ledger-backend/internal/auth"
	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

type CommandStatus string

const (
	CommandStatusPending   CommandStatus = "pending"
	CommandStatusExecuted  CommandStatus = "executed"
	CommandStatusCancelled CommandStatus = "cancelled"
)

// PendingCommand is one queued admin mutation. The command only becomes
// executable once the configured minimum delay has elapsed, and may be
// cancelled during the wait window.
type PendingCommand struct {
	ID         uint64        `json:"id"`
	Kind       string        `json:"kind"`
	Params     models.JSONB  `json:"params,omitempty"`
	ProposedAt time.Time     `json:"proposed_at"`
	ReadyAt    time.Time     `json:"ready_at"`
	Status     CommandStatus `json:"status"`

	apply func(ctx context.Context) error
}

// AdminService is the two-phase (propose, wait, execute) command queue
// wrapping privileged setters in deployments that configure a timelock
// delay. A zero delay makes commands executable immediately.
type AdminService struct {
	mu       sync.Mutex
	delay    time.Duration
	nextID   uint64
	commands map[uint64]*PendingCommand
	events   store.EventStore
	now      func() time.Time
	log      *logrus.Entry
}

func NewAdminService(events store.EventStore, delay time.Duration) *AdminService {
	return &AdminService{
		delay:    delay,
		nextID:   1,
		commands: make(map[uint64]*PendingCommand),
		events:   events,
		now:      time.Now,
		log:      logrus.WithField("component", "admin_queue"),
	}
}

// Delay returns the configured minimum wait between propose and execute.
func (s *AdminService) Delay() time.Duration {
	return s.delay
}

// SetNow overrides the queue's clock. Tests use it to step time.
func (s *AdminService) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Propose queues an admin mutation for later execution.
func (s *AdminService) Propose(ctx context.Context, admin auth.AdminCapability, kind string, params models.JSONB, apply func(ctx context.Context) error) (*PendingCommand, error) {
	if !admin.Valid() {
		return nil, apperrors.Unauthorized("admin capability required")
	}
	if kind == "" || apply == nil {
		return nil, apperrors.InvalidArgument("command kind and action are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	cmd := &PendingCommand{
		ID:         s.nextID,
		Kind:       kind,
		Params:     params,
		ProposedAt: now,
		ReadyAt:    now.Add(s.delay),
		Status:     CommandStatusPending,
		apply:      apply,
	}
	s.nextID++
	s.commands[cmd.ID] = cmd

	if err := s.events.Append(ctx, &models.LedgerEvent{
		Type:      models.EventCommandProposed,
		Actor:     admin.Address(),
		NewValues: models.JSONB{"command_id": cmd.ID, "kind": kind, "ready_at": cmd.ReadyAt},
	}); err != nil {
		return nil, apperrors.Internal(err, "failed to append proposal event")
	}

	s.log.WithFields(logrus.Fields{
		"command_id": cmd.ID,
		"kind":       kind,
		"ready_at":   cmd.ReadyAt,
	}).Info("Admin command proposed")

	return cmd, nil
}

// Execute runs a pending command after its delay has elapsed.
func (s *AdminService) Execute(ctx context.Context, admin auth.AdminCapability, id uint64) error {
	if !admin.Valid() {
		return apperrors.Unauthorized("admin capability required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, ok := s.commands[id]
	if !ok {
		return apperrors.NotFound("command %d not found", id)
	}
	if cmd.Status != CommandStatusPending {
		return apperrors.FailedPrecondition("command %d is %s", id, cmd.Status)
	}
	if s.now().UTC().Before(cmd.ReadyAt) {
		return apperrors.FailedPrecondition("command %d is not executable before %s", id, cmd.ReadyAt)
	}

	if err := cmd.apply(ctx); err != nil {
		return err
	}
	cmd.Status = CommandStatusExecuted

	if err := s.events.Append(ctx, &models.LedgerEvent{
		Type:      models.EventCommandExecuted,
		Actor:     admin.Address(),
		NewValues: models.JSONB{"command_id": cmd.ID, "kind": cmd.Kind},
	}); err != nil {
		return apperrors.Internal(err, "failed to append execution event")
	}

	s.log.WithFields(logrus.Fields{"command_id": id, "kind": cmd.Kind}).Info("Admin command executed")
	return nil
}

// Cancel withdraws a still-pending command.
func (s *AdminService) Cancel(ctx context.Context, admin auth.AdminCapability, id uint64) error {
	if !admin.Valid() {
		return apperrors.Unauthorized("admin capability required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, ok := s.commands[id]
	if !ok {
		return apperrors.NotFound("command %d not found", id)
	}
	if cmd.Status != CommandStatusPending {
		return apperrors.FailedPrecondition("command %d is %s", id, cmd.Status)
	}
	cmd.Status = CommandStatusCancelled

	if err := s.events.Append(ctx, &models.LedgerEvent{
		Type:      models.EventCommandCancelled,
		Actor:     admin.Address(),
		NewValues: models.JSONB{"command_id": cmd.ID, "kind": cmd.Kind},
	}); err != nil {
		return apperrors.Internal(err, "failed to append cancellation event")
	}

	s.log.WithFields(logrus.Fields{"command_id": id, "kind": cmd.Kind}).Info("Admin command cancelled")
	return nil
}

// List returns all commands ordered by ID.
func (s *AdminService) List(ctx context.Context, admin auth.AdminCapability) ([]PendingCommand, error) {
	if !admin.Valid() {
		return nil, apperrors.Unauthorized("admin capability required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PendingCommand, 0, len(s.commands))
	for _, cmd := range s.commands {
		out = append(out, *cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
