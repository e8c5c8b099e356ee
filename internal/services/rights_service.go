// internal/services/rights_service.go
package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inkrights/ledger-backend/internal/apperrors"
	"github.com/inkrights/ledger-backend/internal/auth"
	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

// RightsService owns per-content ownership, single-spender approval and
// operator-wide approval. Mutating operations are serialized by a single
// mutex and perform every check before the first write, so a failed call
// leaves state untouched.
type RightsService struct {
	mu              sync.Mutex
	rights          store.RightsStore
	settings        store.SettingsStore
	events          store.EventStore
	runner          store.Transactor
	contentRegistry models.Address
	log             *logrus.Entry
}

func NewRightsService(rights store.RightsStore, settings store.SettingsStore, events store.EventStore, runner store.Transactor) (*RightsService, error) {
	s := &RightsService{
		rights:   rights,
		settings: settings,
		events:   events,
		runner:   runner,
		log:      logrus.WithField("component", "rights_registry"),
	}

	value, ok, err := settings.Get(context.Background(), store.SettingContentRegistryAddress)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to load content registry address")
	}
	if ok {
		addr, err := uuid.Parse(value)
		if err != nil {
			return nil, apperrors.Internal(err, "corrupt content registry address setting")
		}
		s.contentRegistry = addr
	}
	return s, nil
}

// SetContentRegistryAddress establishes the single caller allowed to
// assign initial ownership. Settable once and updatable thereafter; an
// admin capability is required.
func (s *RightsService) SetContentRegistryAddress(ctx context.Context, admin auth.AdminCapability, addr models.Address) error {
	if !admin.Valid() {
		return apperrors.Unauthorized("admin capability required")
	}
	if models.IsZeroAddress(addr) {
		return apperrors.InvalidArgument("content registry address is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.contentRegistry
	if err := store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.settings.Set(ctx, store.SettingContentRegistryAddress, addr.String()); err != nil {
			return apperrors.Internal(err, "failed to persist content registry address")
		}
		return s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventRegistryAddressSet,
			Actor:     admin.Address(),
			OldValues: models.JSONB{"address": old.String()},
			NewValues: models.JSONB{"address": addr.String()},
		})
	}); err != nil {
		return err
	}
	s.contentRegistry = addr
	return nil
}

// CheckAssigner reports whether caller would be accepted by
// AssignInitialOwnership. Used by the content registry to fail a
// registration before any record is written.
func (s *RightsService) CheckAssigner(ctx context.Context, caller models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if models.IsZeroAddress(s.contentRegistry) || caller != s.contentRegistry {
		return apperrors.Unauthorized("only the content registry may assign initial ownership")
	}
	return nil
}

// AssignInitialOwnership sets the first owner of a content ID. Only the
// configured content registry collaborator may call it, and only once
// per content ID.
func (s *RightsService) AssignInitialOwnership(ctx context.Context, caller models.Address, contentID uint64, creator models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if models.IsZeroAddress(s.contentRegistry) || caller != s.contentRegistry {
		return apperrors.Unauthorized("only the content registry may assign initial ownership")
	}
	if models.IsZeroAddress(creator) {
		return apperrors.InvalidArgument("creator is required")
	}

	entry, err := s.rights.Entry(ctx, contentID)
	if err != nil {
		return apperrors.Internal(err, "failed to load ownership entry")
	}
	if !models.IsZeroAddress(entry.Owner) {
		return apperrors.AlreadyOwned("content %d already has an owner", contentID)
	}

	return store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.rights.PutEntry(ctx, models.OwnershipEntry{
			ContentID: contentID,
			Owner:     creator,
		}); err != nil {
			return apperrors.Internal(err, "failed to store ownership entry")
		}

		return s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventOwnershipTransfer,
			Actor:     caller,
			ContentID: &contentID,
			OldValues: models.JSONB{"owner": models.ZeroAddress.String()},
			NewValues: models.JSONB{"owner": creator.String()},
		})
	})
}

// OwnerOf returns the current owner, or NotFound for unowned IDs.
func (s *RightsService) OwnerOf(ctx context.Context, contentID uint64) (models.Address, error) {
	entry, err := s.rights.Entry(ctx, contentID)
	if err != nil {
		return models.ZeroAddress, apperrors.Internal(err, "failed to load ownership entry")
	}
	if models.IsZeroAddress(entry.Owner) {
		return models.ZeroAddress, apperrors.NotFound("content %d has no owner", contentID)
	}
	return entry.Owner, nil
}

// Approve grants (or replaces) the single-spender approval for one
// content ID. Callable by the owner or an approved operator of the
// owner. Approving the owner itself is rejected.
func (s *RightsService) Approve(ctx context.Context, caller, spender models.Address, contentID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.rights.Entry(ctx, contentID)
	if err != nil {
		return apperrors.Internal(err, "failed to load ownership entry")
	}
	if models.IsZeroAddress(entry.Owner) {
		return apperrors.NotFound("content %d has no owner", contentID)
	}

	if caller != entry.Owner {
		enabled, err := s.rights.Operator(ctx, entry.Owner, caller)
		if err != nil {
			return apperrors.Internal(err, "failed to load operator approval")
		}
		if !enabled {
			return apperrors.Unauthorized("caller is not owner or operator of content %d", contentID)
		}
	}
	if spender == entry.Owner {
		return apperrors.InvalidArgument("cannot approve the current owner")
	}

	old := entry.ApprovedSpender
	entry.ApprovedSpender = spender
	return store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.rights.PutEntry(ctx, entry); err != nil {
			return apperrors.Internal(err, "failed to store approval")
		}

		return s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventApproval,
			Actor:     caller,
			ContentID: &contentID,
			OldValues: models.JSONB{"approved": old.String()},
			NewValues: models.JSONB{"approved": spender.String()},
		})
	})
}

// GetApproved returns the approved spender, which may be the zero
// identity when no approval is in force. Unowned IDs are NotFound.
func (s *RightsService) GetApproved(ctx context.Context, contentID uint64) (models.Address, error) {
	entry, err := s.rights.Entry(ctx, contentID)
	if err != nil {
		return models.ZeroAddress, apperrors.Internal(err, "failed to load ownership entry")
	}
	if models.IsZeroAddress(entry.Owner) {
		return models.ZeroAddress, apperrors.NotFound("content %d has no owner", contentID)
	}
	return entry.ApprovedSpender, nil
}

// SetApprovalForAll grants or revokes a blanket operator approval for
// all of the caller's content. Idempotent; the event is emitted even
// when the value does not change.
func (s *RightsService) SetApprovalForAll(ctx context.Context, caller, operator models.Address, enabled bool) error {
	if operator == caller {
		return apperrors.InvalidArgument("cannot set approval for self")
	}
	if models.IsZeroAddress(operator) {
		return apperrors.InvalidArgument("operator is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.rights.Operator(ctx, caller, operator)
	if err != nil {
		return apperrors.Internal(err, "failed to load operator approval")
	}

	return store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.rights.SetOperator(ctx, models.OperatorApproval{
			Owner:    caller,
			Operator: operator,
			Enabled:  enabled,
		}); err != nil {
			return apperrors.Internal(err, "failed to store operator approval")
		}

		return s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventApprovalForAll,
			Actor:     caller,
			OldValues: models.JSONB{"operator": operator.String(), "enabled": old},
			NewValues: models.JSONB{"operator": operator.String(), "enabled": enabled},
		})
	})
}

// IsApprovedForAll is a pure lookup, defaulting to false.
func (s *RightsService) IsApprovedForAll(ctx context.Context, owner, operator models.Address) (bool, error) {
	enabled, err := s.rights.Operator(ctx, owner, operator)
	if err != nil {
		return false, apperrors.Internal(err, "failed to load operator approval")
	}
	return enabled, nil
}

// TransferFrom reassigns ownership. The caller must be the owner, the
// approved spender, or an approved operator of from. Ordering matters:
// authorization, then ownership verification, then the approval clear
// and owner reassignment as a single write, then the event. Any standing
// approval is consumed by the transfer.
func (s *RightsService) TransferFrom(ctx context.Context, caller, from, to models.Address, contentID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.rights.Entry(ctx, contentID)
	if err != nil {
		return apperrors.Internal(err, "failed to load ownership entry")
	}

	authorized := caller == entry.Owner ||
		(!models.IsZeroAddress(entry.ApprovedSpender) && caller == entry.ApprovedSpender)
	if !authorized {
		enabled, err := s.rights.Operator(ctx, from, caller)
		if err != nil {
			return apperrors.Internal(err, "failed to load operator approval")
		}
		authorized = enabled
	}
	if !authorized {
		return apperrors.Unauthorized("caller may not transfer content %d", contentID)
	}

	if models.IsZeroAddress(entry.Owner) {
		return apperrors.NotFound("content %d has no owner", contentID)
	}
	if entry.Owner != from {
		return apperrors.InvalidArgument("from does not own content %d", contentID)
	}
	if models.IsZeroAddress(to) {
		return apperrors.InvalidArgument("to is required")
	}

	if err := store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.rights.PutEntry(ctx, models.OwnershipEntry{
			ContentID:       contentID,
			Owner:           to,
			ApprovedSpender: models.ZeroAddress,
		}); err != nil {
			return apperrors.Internal(err, "failed to store ownership entry")
		}

		return s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventOwnershipTransfer,
			Actor:     caller,
			ContentID: &contentID,
			OldValues: models.JSONB{"owner": from.String(), "approved": entry.ApprovedSpender.String()},
			NewValues: models.JSONB{"owner": to.String(), "approved": models.ZeroAddress.String()},
		})
	}); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"content_id": contentID,
		"from":       from,
		"to":         to,
	}).Info("Ownership transferred")
	return nil
}
