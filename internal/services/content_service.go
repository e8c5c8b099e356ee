// internal/services/content_service.go
package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/inkrights/ledger-backend/internal/apperrors"
	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
	"github.com/inkrights/ledger-backend/internal/utils"
)

// OwnershipAssigner is the slice of the rights registry the content
// registry needs: establishing the first owner of a freshly registered
// content ID. CheckAssigner reports whether the caller would be
// accepted, so registration can fail before any record is written.
// Implemented by RightsService.
type OwnershipAssigner interface {
	AssignInitialOwnership(ctx context.Context, caller models.Address, contentID uint64, creator models.Address) error
	CheckAssigner(ctx context.Context, caller models.Address) error
}

// ContentService assigns IDs to submitted content records and hands
// initial ownership to the rights registry under its own trusted
// collaborator identity.
type ContentService struct {
	mu           sync.Mutex
	contents     store.ContentStore
	events       store.EventStore
	rights       OwnershipAssigner
	runner       store.Transactor
	registryAddr models.Address
	log          *logrus.Entry
}

type CreateContentRequest struct {
	ContentHash string   `json:"content_hash" validate:"required,content_hash"`
	Description string   `json:"description" validate:"required,min=1,max=2000"`
	Tags        []string `json:"tags,omitempty" validate:"max=20,dive,min=1,max=50"`
}

func NewContentService(contents store.ContentStore, events store.EventStore, rights OwnershipAssigner, runner store.Transactor, registryAddr models.Address) *ContentService {
	return &ContentService{
		contents:     contents,
		events:       events,
		rights:       rights,
		runner:       runner,
		registryAddr: registryAddr,
		log:          logrus.WithField("component", "content_registry"),
	}
}

// RegistryAddress is the trusted collaborator identity this registry uses
// when establishing initial ownership.
func (s *ContentService) RegistryAddress() models.Address {
	return s.registryAddr
}

// Create registers a content record under the next dense ID and
// establishes the creator as its initial owner in the rights registry.
func (s *ContentService) Create(ctx context.Context, creator models.Address, req *CreateContentRequest) (*models.ContentRecord, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidArgument, err, "validation failed")
	}
	if models.IsZeroAddress(creator) {
		return nil, apperrors.InvalidArgument("creator is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The rights registry must accept this registry as the assigner
	// before any record exists under the new ID.
	if err := s.rights.CheckAssigner(ctx, s.registryAddr); err != nil {
		return nil, err
	}

	record := &models.ContentRecord{
		Creator:     creator,
		ContentHash: models.Hash(req.ContentHash),
		Description: req.Description,
		Tags:        req.Tags,
	}
	if err := store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.contents.Create(ctx, record); err != nil {
			return apperrors.Internal(err, "failed to store content record")
		}

		if err := s.rights.AssignInitialOwnership(ctx, s.registryAddr, record.ID, creator); err != nil {
			return err
		}

		if err := s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventContentCreated,
			Actor:     creator,
			ContentID: &record.ID,
			NewValues: models.JSONB{
				"content_hash": string(record.ContentHash),
				"description":  record.Description,
			},
		}); err != nil {
			return apperrors.Internal(err, "failed to append creation event")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"content_id": record.ID,
		"creator":    creator,
	}).Info("Content registered")

	return record, nil
}

// Get returns a content record. Absence is detected through the
// zero-creator sentinel; real creators are never the zero identity.
func (s *ContentService) Get(ctx context.Context, contentID uint64) (*models.ContentRecord, error) {
	record, err := s.contents.Get(ctx, contentID)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to load content record")
	}
	if !record.Exists() {
		return nil, apperrors.NotFound("content %d not found", contentID)
	}
	return &record, nil
}

// ListByCreator returns the creator's records in creation order. An
// unknown creator yields an empty slice, not an error.
func (s *ContentService) ListByCreator(ctx context.Context, creator models.Address) ([]models.ContentRecord, error) {
	records, err := s.contents.ListByCreator(ctx, creator)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list content records")
	}
	return records, nil
}

// ListIDsByCreator returns only the IDs, in creation order.
func (s *ContentService) ListIDsByCreator(ctx context.Context, creator models.Address) ([]uint64, error) {
	records, err := s.ListByCreator(ctx, creator)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids, nil
}
