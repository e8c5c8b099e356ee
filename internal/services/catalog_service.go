// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/inkrights/ledger-backend/internal/apperrors"
	"github.com/inkrights/ledger-backend/internal/auth"
	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/payout"
	"github.com/inkrights/ledger-backend/internal/store"
	"github.com/inkrights/ledger-backend/internal/utils"
)

// RightsReader is the slice of the rights registry the catalog needs:
// resolving the current owner of a content ID.
type RightsReader interface {
	OwnerOf(ctx context.Context, contentID uint64) (models.Address, error)
}

// SaleSettler is the settlement port the catalog invokes synchronously
// within each purchase, so a sale can never complete unsettled.
// Implemented by RevenueService.
type SaleSettler interface {
	RecordSale(ctx context.Context, productID uint64, creator models.Address, totalRevenue, incomingValue uint64) (models.RevenueShare, error)
}

// CatalogService registers sale listings tied to content IDs and
// processes purchases.
type CatalogService struct {
	mu         sync.Mutex
	catalog    store.CatalogStore
	events     store.EventStore
	rights     RightsReader
	settlement SaleSettler
	bank       payout.Transferrer
	runner     store.Transactor
	log        *logrus.Entry
}

type RegisterProductRequest struct {
	ContentID   uint64 `json:"content_id" validate:"required,min=1"`
	Price       uint64 `json:"price"`
	DesignHash  string `json:"design_hash" validate:"required,content_hash"`
	Description string `json:"description" validate:"required,min=1,max=2000"`
}

// PurchaseReceipt reports the outcome of a purchase: the exact price
// retained, the change returned to the payer, and the settled split.
type PurchaseReceipt struct {
	Product models.ProductListing `json:"product"`
	Paid    uint64                `json:"paid"`
	Price   uint64                `json:"price"`
	Change  uint64                `json:"change"`
	Share   models.RevenueShare   `json:"share"`
}

func NewCatalogService(catalog store.CatalogStore, events store.EventStore, settlement SaleSettler, bank payout.Transferrer, runner store.Transactor) *CatalogService {
	return &CatalogService{
		catalog:    catalog,
		events:     events,
		settlement: settlement,
		bank:       bank,
		runner:     runner,
		log:        logrus.WithField("component", "product_catalog"),
	}
}

// SetRightsRegistry binds (or replaces) the rights registry used for
// ownership checks. Until it is set, registration and purchase fail with
// FailedPrecondition.
func (s *CatalogService) SetRightsRegistry(ctx context.Context, admin auth.AdminCapability, rights RightsReader) error {
	if !admin.Valid() {
		return apperrors.Unauthorized("admin capability required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rights = rights
	return s.events.Append(ctx, &models.LedgerEvent{
		Type:      models.EventRightsRegistrySet,
		Actor:     admin.Address(),
		NewValues: models.JSONB{"configured": rights != nil},
	})
}

// RegisterProduct lists a derivative product for sale. The caller must
// be the current rights owner of the content at registration time; the
// listing deliberately does not track later ownership changes.
func (s *CatalogService) RegisterProduct(ctx context.Context, caller models.Address, req *RegisterProductRequest) (*models.ProductListing, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidArgument, err, "validation failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rights == nil {
		return nil, apperrors.FailedPrecondition("rights registry not configured")
	}

	owner, err := s.rights.OwnerOf(ctx, req.ContentID)
	if err != nil {
		return nil, err
	}
	if caller != owner {
		return nil, apperrors.Unauthorized("caller does not own content %d", req.ContentID)
	}
	if req.Price == 0 {
		return nil, apperrors.InvalidArgument("price must be positive")
	}

	listing := &models.ProductListing{
		ContentID:   req.ContentID,
		Designer:    caller,
		Price:       req.Price,
		DesignHash:  models.Hash(req.DesignHash),
		Description: req.Description,
		Active:      true,
	}
	if err := store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.catalog.Create(ctx, listing); err != nil {
			return apperrors.Internal(err, "failed to store listing")
		}

		if err := s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventProductRegistered,
			Actor:     caller,
			ContentID: &listing.ContentID,
			ProductID: &listing.ProductID,
			NewValues: models.JSONB{
				"price":       listing.Price,
				"design_hash": string(listing.DesignHash),
				"active":      true,
			},
		}); err != nil {
			return apperrors.Internal(err, "failed to append registration event")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"product_id": listing.ProductID,
		"content_id": listing.ContentID,
		"designer":   caller,
	}).Info("Product registered")

	return listing, nil
}

// GetProduct returns a listing, or NotFound.
func (s *CatalogService) GetProduct(ctx context.Context, productID uint64) (*models.ProductListing, error) {
	listing, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to load listing")
	}
	if listing.ProductID == 0 {
		return nil, apperrors.NotFound("product %d not found", productID)
	}
	return &listing, nil
}

// ListProductIDsByContent returns product IDs for a content ID in
// registration order; empty if none.
func (s *CatalogService) ListProductIDsByContent(ctx context.Context, contentID uint64) ([]uint64, error) {
	ids, err := s.catalog.IDsByContent(ctx, contentID)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list products")
	}
	return ids, nil
}

// SetActive toggles a listing. Only the recorded designer may do so.
// The change event is emitted even when the value is unchanged.
func (s *CatalogService) SetActive(ctx context.Context, caller models.Address, productID uint64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return apperrors.Internal(err, "failed to load listing")
	}
	if listing.ProductID == 0 {
		return apperrors.NotFound("product %d not found", productID)
	}
	if caller != listing.Designer {
		return apperrors.Unauthorized("only the designer may change product %d", productID)
	}

	old := listing.Active
	listing.Active = active
	return store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.catalog.Put(ctx, listing); err != nil {
			return apperrors.Internal(err, "failed to store listing")
		}

		return s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventProductActiveSet,
			Actor:     caller,
			ContentID: &listing.ContentID,
			ProductID: &productID,
			OldValues: models.JSONB{"active": old},
			NewValues: models.JSONB{"active": active},
		})
	})
}

// Purchase processes a sale. Exactly the listing price is retained and
// settled; any overpayment is returned to the buyer. Settlement runs
// synchronously within the purchase, crediting the current rights owner
// of the listing's content, so a sale can never complete without its
// split being recorded.
func (s *CatalogService) Purchase(ctx context.Context, buyer models.Address, productID uint64, paidAmount uint64) (*PurchaseReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to load listing")
	}
	if listing.ProductID == 0 {
		return nil, apperrors.NotFound("product %d not found", productID)
	}
	if !listing.Active {
		return nil, apperrors.FailedPrecondition("product %d is not active", productID)
	}
	if paidAmount < listing.Price {
		return nil, apperrors.InvalidArgument("paid %d is below price %d", paidAmount, listing.Price)
	}

	if s.rights == nil {
		return nil, apperrors.FailedPrecondition("rights registry not configured")
	}
	owner, err := s.rights.OwnerOf(ctx, listing.ContentID)
	if err != nil {
		return nil, err
	}

	// Settlement, change return and the purchase event commit together.
	// A failure anywhere leaves no trace of the sale.
	var share models.RevenueShare
	change := paidAmount - listing.Price
	if err := store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		share, err = s.settlement.RecordSale(ctx, productID, owner, listing.Price, listing.Price)
		if err != nil {
			return err
		}

		if change > 0 {
			ref := fmt.Sprintf("purchase:%d:change", productID)
			if err := s.bank.Transfer(ctx, buyer, change, ref); err != nil {
				return apperrors.Internal(err, "failed to return change")
			}
		}

		if err := s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventProductPurchased,
			Actor:     buyer,
			ContentID: &listing.ContentID,
			ProductID: &productID,
			NewValues: models.JSONB{
				"paid":           paidAmount,
				"price":          listing.Price,
				"change":         change,
				"creator":        owner.String(),
				"creator_share":  share.CreatorShare,
				"platform_share": share.PlatformShare,
			},
		}); err != nil {
			return apperrors.Internal(err, "failed to append purchase event")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"product_id": productID,
		"buyer":      buyer,
		"paid":       paidAmount,
		"change":     change,
	}).Info("Product purchased")

	return &PurchaseReceipt{
		Product: listing,
		Paid:    paidAmount,
		Price:   listing.Price,
		Change:  change,
		Share:   share,
	}, nil
}
