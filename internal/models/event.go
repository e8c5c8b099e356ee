// internal/models/event.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType names every state transition the ledger emits.
type EventType string

const (
	EventContentCreated      EventType = "content.created"
	EventOwnershipTransfer   EventType = "rights.ownership_transferred"
	EventApproval            EventType = "rights.approval"
	EventApprovalForAll      EventType = "rights.approval_for_all"
	EventRegistryAddressSet  EventType = "rights.content_registry_set"
	EventProductRegistered   EventType = "catalog.product_registered"
	EventProductActiveSet    EventType = "catalog.product_active_set"
	EventRightsRegistrySet   EventType = "catalog.rights_registry_set"
	EventProductPurchased    EventType = "catalog.product_purchased"
	EventSaleRecorded        EventType = "revenue.sale_recorded"
	EventFeePercentageSet    EventType = "revenue.fee_percentage_set"
	EventPlatformWalletSet   EventType = "revenue.platform_wallet_set"
	EventPlatformWithdrawal  EventType = "revenue.platform_withdrawal"
	EventCreatorWithdrawal   EventType = "revenue.creator_withdrawal"
	EventEmergencyWithdrawal EventType = "revenue.emergency_withdrawal"
	EventCommandProposed     EventType = "admin.command_proposed"
	EventCommandExecuted     EventType = "admin.command_executed"
	EventCommandCancelled    EventType = "admin.command_cancelled"
)

// LedgerEvent is the structured audit record appended by every mutating
// operation, carrying before/after values for external indexing.
type LedgerEvent struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Type      EventType `json:"type" gorm:"size:64;not null;index"`
	Actor     Address   `json:"actor" gorm:"type:uuid;index"`
	ContentID *uint64   `json:"content_id,omitempty" gorm:"index"`
	ProductID *uint64   `json:"product_id,omitempty" gorm:"index"`
	OldValues JSONB     `json:"old_values,omitempty" gorm:"type:jsonb"`
	NewValues JSONB     `json:"new_values,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
