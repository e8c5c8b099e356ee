// internal/models/rights.go
package models

import "time"

// OwnershipEntry maps a content ID to its current owner plus the single
// approved spender for that ID. The approved spender is cleared on every
// ownership transfer.
type OwnershipEntry struct {
	ContentID       uint64    `json:"content_id" gorm:"primaryKey;autoIncrement:false"`
	Owner           Address   `json:"owner" gorm:"type:uuid;not null;index"`
	ApprovedSpender Address   `json:"approved_spender" gorm:"type:uuid"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OperatorApproval is a blanket grant from an owner to an operator over
// all of the owner's content.
type OperatorApproval struct {
	Owner     Address   `json:"owner" gorm:"type:uuid;primaryKey"`
	Operator  Address   `json:"operator" gorm:"type:uuid;primaryKey"`
	Enabled   bool      `json:"enabled" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}
