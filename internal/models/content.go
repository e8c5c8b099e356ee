// internal/models/content.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// ContentRecord is an immutable registration of a piece of creative
// content. IDs are dense, monotonically increasing and start at 1.
type ContentRecord struct {
	ID          uint64         `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Creator     Address        `json:"creator" gorm:"type:uuid;not null;index"`
	ContentHash Hash           `json:"content_hash" gorm:"size:64;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Exists reports whether the record is a real registration. A zero
// creator is the absent-record sentinel; real creators are never zero.
func (r ContentRecord) Exists() bool {
	return !IsZeroAddress(r.Creator)
}
