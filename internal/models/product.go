// internal/models/product.go
package models

import "time"

// ProductListing is a sale listing for a physical product derived from a
// registered content record. Designer is the rights owner at registration
// time; ownership may change afterwards without invalidating the listing.
// Listings are never deleted, only deactivated.
type ProductListing struct {
	ProductID   uint64    `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	ContentID   uint64    `json:"content_id" gorm:"not null;index"`
	Designer    Address   `json:"designer" gorm:"type:uuid;not null;index"`
	Price       uint64    `json:"price" gorm:"not null"`
	DesignHash  Hash      `json:"design_hash" gorm:"size:64;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Active      bool      `json:"active" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
