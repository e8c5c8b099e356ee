// internal/models/revenue.go
package models

import "time"

// OwedBalance is the accrued-but-unwithdrawn amount the splitter holds
// for one recipient. Creator and platform funds are tracked as separate
// entries rather than one pooled balance, so a withdrawal can never touch
// another party's share.
type OwedBalance struct {
	Recipient Address   `json:"recipient" gorm:"type:uuid;primaryKey"`
	Amount    uint64    `json:"amount" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RevenueShare is the breakdown computed for a single sale. It is not
// persisted beyond the settlement event and the owed-balance credits.
type RevenueShare struct {
	ProductID     uint64  `json:"product_id"`
	Creator       Address `json:"creator"`
	TotalRevenue  uint64  `json:"total_revenue"`
	CreatorShare  uint64  `json:"creator_share"`
	PlatformShare uint64  `json:"platform_share"`
	FeePercentage uint64  `json:"fee_percentage"`
}
