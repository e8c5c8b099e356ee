// internal/models/setting.go
package models

import "time"

// Setting is a persisted configuration value keyed by a dotted name,
// for example "revenue.fee_percentage".
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:128"`
	Value     string    `json:"value" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}
