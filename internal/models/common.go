// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"regexp"

	"github.com/google/uuid"
)

// Address identifies a caller: a creator, owner, operator, buyer, the
// platform wallet or the admin. The zero UUID is the absent identity and
// never occurs as a real participant.
type Address = uuid.UUID

// ZeroAddress is the absent-identity sentinel.
var ZeroAddress = uuid.Nil

func IsZeroAddress(a Address) bool {
	return a == uuid.Nil
}

// Hash is an opaque content-addressed store reference. The ledger passes
// it through without interpreting it.
type Hash string

var hashPattern = regexp.MustCompile("^[0-9a-fA-F]{64}$")

func (h Hash) Valid() bool {
	return hashPattern.MatchString(string(h))
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}
