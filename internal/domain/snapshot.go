package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the per-device persisted declaration. Writes are full-record
// overwrites, last write wins.
type Snapshot struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	DeviceID    string      `json:"device_id" db:"device_id"`
	Declaration Declaration `json:"declaration" db:"declaration"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// Value serializes the declaration for the JSONB column.
func (d Declaration) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan deserializes the declaration from the JSONB column.
func (d *Declaration) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported declaration column type %T", src)
	}
}
