package model

import "time"

// Menu status constants.
const (
	MenuStatusActive   = "active"
	MenuStatusInactive = "inactive"
	MenuStatusDraft    = "draft"
)

// Menu is the top-level container that groups categories for one service
// (lunch, dinner, drinks).
type Menu struct {
	ID           string    `json:"id" yaml:"id" db:"id"`
	Name         string    `json:"name" yaml:"name" db:"name"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty" db:"description"`
	Status       string    `json:"status" yaml:"status" db:"status"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified" db:"last_modified"`

	// ItemCount is populated by read accessors from the live item list.
	ItemCount int `json:"item_count" yaml:"-" db:"-"`
}
