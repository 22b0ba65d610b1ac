package model

import "time"

// Category groups items within a menu. Its position in the category list
// is its display order.
type Category struct {
	ID           string    `json:"id" yaml:"id" db:"id"`
	MenuID       string    `json:"menu_id" yaml:"menu_id" db:"menu_id"`
	Name         string    `json:"name" yaml:"name" db:"name"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty" db:"description"`
	Status       string    `json:"status" yaml:"status" db:"status"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified" db:"last_modified"`

	// SelectedModifiers is an ordered set of modifier IDs offered on every
	// item in this category.
	SelectedModifiers []string `json:"selected_modifiers,omitempty" yaml:"selected_modifiers,omitempty" db:"-"`

	TaxCategory string              `json:"tax_category,omitempty" yaml:"tax_category,omitempty" db:"tax_category"`
	Visibility  *VisibilitySettings `json:"visibility,omitempty" yaml:"visibility,omitempty" db:"-"`

	// ItemCount is populated by read accessors from the live item list.
	ItemCount int `json:"item_count" yaml:"-" db:"-"`
}

// Clone returns a deep copy of c.
func (c Category) Clone() Category {
	c.SelectedModifiers = cloneStrings(c.SelectedModifiers)
	c.Visibility = c.Visibility.Clone()
	return c
}

// HasModifier reports whether id is in the category's modifier set.
func (c Category) HasModifier(id string) bool {
	for _, m := range c.SelectedModifiers {
		if m == id {
			return true
		}
	}
	return false
}
