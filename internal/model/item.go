package model

import "time"

// Item status constants.
const (
	ItemStatusAvailable   = "available"
	ItemStatusUnavailable = "unavailable"
)

// MaxItemImages is the maximum number of images attached to an item.
const MaxItemImages = 3

// PriceOption is one price point of an item. An item with a single
// unnamed option is priced in simple mode.
type PriceOption struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// SelectedModifier is a copy of a modifier taken when it was attached to
// an item. Later edits to the modifier do not change it.
type SelectedModifier struct {
	ID              string           `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	Type            string           `json:"type" yaml:"type"`
	SelectedOptions []ModifierOption `json:"selected_options" yaml:"selected_options"`
}

// Item is a dish or product sold from a category.
type Item struct {
	ID           string    `json:"id" yaml:"id" db:"id"`
	Name         string    `json:"name" yaml:"name" db:"name"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty" db:"description"`
	Category     string    `json:"category" yaml:"category" db:"category"`
	Images       []string  `json:"images,omitempty" yaml:"images,omitempty" db:"-"`
	Status       string    `json:"status" yaml:"status" db:"status"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified" db:"last_modified"`

	PriceOptions []PriceOption `json:"price_options" yaml:"price_options" db:"-"`

	Labels             []string `json:"labels,omitempty" yaml:"labels,omitempty" db:"-"`
	DisplayOptions     []string `json:"display_options,omitempty" yaml:"display_options,omitempty" db:"-"`
	Size               string   `json:"size,omitempty" yaml:"size,omitempty" db:"size"`
	Unit               string   `json:"unit,omitempty" yaml:"unit,omitempty" db:"unit"`
	PreparationTime    int      `json:"preparation_time,omitempty" yaml:"preparation_time,omitempty" db:"preparation_time"` // minutes
	IngredientWarnings []string `json:"ingredient_warnings,omitempty" yaml:"ingredient_warnings,omitempty" db:"-"`
	TaxCategory        string   `json:"tax_category,omitempty" yaml:"tax_category,omitempty" db:"tax_category"`
	IsSoldOut          bool     `json:"is_sold_out" yaml:"is_sold_out" db:"is_sold_out"`
	IsAvailable        bool     `json:"is_available" yaml:"is_available" db:"is_available"`
	IsFeatured         bool     `json:"is_featured" yaml:"is_featured" db:"is_featured"`

	// RecommendedItems holds item IDs or free-text tags.
	RecommendedItems []string `json:"recommended_items,omitempty" yaml:"recommended_items,omitempty" db:"-"`

	SelectedModifiers []SelectedModifier  `json:"selected_modifiers,omitempty" yaml:"selected_modifiers,omitempty" db:"-"`
	Visibility        *VisibilitySettings `json:"visibility,omitempty" yaml:"visibility,omitempty" db:"-"`
}

// Clone returns a deep copy of it. Slices and the visibility settings are
// not shared with the original.
func (it Item) Clone() Item {
	it.Images = cloneStrings(it.Images)
	if it.PriceOptions != nil {
		it.PriceOptions = append([]PriceOption(nil), it.PriceOptions...)
	}
	it.Labels = cloneStrings(it.Labels)
	it.DisplayOptions = cloneStrings(it.DisplayOptions)
	it.IngredientWarnings = cloneStrings(it.IngredientWarnings)
	it.RecommendedItems = cloneStrings(it.RecommendedItems)
	if it.SelectedModifiers != nil {
		mods := make([]SelectedModifier, len(it.SelectedModifiers))
		for i, m := range it.SelectedModifiers {
			mods[i] = m
			if m.SelectedOptions != nil {
				mods[i].SelectedOptions = append([]ModifierOption(nil), m.SelectedOptions...)
			}
		}
		it.SelectedModifiers = mods
	}
	it.Visibility = it.Visibility.Clone()
	return it
}

// IsSimplePricing reports whether the item is priced with a single
// unnamed option.
func (it Item) IsSimplePricing() bool {
	return IsSimplePricing(it.PriceOptions)
}

// IsSimplePricing reports whether opts is exactly one unnamed option.
func IsSimplePricing(opts []PriceOption) bool {
	return len(opts) == 1 && opts[0].Name == ""
}

// RemovePriceOption returns opts without the option identified by id. The
// result is never empty: removing the last option yields a single
// simple-mode option with the ID produced by newID.
func RemovePriceOption(opts []PriceOption, id string, newID func() string) []PriceOption {
	out := make([]PriceOption, 0, len(opts))
	for _, o := range opts {
		if o.ID != id {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = append(out, PriceOption{ID: newID()})
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
