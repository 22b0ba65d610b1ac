package model

import "time"

// Modifier type constants.
const (
	ModifierTypeOptional = "optional"
	ModifierTypeRequired = "required"
)

// ModifierOption is one choice inside a modifier group.
type ModifierOption struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Modifier is a shared customization group (sauces, sizes, extras) that
// categories offer and items take snapshots of.
type Modifier struct {
	ID            string           `json:"id" yaml:"id" db:"id"`
	Name          string           `json:"name" yaml:"name" db:"name"`
	Type          string           `json:"type" yaml:"type" db:"type"`
	AllowMultiple bool             `json:"allow_multiple" yaml:"allow_multiple" db:"allow_multiple"`
	Options       []ModifierOption `json:"options" yaml:"options" db:"-"`
	LastModified  time.Time        `json:"last_modified" yaml:"last_modified" db:"last_modified"`
}

// Clone returns a deep copy of m.
func (m Modifier) Clone() Modifier {
	if m.Options != nil {
		m.Options = append([]ModifierOption(nil), m.Options...)
	}
	return m
}

// Snapshot copies the modifier into a SelectedModifier holding the options
// whose IDs are listed in optionIDs, in the modifier's option order. An
// empty optionIDs selects every option.
func (m Modifier) Snapshot(optionIDs []string) SelectedModifier {
	want := make(map[string]bool, len(optionIDs))
	for _, id := range optionIDs {
		want[id] = true
	}
	selected := []ModifierOption{}
	for _, o := range m.Options {
		if len(want) == 0 || want[o.ID] {
			selected = append(selected, o)
		}
	}
	return SelectedModifier{
		ID:              m.ID,
		Name:            m.Name,
		Type:            m.Type,
		SelectedOptions: selected,
	}
}
