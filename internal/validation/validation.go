// Package validation checks category, item and modifier edit forms before
// they are committed. Validators are pure: they return a field-to-message
// map and never fail.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/visibility"
)

// Field keys and messages.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldImages      = "images"
	FieldOptions     = "options"
	FieldVisibility  = "visibility"

	MsgNameLength        = "Name must be at least 2 characters"
	MsgNameRequired      = "Name is required"
	MsgDescriptionLength = "Description must be at least 10 characters"
	MsgPricePositive     = "Price must be greater than 0"
	MsgPriceOptionNeeded = "At least one price option needs a name and a price greater than 0"
	MsgOptionName        = "Option name is required"
	MsgModifierOptions   = "At least one option needs a name, a price and a unit"
)

const (
	minNameLength        = 2
	minDescriptionLength = 10
)

// ErrInvalidForm is matched by the error Errors.Err returns.
var ErrInvalidForm = errors.New("invalid form")

// Errors maps a field key to a message. An empty map means the form is
// valid. Price option rows use keys like "priceOptions.1.price".
type Errors map[string]string

// OK reports whether there are no errors.
func (e Errors) OK() bool { return len(e) == 0 }

// Fields returns the failing field keys in sorted order.
func (e Errors) Fields() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Err returns nil for a valid form and otherwise an error listing every
// field, matching ErrInvalidForm.
func (e Errors) Err() error {
	if e.OK() {
		return nil
	}
	parts := make([]string, 0, len(e))
	for _, k := range e.Fields() {
		parts = append(parts, k+": "+e[k])
	}
	return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(parts, "; "))
}

// PriceOptionKey returns the error key for field of price option i.
func PriceOptionKey(i int, field string) string {
	return fmt.Sprintf("priceOptions.%d.%s", i, field)
}

// ValidateCategory checks a category form.
func ValidateCategory(f CategoryForm) Errors {
	errs := Errors{}
	checkName(errs, f.Name)
	checkDescription(errs, f.Description)
	checkVisibility(errs, f.Visibility)
	return errs
}

// ValidateItem checks an item form. A form with exactly one unnamed price
// option is in simple mode and needs that option's price above 0.
// Otherwise at least one option needs both a name and a positive price;
// a named option without a valid price and a priced option without a
// name are flagged by row.
func ValidateItem(f ItemForm) Errors {
	errs := Errors{}
	checkName(errs, f.Name)
	checkDescription(errs, f.Description)

	if f.IsSimplePricing() {
		if p, ok := parsePrice(f.PriceOptions[0].Price); !ok || p <= 0 {
			errs[FieldPrice] = MsgPricePositive
		}
	} else {
		complete := false
		for i, o := range f.PriceOptions {
			named := strings.TrimSpace(o.Name) != ""
			p, ok := parsePrice(o.Price)
			priced := ok && p > 0
			switch {
			case named && priced:
				complete = true
			case named:
				errs[PriceOptionKey(i, "price")] = MsgPricePositive
			case priced:
				errs[PriceOptionKey(i, "name")] = MsgOptionName
			}
		}
		if !complete {
			errs[FieldPrice] = MsgPriceOptionNeeded
		}
	}

	if len(f.Images) > model.MaxItemImages {
		errs[FieldImages] = fmt.Sprintf("At most %d images are allowed", model.MaxItemImages)
	}
	checkVisibility(errs, f.Visibility)
	return errs
}

// ValidateModifier checks a modifier form. Unlike item price options, a
// modifier option only counts when name, price and unit are all filled.
func ValidateModifier(f ModifierForm) Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Name) == "" {
		errs[FieldName] = MsgNameRequired
	}

	complete := false
	for _, o := range f.Options {
		p, ok := parsePrice(o.Price)
		if strings.TrimSpace(o.Name) != "" && ok && p >= 0 && strings.TrimSpace(o.Unit) != "" {
			complete = true
			break
		}
	}
	if !complete {
		errs[FieldOptions] = MsgModifierOptions
	}
	return errs
}

func checkName(errs Errors, name string) {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLength {
		errs[FieldName] = MsgNameLength
	}
}

func checkDescription(errs Errors, desc string) {
	if utf8.RuneCountInString(strings.TrimSpace(desc)) < minDescriptionLength {
		errs[FieldDescription] = MsgDescriptionLength
	}
}

func checkVisibility(errs Errors, s *model.VisibilitySettings) {
	if s == nil {
		return
	}
	// Only the error matters here; the instant fills a missing hideUntil.
	if _, err := visibility.Normalize(*s, time.Time{}); err != nil {
		var se *visibility.ScheduleError
		if errors.As(err, &se) {
			errs[FieldVisibility] = se.Reason
			return
		}
		errs[FieldVisibility] = err.Error()
	}
}
