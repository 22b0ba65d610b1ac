package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/nhle/menu-catalog/internal/model"
)

// CategoryForm is the editable state of a category as an editor holds it.
type CategoryForm struct {
	Name              string
	Description       string
	Status            string
	TaxCategory       string
	SelectedModifiers []string
	Visibility        *model.VisibilitySettings
}

// PriceOptionForm is one price row of an item form. Price is the raw text
// typed by the operator.
type PriceOptionForm struct {
	ID    string
	Name  string
	Price string
	Unit  string
}

// ItemForm is the editable state of an item.
type ItemForm struct {
	Name         string
	Description  string
	Category     string
	Images       []string
	Status       string
	PriceOptions []PriceOptionForm

	Labels             []string
	DisplayOptions     []string
	Size               string
	Unit               string
	PreparationTime    int
	IngredientWarnings []string
	TaxCategory        string
	IsSoldOut          bool
	IsAvailable        bool
	IsFeatured         bool
	RecommendedItems   []string
	Visibility         *model.VisibilitySettings
}

// ModifierOptionForm is one option row of a modifier form.
type ModifierOptionForm struct {
	ID    string
	Name  string
	Price string
	Unit  string
}

// ModifierForm is the editable state of a modifier.
type ModifierForm struct {
	Name          string
	Type          string
	AllowMultiple bool
	Options       []ModifierOptionForm
}

// IsSimplePricing reports whether the form is priced with a single
// unnamed option.
func (f ItemForm) IsSimplePricing() bool {
	return len(f.PriceOptions) == 1 && strings.TrimSpace(f.PriceOptions[0].Name) == ""
}

// Category converts the form to a category with the given ID. Text
// fields are trimmed.
func (f CategoryForm) Category(id string) model.Category {
	return model.Category{
		ID:                id,
		Name:              strings.TrimSpace(f.Name),
		Description:       strings.TrimSpace(f.Description),
		Status:            f.Status,
		TaxCategory:       f.TaxCategory,
		SelectedModifiers: append([]string(nil), f.SelectedModifiers...),
		Visibility:        f.Visibility.Clone(),
	}
}

// Item converts the form to an item with the given ID. Prices that do not
// parse become 0; run ValidateItem first.
func (f ItemForm) Item(id string) model.Item {
	it := model.Item{
		ID:                 id,
		Name:               strings.TrimSpace(f.Name),
		Description:        strings.TrimSpace(f.Description),
		Category:           f.Category,
		Images:             cloneStrings(f.Images),
		Status:             f.Status,
		Labels:             cloneStrings(f.Labels),
		DisplayOptions:     cloneStrings(f.DisplayOptions),
		Size:               f.Size,
		Unit:               f.Unit,
		PreparationTime:    f.PreparationTime,
		IngredientWarnings: cloneStrings(f.IngredientWarnings),
		TaxCategory:        f.TaxCategory,
		IsSoldOut:          f.IsSoldOut,
		IsAvailable:        f.IsAvailable,
		IsFeatured:         f.IsFeatured,
		RecommendedItems:   cloneStrings(f.RecommendedItems),
		Visibility:         f.Visibility.Clone(),
	}
	for _, o := range f.PriceOptions {
		p, _ := parsePrice(o.Price)
		it.PriceOptions = append(it.PriceOptions, model.PriceOption{
			ID:    o.ID,
			Name:  strings.TrimSpace(o.Name),
			Price: p,
			Unit:  o.Unit,
		})
	}
	return it
}

// Modifier converts the form to a modifier with the given ID.
func (f ModifierForm) Modifier(id string) model.Modifier {
	m := model.Modifier{
		ID:            id,
		Name:          strings.TrimSpace(f.Name),
		Type:          f.Type,
		AllowMultiple: f.AllowMultiple,
	}
	for _, o := range f.Options {
		p, _ := parsePrice(o.Price)
		m.Options = append(m.Options, model.ModifierOption{
			ID:    o.ID,
			Name:  strings.TrimSpace(o.Name),
			Price: p,
			Unit:  strings.TrimSpace(o.Unit),
		})
	}
	return m
}

// ItemFormFrom fills a form from a stored item, formatting prices the way
// an editor shows them.
func ItemFormFrom(it model.Item) ItemForm {
	f := ItemForm{
		Name:               it.Name,
		Description:        it.Description,
		Category:           it.Category,
		Images:             cloneStrings(it.Images),
		Status:             it.Status,
		Labels:             cloneStrings(it.Labels),
		DisplayOptions:     cloneStrings(it.DisplayOptions),
		Size:               it.Size,
		Unit:               it.Unit,
		PreparationTime:    it.PreparationTime,
		IngredientWarnings: cloneStrings(it.IngredientWarnings),
		TaxCategory:        it.TaxCategory,
		IsSoldOut:          it.IsSoldOut,
		IsAvailable:        it.IsAvailable,
		IsFeatured:         it.IsFeatured,
		RecommendedItems:   cloneStrings(it.RecommendedItems),
		Visibility:         it.Visibility.Clone(),
	}
	for _, o := range it.PriceOptions {
		f.PriceOptions = append(f.PriceOptions, PriceOptionForm{
			ID:    o.ID,
			Name:  o.Name,
			Price: strconv.FormatFloat(o.Price, 'f', -1, 64),
			Unit:  o.Unit,
		})
	}
	return f
}

// parsePrice reads a decimal price. Blank text is not a price.
func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	return p, true
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
