package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/validation"
)

func TestParsePrices(t *testing.T) {
	tests := []struct {
		text string
		want []validation.PriceOptionForm
	}{
		{"", []validation.PriceOptionForm{{}}},
		{" 6.50 ", []validation.PriceOptionForm{{Price: "6.50"}}},
		{"Small=9\nLarge = 13\n\n", []validation.PriceOptionForm{
			{Name: "Small", Price: "9"},
			{Name: "Large", Price: "13"},
		}},
		{"Glass=7, Bottle=28", []validation.PriceOptionForm{
			{Name: "Glass", Price: "7"},
			{Name: "Bottle", Price: "28"},
		}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parsePrices(tt.text)); diff != "" {
			t.Errorf("parsePrices(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestModifierOptions(t *testing.T) {
	got := modifierOptions(splitEntries("Ketchup=0.5:portion\nAioli = 1 : pot"))
	want := []validation.ModifierOptionForm{
		{Name: "Ketchup", Price: "0.5", Unit: "portion"},
		{Name: "Aioli", Price: "1", Unit: "pot"},
	}
	assert.Empty(t, cmp.Diff(want, got))
	assert.Nil(t, modifierOptions(nil))
}

func TestItemFieldRules(t *testing.T) {
	form := validation.ItemForm{Name: "Soup", Description: "Ask your server", Category: "starters"}

	name := fieldRule(&form, func(f *validation.ItemForm, s string) { f.Name = s },
		validation.ValidateItem, validation.FieldName)
	require.EqualError(t, name("S"), validation.MsgNameLength)
	assert.NoError(t, name("Soup"))

	desc := fieldRule(&form, func(f *validation.ItemForm, s string) { f.Description = s },
		validation.ValidateItem, validation.FieldDescription)
	require.EqualError(t, desc("Hot"), validation.MsgDescriptionLength)
	assert.NoError(t, desc("Ask your server"))

	price := fieldRule(&form, func(f *validation.ItemForm, s string) { f.PriceOptions = parsePrices(s) },
		validation.ValidateItem, validation.FieldPrice)
	require.EqualError(t, price("0"), validation.MsgPricePositive)
	require.EqualError(t, price("abc"), validation.MsgPricePositive)
	assert.NoError(t, price("6.50"))
	assert.NoError(t, price("Small=9\nLarge=13"))
	// a priced row without a name
	require.EqualError(t, price("Small=9\n=13"), validation.MsgOptionName)

	// rules never touch the bound form
	assert.Equal(t, "Soup", form.Name)
	assert.Nil(t, form.PriceOptions)
}

func TestCategoryAndModifierFieldRules(t *testing.T) {
	cat := validation.CategoryForm{}
	name := fieldRule(&cat, func(f *validation.CategoryForm, s string) { f.Name = s },
		validation.ValidateCategory, validation.FieldName)
	// description is still empty, but only the name is reported here
	assert.NoError(t, name("Mains"))
	require.EqualError(t, name(" "), validation.MsgNameLength)

	mod := validation.ModifierForm{Name: "Sauces"}
	opts := fieldRule(&mod, func(f *validation.ModifierForm, s string) { f.Options = modifierOptions(splitEntries(s)) },
		validation.ValidateModifier, validation.FieldOptions)
	require.EqualError(t, opts("Ketchup=0.5"), validation.MsgModifierOptions)
	assert.NoError(t, opts("Ketchup=0.5:portion"))
}

func TestPromptsBuild(t *testing.T) {
	var cat validation.CategoryForm
	var menuID string
	assert.NotNil(t, categoryPrompt(&cat, &menuID, []model.Menu{{ID: "dinner", Name: "Dinner"}}))
	assert.NotNil(t, categoryPrompt(&cat, &menuID, nil))

	var mod validation.ModifierForm
	entries := ""
	assert.NotNil(t, modifierPrompt(&mod, &entries))

	var item validation.ItemForm
	prices := ""
	_, err := itemPrompt(&item, &prices, nil)
	require.ErrorIs(t, err, errNoCategories)

	f, err := itemPrompt(&item, &prices, []model.Category{{ID: "mains", Name: "Mains"}, {ID: "sides", Name: "Sides"}})
	require.NoError(t, err)
	assert.NotNil(t, f)
	assert.Equal(t, "mains", item.Category)
}
