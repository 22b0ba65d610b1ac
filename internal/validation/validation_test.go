package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/menu-catalog/internal/model"
)

const longDescription = "Slow-cooked with herbs"

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name string
		form CategoryForm
		want Errors
	}{
		{
			name: "short description",
			form: CategoryForm{Name: "Ap", Description: "short"},
			want: Errors{FieldDescription: MsgDescriptionLength},
		},
		{
			name: "name too short after trim",
			form: CategoryForm{Name: "  A  ", Description: longDescription},
			want: Errors{FieldName: MsgNameLength},
		},
		{
			name: "empty",
			form: CategoryForm{},
			want: Errors{FieldName: MsgNameLength, FieldDescription: MsgDescriptionLength},
		},
		{
			name: "valid",
			form: CategoryForm{Name: "Starters", Description: longDescription},
			want: Errors{},
		},
		{
			name: "bad schedule",
			form: CategoryForm{
				Name:        "Breakfast",
				Description: longDescription,
				Visibility: &model.VisibilitySettings{
					Visibility:     model.VisibilityShowOnlyWithin,
					ShowOnlyWithin: &model.TimeWindow{Days: []string{"monday"}, TimeRange: []int{9, 25}},
				},
			},
			want: Errors{FieldVisibility: "hour 25 outside 0-23"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCategory(tt.form))
		})
	}
}

func TestValidateItemSimpleMode(t *testing.T) {
	form := ItemForm{
		Name:         "Soup",
		Description:  longDescription,
		PriceOptions: []PriceOptionForm{{ID: "1", Name: "", Price: "0"}},
	}
	require.True(t, form.IsSimplePricing())
	assert.Equal(t, Errors{FieldPrice: MsgPricePositive}, ValidateItem(form))

	for _, price := range []string{"", "abc", "-1", "NaN"} {
		form.PriceOptions[0].Price = price
		assert.Equal(t, MsgPricePositive, ValidateItem(form)[FieldPrice], "price %q", price)
	}

	form.PriceOptions[0].Price = "4.50"
	assert.Empty(t, ValidateItem(form))
}

func TestValidateItemAdvancedMode(t *testing.T) {
	tests := []struct {
		name    string
		options []PriceOptionForm
		want    Errors
	}{
		{
			name: "one complete option",
			options: []PriceOptionForm{
				{Name: "Small", Price: "3"},
				{Name: "Large", Price: "5"},
			},
			want: Errors{},
		},
		{
			name: "named option without price",
			options: []PriceOptionForm{
				{Name: "Small", Price: "3"},
				{Name: "Large", Price: ""},
			},
			want: Errors{"priceOptions.1.price": MsgPricePositive},
		},
		{
			name: "priced option without name",
			options: []PriceOptionForm{
				{Name: "Small", Price: "3"},
				{Name: "", Price: "5"},
			},
			want: Errors{"priceOptions.1.name": MsgOptionName},
		},
		{
			name: "no complete option",
			options: []PriceOptionForm{
				{Name: "Small", Price: "0"},
				{Name: "", Price: "5"},
			},
			want: Errors{
				FieldPrice:             MsgPriceOptionNeeded,
				"priceOptions.0.price": MsgPricePositive,
				"priceOptions.1.name":  MsgOptionName,
			},
		},
		{
			name:    "no options",
			options: nil,
			want:    Errors{FieldPrice: MsgPriceOptionNeeded},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := ItemForm{Name: "Pizza", Description: longDescription, PriceOptions: tt.options}
			assert.Equal(t, tt.want, ValidateItem(form))
		})
	}
}

func TestValidateItemImages(t *testing.T) {
	form := ItemForm{
		Name:         "Cake",
		Description:  longDescription,
		Images:       []string{"a", "b", "c"},
		PriceOptions: []PriceOptionForm{{Price: "6"}},
	}
	assert.Empty(t, ValidateItem(form))

	form.Images = append(form.Images, "d")
	assert.Contains(t, ValidateItem(form), FieldImages)
}

func TestValidateModifierNeedsUnit(t *testing.T) {
	form := ModifierForm{
		Name:    "Sauce",
		Options: []ModifierOptionForm{{Name: "Pepper", Price: "1.5"}},
	}
	// A price option this complete would pass for an item.
	assert.Equal(t, Errors{FieldOptions: MsgModifierOptions}, ValidateModifier(form))

	form.Options = append(form.Options, ModifierOptionForm{Name: "Mushroom", Price: "0", Unit: "cup"})
	assert.Empty(t, ValidateModifier(form), "a free option counts")

	form.Name = " "
	assert.Equal(t, Errors{FieldName: MsgNameRequired}, ValidateModifier(form))
}

func TestValidationIsIdempotent(t *testing.T) {
	cat := CategoryForm{Name: "Desserts", Description: "Sweet things to finish"}
	item := ItemForm{Name: "Tart", Description: longDescription, PriceOptions: []PriceOptionForm{{Price: "7"}}}
	mod := ModifierForm{Name: "Cream", Options: []ModifierOptionForm{{Name: "Whipped", Price: "1", Unit: "dollop"}}}

	for i := 0; i < 2; i++ {
		assert.Empty(t, ValidateCategory(cat))
		assert.Empty(t, ValidateItem(item))
		assert.Empty(t, ValidateModifier(mod))
	}
}

func TestErrorsErr(t *testing.T) {
	assert.NoError(t, Errors{}.Err())

	err := Errors{FieldPrice: MsgPricePositive, FieldName: MsgNameLength}.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidForm))
	assert.Equal(t,
		"invalid form: name: Name must be at least 2 characters; price: Price must be greater than 0",
		err.Error())
}

func TestFormConversion(t *testing.T) {
	form := ItemForm{
		Name:        "  Pizza ",
		Description: longDescription,
		Category:    "mains",
		PriceOptions: []PriceOptionForm{
			{ID: "s", Name: "Small", Price: "8.5"},
			{ID: "l", Name: "Large", Price: " 12 "},
		},
	}
	require.Empty(t, ValidateItem(form))

	it := form.Item("pizza")
	assert.Equal(t, "pizza", it.ID)
	assert.Equal(t, "Pizza", it.Name)
	assert.Equal(t, []model.PriceOption{
		{ID: "s", Name: "Small", Price: 8.5},
		{ID: "l", Name: "Large", Price: 12},
	}, it.PriceOptions)

	back := ItemFormFrom(it)
	assert.Equal(t, "12", back.PriceOptions[1].Price)
	assert.Empty(t, ValidateItem(back))

	mod := ModifierForm{Name: "Sauce", Options: []ModifierOptionForm{{Name: "Pepper", Price: "1.25", Unit: "cup"}}}.Modifier("sauce")
	assert.Equal(t, []model.ModifierOption{{Name: "Pepper", Price: 1.25, Unit: "cup"}}, mod.Options)

	cat := CategoryForm{Name: "Mains", Description: longDescription}.Category("mains")
	assert.Equal(t, "mains", cat.ID)
	assert.Nil(t, cat.SelectedModifiers)
}
