// Package factories fills a catalog with plausible demo data.
package factories

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/jaswdr/faker"

	"github.com/nhle/menu-catalog/internal/catalog"
	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/validation"
)

var menuNames = []string{"Breakfast", "Lunch", "Dinner", "Late Night", "Weekend Brunch", "Drinks"}

var categoryDishes = map[string][]string{
	"Starters": {"Garlic Bread", "Bruschetta", "Spring Rolls", "Hummus Plate", "Calamari"},
	"Mains":    {"Grilled Salmon", "Beef Burger", "Mushroom Risotto", "Chicken Tikka Masala", "Pad Thai"},
	"Pizza":    {"Margherita", "Pepperoni", "Quattro Formaggi", "Veggie Supreme"},
	"Salads":   {"Caesar Salad", "Greek Salad", "Cobb Salad", "Quinoa Salad"},
	"Desserts": {"Tiramisu", "Cheesecake", "Apple Pie", "Chocolate Fondant"},
	"Drinks":   {"Lemonade", "Iced Tea", "Espresso", "Milkshake"},
}

var categoryNames = []string{"Starters", "Mains", "Pizza", "Salads", "Desserts", "Drinks"}

var modifierGroups = []struct {
	name    string
	unit    string
	options []string
}{
	{"Sauces", "portion", []string{"Ketchup", "Mayonnaise", "BBQ", "Aioli"}},
	{"Extras", "portion", []string{"Cheese", "Bacon", "Avocado", "Fried Egg"}},
	{"Milk", "splash", []string{"Whole", "Oat", "Almond", "Soy"}},
	{"Sides", "bowl", []string{"Fries", "Side Salad", "Rice", "Coleslaw"}},
}

var labels = []string{"vegan", "vegetarian", "spicy", "gluten-free", "new", "chef's pick"}

var sizes = []string{"Small", "Regular", "Large"}

// Options controls how much data Populate creates.
type Options struct {
	Menus             int
	CategoriesPerMenu int
	ItemsPerCategory  int
	Modifiers         int
}

// DefaultOptions is a small catalog: two menus of three categories with
// four items each, plus three modifier groups.
func DefaultOptions() Options {
	return Options{Menus: 2, CategoriesPerMenu: 3, ItemsPerCategory: 4, Modifiers: 3}
}

// Summary counts what Populate created.
type Summary struct {
	Menus      int
	Categories int
	Items      int
	Modifiers  int
}

// CatalogFactory generates demo entities. Every entity goes through the
// same form validation an editor would run before it is added.
type CatalogFactory struct {
	fake faker.Faker
}

// New returns a factory whose output is fully determined by seed.
func New(seed int64) *CatalogFactory {
	return &CatalogFactory{fake: faker.NewWithSeed(rand.NewSource(seed))}
}

// Populate adds demo menus, categories, items and modifiers to s.
func (f *CatalogFactory) Populate(s *catalog.Store, opts Options) (Summary, error) {
	var sum Summary

	var modifierIDs []string
	for i := 0; i < opts.Modifiers; i++ {
		m, err := f.modifier(i)
		if err != nil {
			return sum, err
		}
		mod, err := s.AddModifier(m)
		if err != nil {
			return sum, fmt.Errorf("seeding modifier: %w", err)
		}
		modifierIDs = append(modifierIDs, mod.ID)
		sum.Modifiers++
	}

	for i := 0; i < opts.Menus; i++ {
		menu, err := s.AddMenu(model.Menu{
			Name:        menuNames[i%len(menuNames)],
			Description: f.fake.Lorem().Sentence(8),
			Status:      model.MenuStatusActive,
		})
		if err != nil {
			return sum, fmt.Errorf("seeding menu: %w", err)
		}
		sum.Menus++

		for j := 0; j < opts.CategoriesPerMenu; j++ {
			name := categoryNames[(i+j)%len(categoryNames)]
			form := validation.CategoryForm{
				Name:              name,
				Description:       f.fake.Lorem().Sentence(10),
				Status:            model.MenuStatusActive,
				SelectedModifiers: f.pickModifiers(modifierIDs),
			}
			if err := validation.ValidateCategory(form).Err(); err != nil {
				return sum, fmt.Errorf("seeding category %s: %w", name, err)
			}
			cat := form.Category("")
			cat.MenuID = menu.ID
			cat, err = s.AddCategory(cat)
			if err != nil {
				return sum, fmt.Errorf("seeding category %s: %w", name, err)
			}
			sum.Categories++

			dishes := categoryDishes[name]
			for k := 0; k < opts.ItemsPerCategory; k++ {
				form := f.itemForm(dishes[k%len(dishes)], cat.ID)
				if err := validation.ValidateItem(form).Err(); err != nil {
					return sum, fmt.Errorf("seeding item %s: %w", form.Name, err)
				}
				if _, err := s.AddItem(form.Item("")); err != nil {
					return sum, fmt.Errorf("seeding item %s: %w", form.Name, err)
				}
				sum.Items++
			}
		}
	}
	return sum, nil
}

func (f *CatalogFactory) modifier(i int) (model.Modifier, error) {
	group := modifierGroups[i%len(modifierGroups)]
	form := validation.ModifierForm{
		Name:          group.name,
		Type:          f.fake.RandomStringElement([]string{model.ModifierTypeOptional, model.ModifierTypeRequired}),
		AllowMultiple: f.fake.Bool(),
	}
	for _, name := range group.options {
		form.Options = append(form.Options, validation.ModifierOptionForm{
			Name:  name,
			Price: formatPrice(f.fake.Float64(2, 0, 3)),
			Unit:  group.unit,
		})
	}
	if err := validation.ValidateModifier(form).Err(); err != nil {
		return model.Modifier{}, fmt.Errorf("seeding modifier %s: %w", form.Name, err)
	}
	return form.Modifier(""), nil
}

func (f *CatalogFactory) itemForm(name, categoryID string) validation.ItemForm {
	form := validation.ItemForm{
		Name:            name,
		Description:     f.fake.Lorem().Sentence(10),
		Category:        categoryID,
		Status:          model.ItemStatusAvailable,
		PreparationTime: f.fake.IntBetween(5, 30),
		IsAvailable:     true,
		IsFeatured:      f.fake.IntBetween(0, 4) == 0,
	}
	if f.fake.Bool() {
		form.Labels = []string{f.fake.RandomStringElement(labels)}
	}

	// About a third of the items get size-based pricing.
	if f.fake.IntBetween(0, 2) == 0 {
		base := f.fake.Float64(2, 5, 20)
		for i, size := range sizes {
			form.PriceOptions = append(form.PriceOptions, validation.PriceOptionForm{
				Name:  size,
				Price: formatPrice(base + float64(i)*2.5),
			})
		}
	} else {
		form.PriceOptions = []validation.PriceOptionForm{{Price: formatPrice(f.fake.Float64(2, 5, 50))}}
	}
	return form
}

// pickModifiers returns up to two of ids.
func (f *CatalogFactory) pickModifiers(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	n := f.fake.IntBetween(0, 2)
	var out []string
	for i := 0; i < n; i++ {
		out = append(out, ids[f.fake.IntBetween(0, len(ids)-1)])
	}
	return out
}

// formatPrice keeps a generated price strictly positive, as editors
// require.
func formatPrice(p float64) string {
	if p <= 0 {
		p = 0.5
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}
