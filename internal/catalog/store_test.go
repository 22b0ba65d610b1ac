package catalog_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/menu-catalog/internal/catalog"
	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/validation"
	"github.com/nhle/menu-catalog/tests/testutil"
)

// seed builds a menu with two categories and three items:
// catA holds i1, i2; catB holds i3.
func seed(t *testing.T, s *catalog.Store) {
	t.Helper()

	_, err := s.AddMenu(model.Menu{ID: "m1", Name: "Dinner", Status: model.MenuStatusActive})
	require.NoError(t, err)
	_, err = s.AddCategory(model.Category{ID: "catA", Name: "Starters"})
	require.NoError(t, err)
	_, err = s.AddCategory(model.Category{ID: "catB", Name: "Mains"})
	require.NoError(t, err)
	for _, it := range []model.Item{
		{ID: "i1", Name: "Soup", Category: "catA"},
		{ID: "i2", Name: "Bread", Category: "catA"},
		{ID: "i3", Name: "Steak", Category: "catB"},
	} {
		_, err := s.AddItem(it)
		require.NoError(t, err)
	}
}

func ids[T model.Entry](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.GetID()
	}
	return out
}

func TestAddInsertsAtHead(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)

	assert.Equal(t, []string{"catB", "catA"}, ids(s.Categories()))
	assert.Equal(t, []string{"i3", "i2", "i1"}, ids(s.Items()))
}

func TestAddGeneratesIDsAndDefaults(t *testing.T) {
	s, c := testutil.NewTestCatalog(t)

	m, err := s.AddMenu(model.Menu{Name: "Lunch"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", m.ID)
	assert.Equal(t, model.MenuStatusDraft, m.Status)
	assert.Equal(t, c.Now(), m.LastModified)
	assert.Equal(t, m.ID, s.ActiveMenuID(), "first menu becomes active")

	cat, err := s.AddCategory(model.Category{Name: "Salads"})
	require.NoError(t, err)
	assert.Equal(t, m.ID, cat.MenuID, "category joins the active menu")

	it, err := s.AddItem(model.Item{Name: "Caesar", Category: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusAvailable, it.Status)
	require.Len(t, it.PriceOptions, 1, "price options are never empty")
	assert.True(t, it.IsSimplePricing())
	assert.NotEmpty(t, it.PriceOptions[0].ID)
}

func TestAddRejects(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)

	_, err := s.AddMenu(model.Menu{Name: "   "})
	assert.True(t, errors.Is(err, catalog.ErrInvalid))

	_, err = s.AddItem(model.Item{Name: "Ghost", Category: "nope"})
	assert.True(t, errors.Is(err, catalog.ErrNotFound))

	_, err = s.AddItem(model.Item{ID: "i1", Name: "Dup", Category: "catA"})
	assert.True(t, errors.Is(err, catalog.ErrInvalid))

	_, err = s.AddCategory(model.Category{Name: "Orphan", MenuID: "nope"})
	assert.True(t, errors.Is(err, catalog.ErrNotFound))

	assert.Len(t, s.Items(), 3)
}

func TestAddDoesNotAliasCaller(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)

	in := model.Item{
		Name:         "Fries",
		Category:     "catA",
		Images:       []string{"a.png"},
		PriceOptions: []model.PriceOption{{Name: "Small", Price: 2}},
	}
	got, err := s.AddItem(in)
	require.NoError(t, err)
	assert.Empty(t, in.PriceOptions[0].ID, "caller's slice untouched")

	in.Images[0] = "changed.png"
	stored, err := s.Item(got.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, stored.Images)

	stored.Images[0] = "mutated.png"
	again, err := s.Item(got.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, again.Images)
}

func TestUpdate(t *testing.T) {
	s, c := testutil.NewTestCatalog(t)
	seed(t, s)
	c.Advance(time.Hour)

	it, err := s.Item("i1")
	require.NoError(t, err)
	it.Name = "Tomato Soup"
	require.NoError(t, s.UpdateItem(it))

	got, err := s.Item("i1")
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", got.Name)
	assert.Equal(t, c.Now(), got.LastModified)
	assert.Equal(t, []string{"i3", "i2", "i1"}, ids(s.Items()), "update keeps position")

	err = s.UpdateItem(model.Item{ID: "missing", Name: "x", Category: "catA"})
	assert.True(t, errors.Is(err, catalog.ErrNotFound))

	it.Category = "missing"
	err = s.UpdateItem(it)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
	got, _ = s.Item("i1")
	assert.Equal(t, "catA", got.Category)

	m, err := s.Menu("m1")
	require.NoError(t, err)
	m.Name = "Lunch"
	m.ItemCount = 99
	require.NoError(t, s.UpdateMenu(m))
	m, err = s.Menu("m1")
	require.NoError(t, err)
	assert.Equal(t, "Lunch", m.Name)
	assert.Equal(t, s.MenuItemCount("m1"), m.ItemCount, "item count stays computed")

	err = s.UpdateMenu(model.Menu{ID: "missing", Name: "x"})
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestUpdateCategoryFromFormKeepsMenu(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)
	_, err := s.AddMenu(model.Menu{ID: "m2", Name: "Brunch"})
	require.NoError(t, err)

	form := validation.CategoryForm{Name: "Small plates", Description: "Light bites to start"}
	require.Empty(t, validation.ValidateCategory(form))
	require.NoError(t, s.UpdateCategory(form.Category("catA")))

	got, err := s.Category("catA")
	require.NoError(t, err)
	assert.Equal(t, "Small plates", got.Name)
	assert.Equal(t, "m1", got.MenuID)
	assert.Equal(t, 3, s.MenuItemCount("m1"))

	got.MenuID = "m2"
	require.NoError(t, s.UpdateCategory(got))
	assert.Equal(t, 2, s.MenuItemCount("m2"))

	got.MenuID = "missing"
	err = s.UpdateCategory(got)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
	got, _ = s.Category("catA")
	assert.Equal(t, "m2", got.MenuID)
}

func TestRemove(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)

	require.NoError(t, s.RemoveItem("i2"))
	assert.Equal(t, []string{"i3", "i1"}, ids(s.Items()))

	err := s.RemoveItem("i2")
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
	assert.Equal(t, []string{"i3", "i1"}, ids(s.Items()), "failed remove changes nothing")
}

func TestRemoveCategoryCascadesItems(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)

	require.NoError(t, s.RemoveCategory("catA"))
	assert.Equal(t, []string{"catB"}, ids(s.Categories()))
	assert.Equal(t, []string{"i3"}, ids(s.Items()))
}

func TestRemoveMenuCascades(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)
	_, err := s.AddMenu(model.Menu{ID: "m2", Name: "Brunch"})
	require.NoError(t, err)

	require.NoError(t, s.RemoveMenu("m1"))
	assert.Empty(t, s.Categories())
	assert.Empty(t, s.Items())
	assert.Equal(t, "m2", s.ActiveMenuID())
}

func TestReorderIsPermutation(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)
	for i := 0; i < 3; i++ {
		_, err := s.AddItem(model.Item{Name: "Extra", Category: "catB"})
		require.NoError(t, err)
	}

	original := s.Items()
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		perm := ids(original)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		require.NoError(t, s.ReorderItems(perm))
		got := s.Items()
		assert.Equal(t, perm, ids(got))
		assert.ElementsMatch(t, original, got)
	}
}

func TestReorderRejectsNonPermutation(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)
	before := ids(s.Items())

	for _, bad := range [][]string{
		{"i1", "i2"},
		{"i1", "i1", "i2"},
		{"i1", "i2", "zzz"},
		{"i1", "i2", "i3", "i4"},
	} {
		err := s.ReorderItems(bad)
		assert.True(t, errors.Is(err, catalog.ErrNotPermutation), "order %v", bad)
		assert.Equal(t, before, ids(s.Items()))
	}

	require.NoError(t, s.ReorderCategories([]string{"catA", "catB"}))
	assert.Equal(t, []string{"catA", "catB"}, ids(s.Categories()))

	for _, id := range []string{"mA", "mB"} {
		_, err := s.AddModifier(model.Modifier{ID: id, Name: "Sauce " + id})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"mB", "mA"}, ids(s.Modifiers()))
	require.NoError(t, s.ReorderModifiers([]string{"mA", "mB"}))
	assert.Equal(t, []string{"mA", "mB"}, ids(s.Modifiers()))
	assert.True(t, errors.Is(s.ReorderModifiers([]string{"mA"}), catalog.ErrNotPermutation))
}

func TestItemCountsAreComputed(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)

	assert.Equal(t, 2, s.CategoryItemCount("catA"))
	assert.Equal(t, 1, s.CategoryItemCount("catB"))
	assert.Equal(t, 3, s.MenuItemCount("m1"))

	cat, err := s.Category("catA")
	require.NoError(t, err)
	assert.Equal(t, 2, cat.ItemCount)

	m, err := s.Menu("m1")
	require.NoError(t, err)
	assert.Equal(t, 3, m.ItemCount)

	it, _ := s.Item("i1")
	it.Category = "catB"
	require.NoError(t, s.UpdateItem(it))

	counts := map[string]int{}
	for _, c := range s.Categories() {
		counts[c.ID] = c.ItemCount
	}
	assert.Equal(t, map[string]int{"catA": 1, "catB": 2}, counts)
}

func TestModifierSnapshotIsAValue(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)

	mod, err := s.AddModifier(model.Modifier{
		ID:   "sauce",
		Name: "Sauce",
		Type: model.ModifierTypeRequired,
		Options: []model.ModifierOption{
			{ID: "o1", Name: "Pepper", Price: 1.5},
			{ID: "o2", Name: "Mushroom", Price: 2},
		},
	})
	require.NoError(t, err)

	require.NoError(t, s.SelectModifier("i3", mod.ID, []string{"o2"}))

	mod.Name = "Sauces"
	mod.Options[1].Price = 9
	require.NoError(t, s.UpdateModifier(mod))

	it, err := s.Item("i3")
	require.NoError(t, err)
	require.Len(t, it.SelectedModifiers, 1)
	assert.Equal(t, model.SelectedModifier{
		ID:              "sauce",
		Name:            "Sauce",
		Type:            model.ModifierTypeRequired,
		SelectedOptions: []model.ModifierOption{{ID: "o2", Name: "Mushroom", Price: 2}},
	}, it.SelectedModifiers[0])

	// Selecting again refreshes the snapshot in place.
	require.NoError(t, s.SelectModifier("i3", mod.ID, nil))
	it, _ = s.Item("i3")
	require.Len(t, it.SelectedModifiers, 1)
	assert.Equal(t, "Sauces", it.SelectedModifiers[0].Name)
	assert.Len(t, it.SelectedModifiers[0].SelectedOptions, 2)

	err = s.SelectModifier("i3", mod.ID, []string{"nope"})
	assert.True(t, errors.Is(err, catalog.ErrNotFound))

	require.NoError(t, s.UnselectModifier("i3", mod.ID))
	it, _ = s.Item("i3")
	assert.Empty(t, it.SelectedModifiers)
}

func TestCategoryModifierSet(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)
	_, err := s.AddModifier(model.Modifier{ID: "m-a", Name: "A"})
	require.NoError(t, err)
	_, err = s.AddModifier(model.Modifier{ID: "m-b", Name: "B"})
	require.NoError(t, err)

	require.NoError(t, s.AttachModifier("catA", "m-b"))
	require.NoError(t, s.AttachModifier("catA", "m-a"))
	require.NoError(t, s.AttachModifier("catA", "m-b"))

	cat, _ := s.Category("catA")
	assert.Equal(t, []string{"m-b", "m-a"}, cat.SelectedModifiers)

	require.NoError(t, s.RemoveModifier("m-b"))
	cat, _ = s.Category("catA")
	assert.Equal(t, []string{"m-a"}, cat.SelectedModifiers)

	assert.True(t, errors.Is(s.AttachModifier("catA", "m-b"), catalog.ErrNotFound))
}

func TestRemovePriceOptionKeepsOne(t *testing.T) {
	s, c := testutil.NewTestCatalog(t)
	seed(t, s)

	it, err := s.AddItem(model.Item{
		Name:     "Pizza",
		Category: "catB",
		PriceOptions: []model.PriceOption{
			{ID: "small", Name: "Small", Price: 8},
			{ID: "large", Name: "Large", Price: 12},
		},
	})
	require.NoError(t, err)

	require.NoError(t, s.RemovePriceOption(it.ID, "small"))
	got, _ := s.Item(it.ID)
	assert.Equal(t, []model.PriceOption{{ID: "large", Name: "Large", Price: 12}}, got.PriceOptions)

	require.NoError(t, s.RemovePriceOption(it.ID, "large"))
	got, _ = s.Item(it.ID)
	require.Len(t, got.PriceOptions, 1)
	assert.True(t, got.IsSimplePricing())
	assert.NotEqual(t, "large", got.PriceOptions[0].ID)

	before := got
	c.Advance(time.Minute)
	err = s.RemovePriceOption(it.ID, "no-such-option")
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
	got, _ = s.Item(it.ID)
	assert.Equal(t, before, got, "unknown option changes nothing")

	err = s.RemovePriceOption("missing", got.PriceOptions[0].ID)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestVisibleItems(t *testing.T) {
	s, c := testutil.NewTestCatalog(t)
	seed(t, s)

	cat, _ := s.Category("catB")
	cat.Visibility = &model.VisibilitySettings{Visibility: model.VisibilityHidden}
	require.NoError(t, s.UpdateCategory(cat))

	it, _ := s.Item("i2")
	it.Visibility = &model.VisibilitySettings{
		Visibility: model.VisibilityShowOnlyWithin,
		ShowOnlyWithin: &model.TimeWindow{
			Days:      []string{"monday"},
			TimeRange: []int{9, 17},
		},
	}
	require.NoError(t, s.UpdateItem(it))

	// Epoch is Monday 12:00.
	assert.Equal(t, []string{"i2", "i1"}, ids(s.VisibleItems(c.Now())))
	assert.Equal(t, []string{"i1"}, ids(s.VisibleItems(c.Now().Add(6*time.Hour))))
}

func TestSnapshotLoadRoundTrip(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)
	snap := s.Snapshot()

	other, _ := testutil.NewTestCatalog(t)
	require.NoError(t, other.Load(snap))
	assert.Equal(t, snap, other.Snapshot())
	assert.Equal(t, "m1", other.ActiveMenuID())

	bad := snap
	bad.Items = append(bad.Items, bad.Items[0])
	err := other.Load(bad)
	assert.True(t, errors.Is(err, catalog.ErrInvalid))
	assert.Len(t, other.Items(), 3)
}

func TestLoadRejectsDanglingReferences(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)
	snap := s.Snapshot()

	tests := []struct {
		name   string
		mutate func(*model.Snapshot)
	}{
		{"item without category", func(sn *model.Snapshot) {
			sn.Items = append(sn.Items, model.Item{ID: "i9", Name: "Soup", Category: "nope"})
		}},
		{"category without menu", func(sn *model.Snapshot) {
			sn.Categories = append(sn.Categories, model.Category{ID: "c9", MenuID: "nope", Name: "Sides"})
		}},
		{"unknown active menu", func(sn *model.Snapshot) {
			sn.ActiveMenuID = "nope"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, _ := testutil.NewTestCatalog(t)
			require.NoError(t, other.Load(snap))

			bad := s.Snapshot()
			tt.mutate(&bad)
			err := other.Load(bad)
			assert.True(t, errors.Is(err, catalog.ErrNotFound), "got %v", err)
			assert.Equal(t, snap, other.Snapshot())
		})
	}

	t.Run("category of an archived menu", func(t *testing.T) {
		ok := s.Snapshot()
		menu := ok.Menus[0]
		ok.Menus = nil
		ok.ActiveMenuID = ""
		ok.Archived = []model.ArchivedItem{{ID: menu.ID, Name: menu.Name, Type: model.KindMenu, Menu: &menu}}

		other, _ := testutil.NewTestCatalog(t)
		require.NoError(t, other.Load(ok))
		assert.Len(t, other.Categories(), 2)
	})
}

func TestTransactIsAllOrNothing(t *testing.T) {
	s, _ := testutil.NewTestCatalog(t)
	seed(t, s)

	boom := errors.New("boom")
	err := s.Transact(func(tx *catalog.Tx) error {
		tx.Items.Delete("i1")
		tx.Categories.Delete("catB")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, s.Items(), 3)
	assert.Len(t, s.Categories(), 2)
}
