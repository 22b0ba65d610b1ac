package catalog

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nhle/menu-catalog/internal/model"
)

// AddCategory inserts a category at the head of the category list. An
// empty MenuID is filled with the active menu.
func (s *Store) AddCategory(c model.Category) (model.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return model.Category{}, errorf(ErrInvalid, "category name must not be empty")
	}
	err := s.Transact(func(tx *Tx) error {
		if c.ID == "" {
			c.ID = tx.NewID()
		} else if tx.Categories.Has(c.ID) {
			return errorf(ErrInvalid, "category %s already exists", c.ID)
		}
		if c.MenuID == "" {
			c.MenuID = tx.ActiveMenu()
		} else if !tx.Menus.Has(c.MenuID) {
			return errorf(ErrNotFound, "menu %s", c.MenuID)
		}
		if c.Status == "" {
			c.Status = model.MenuStatusActive
		}
		c.SelectedModifiers = dedupe(c.SelectedModifiers)
		c.LastModified = tx.Now()
		c.ItemCount = 0
		tx.Categories.Prepend(c)
		return nil
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("adding category: %w", err)
	}
	s.logger.Debug("added category",
		zap.String("id", c.ID), zap.String("menu", c.MenuID), zap.String("name", c.Name))
	return c.Clone(), nil
}

// UpdateCategory replaces the category with the same ID. An empty MenuID
// keeps the category in the menu it already belongs to.
func (s *Store) UpdateCategory(c model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return errorf(ErrInvalid, "category name must not be empty")
	}
	err := s.Transact(func(tx *Tx) error {
		old, ok := tx.Categories.Get(c.ID)
		if !ok {
			return errorf(ErrNotFound, "category %s", c.ID)
		}
		if c.MenuID == "" {
			c.MenuID = old.MenuID
		} else if c.MenuID != old.MenuID && !tx.Menus.Has(c.MenuID) {
			return errorf(ErrNotFound, "menu %s", c.MenuID)
		}
		c.SelectedModifiers = dedupe(c.SelectedModifiers)
		c.LastModified = tx.Now()
		c.ItemCount = 0
		tx.Categories.Replace(c)
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating category %s: %w", c.ID, err)
	}
	s.logger.Debug("updated category", zap.String("id", c.ID))
	return nil
}

// RemoveCategory deletes a category and every item in it.
func (s *Store) RemoveCategory(id string) error {
	var items int
	err := s.Transact(func(tx *Tx) error {
		if _, ok := tx.Categories.Delete(id); !ok {
			return errorf(ErrNotFound, "category %s", id)
		}
		items = tx.Items.DeleteWhere(func(it model.Item) bool { return it.Category == id })
		return nil
	})
	if err != nil {
		return fmt.Errorf("removing category %s: %w", id, err)
	}
	s.logger.Debug("removed category", zap.String("id", id), zap.Int("items", items))
	return nil
}

// ReorderCategories sets the category display order. ids must name every
// category exactly once.
func (s *Store) ReorderCategories(ids []string) error {
	return s.Transact(func(tx *Tx) error { return tx.Categories.Reorder(ids) })
}

// Categories returns all categories in display order with item counts.
func (s *Store) Categories() []model.Category {
	var out []model.Category
	s.read(func(st *Tx) {
		counts := categoryCounts(st)
		out = st.Categories.All()
		for i := range out {
			out[i].ItemCount = counts[out[i].ID]
		}
	})
	return out
}

// CategoriesInMenu returns the categories owned by menuID in display
// order.
func (s *Store) CategoriesInMenu(menuID string) []model.Category {
	var out []model.Category
	for _, c := range s.Categories() {
		if c.MenuID == menuID {
			out = append(out, c)
		}
	}
	return out
}

// Category returns one category with its item count.
func (s *Store) Category(id string) (model.Category, error) {
	var (
		c  model.Category
		ok bool
	)
	s.read(func(st *Tx) {
		c, ok = st.Categories.Get(id)
		if ok {
			c.ItemCount = categoryCounts(st)[id]
		}
	})
	if !ok {
		return model.Category{}, errorf(ErrNotFound, "category %s", id)
	}
	return c, nil
}

// CategoryItemCount returns the number of live items in the category.
func (s *Store) CategoryItemCount(id string) int {
	var n int
	s.read(func(st *Tx) { n = categoryCounts(st)[id] })
	return n
}

// AttachModifier adds a modifier to the category's ordered modifier set.
// Attaching a modifier twice is a no-op.
func (s *Store) AttachModifier(categoryID, modifierID string) error {
	return s.Transact(func(tx *Tx) error {
		c, ok := tx.Categories.Get(categoryID)
		if !ok {
			return errorf(ErrNotFound, "category %s", categoryID)
		}
		if !tx.Modifiers.Has(modifierID) {
			return errorf(ErrNotFound, "modifier %s", modifierID)
		}
		if c.HasModifier(modifierID) {
			return nil
		}
		c.SelectedModifiers = append(c.SelectedModifiers, modifierID)
		c.LastModified = tx.Now()
		tx.Categories.Replace(c)
		return nil
	})
}

// DetachModifier removes a modifier from the category's modifier set.
func (s *Store) DetachModifier(categoryID, modifierID string) error {
	return s.Transact(func(tx *Tx) error {
		c, ok := tx.Categories.Get(categoryID)
		if !ok {
			return errorf(ErrNotFound, "category %s", categoryID)
		}
		if !c.HasModifier(modifierID) {
			return nil
		}
		c.SelectedModifiers = without(c.SelectedModifiers, modifierID)
		c.LastModified = tx.Now()
		tx.Categories.Replace(c)
		return nil
	})
}

// categoryCounts maps category ID to its number of live items.
func categoryCounts(st *Tx) map[string]int {
	counts := make(map[string]int)
	for _, it := range st.Items.items {
		counts[it.Category]++
	}
	return counts
}

// menuCounts maps menu ID to the number of live items in its categories.
func menuCounts(st *Tx) map[string]int {
	byCategory := categoryCounts(st)
	counts := make(map[string]int)
	for _, c := range st.Categories.items {
		counts[c.MenuID] += byCategory[c.ID]
	}
	return counts
}

func dedupe(ids []string) []string {
	if ids == nil {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
