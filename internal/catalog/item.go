package catalog

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/visibility"
)

// AddItem inserts an item at the head of the item list. The item's
// category must exist. An item without price options gets one simple-mode
// option; status defaults to available.
func (s *Store) AddItem(it model.Item) (model.Item, error) {
	if strings.TrimSpace(it.Name) == "" {
		return model.Item{}, errorf(ErrInvalid, "item name must not be empty")
	}
	it = it.Clone()
	err := s.Transact(func(tx *Tx) error {
		if it.ID == "" {
			it.ID = tx.NewID()
		} else if tx.Items.Has(it.ID) {
			return errorf(ErrInvalid, "item %s already exists", it.ID)
		}
		if !tx.Categories.Has(it.Category) {
			return errorf(ErrNotFound, "category %s", it.Category)
		}
		if it.Status == "" {
			it.Status = model.ItemStatusAvailable
		}
		fillPriceOptions(tx, &it)
		it.LastModified = tx.Now()
		tx.Items.Prepend(it)
		return nil
	})
	if err != nil {
		return model.Item{}, fmt.Errorf("adding item: %w", err)
	}
	s.logger.Debug("added item",
		zap.String("id", it.ID), zap.String("category", it.Category), zap.String("name", it.Name))
	return it.Clone(), nil
}

// UpdateItem replaces the item with the same ID. The item's category must
// exist.
func (s *Store) UpdateItem(it model.Item) error {
	if strings.TrimSpace(it.Name) == "" {
		return errorf(ErrInvalid, "item name must not be empty")
	}
	it = it.Clone()
	err := s.Transact(func(tx *Tx) error {
		if !tx.Items.Has(it.ID) {
			return errorf(ErrNotFound, "item %s", it.ID)
		}
		if !tx.Categories.Has(it.Category) {
			return errorf(ErrNotFound, "category %s", it.Category)
		}
		fillPriceOptions(tx, &it)
		it.LastModified = tx.Now()
		tx.Items.Replace(it)
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating item %s: %w", it.ID, err)
	}
	s.logger.Debug("updated item", zap.String("id", it.ID))
	return nil
}

// RemoveItem deletes an item permanently.
func (s *Store) RemoveItem(id string) error {
	err := s.Transact(func(tx *Tx) error {
		if _, ok := tx.Items.Delete(id); !ok {
			return errorf(ErrNotFound, "item %s", id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("removing item %s: %w", id, err)
	}
	s.logger.Debug("removed item", zap.String("id", id))
	return nil
}

// ReorderItems sets the item display order. ids must name every item
// exactly once.
func (s *Store) ReorderItems(ids []string) error {
	return s.Transact(func(tx *Tx) error { return tx.Items.Reorder(ids) })
}

// Items returns all items in display order.
func (s *Store) Items() []model.Item {
	var out []model.Item
	s.read(func(st *Tx) { out = st.Items.All() })
	return out
}

// ItemsInCategory returns the items of one category in display order.
func (s *Store) ItemsInCategory(categoryID string) []model.Item {
	var out []model.Item
	s.read(func(st *Tx) {
		for _, it := range st.Items.items {
			if it.Category == categoryID {
				out = append(out, it.Clone())
			}
		}
	})
	return out
}

// Item returns one item.
func (s *Store) Item(id string) (model.Item, error) {
	var (
		it model.Item
		ok bool
	)
	s.read(func(st *Tx) { it, ok = st.Items.Get(id) })
	if !ok {
		return model.Item{}, errorf(ErrNotFound, "item %s", id)
	}
	return it, nil
}

// VisibleItems returns the items a customer sees at now: those whose own
// schedule and whose category's schedule both evaluate visible, in display
// order. Categories of an archived menu show nothing.
func (s *Store) VisibleItems(now time.Time) []model.Item {
	var out []model.Item
	s.read(func(st *Tx) {
		shown := make(map[string]bool, st.Categories.Len())
		for _, c := range st.Categories.items {
			if c.MenuID != "" && !st.Menus.Has(c.MenuID) {
				continue
			}
			shown[c.ID] = visibility.IsVisible(c.Visibility, now)
		}
		for _, it := range st.Items.items {
			if shown[it.Category] && visibility.IsVisible(it.Visibility, now) {
				out = append(out, it.Clone())
			}
		}
	})
	return out
}

// SelectModifier attaches a snapshot of the modifier, restricted to
// optionIDs, to the item. A previous snapshot of the same modifier is
// replaced in place; otherwise the snapshot is appended.
func (s *Store) SelectModifier(itemID, modifierID string, optionIDs []string) error {
	return s.Transact(func(tx *Tx) error {
		it, ok := tx.Items.Get(itemID)
		if !ok {
			return errorf(ErrNotFound, "item %s", itemID)
		}
		mod, ok := tx.Modifiers.Get(modifierID)
		if !ok {
			return errorf(ErrNotFound, "modifier %s", modifierID)
		}
		for _, id := range optionIDs {
			if !hasOption(mod, id) {
				return errorf(ErrNotFound, "modifier %s option %s", modifierID, id)
			}
		}

		snap := mod.Snapshot(optionIDs)
		replaced := false
		for i := range it.SelectedModifiers {
			if it.SelectedModifiers[i].ID == modifierID {
				it.SelectedModifiers[i] = snap
				replaced = true
				break
			}
		}
		if !replaced {
			it.SelectedModifiers = append(it.SelectedModifiers, snap)
		}
		it.LastModified = tx.Now()
		tx.Items.Replace(it)
		return nil
	})
}

// UnselectModifier drops the item's snapshot of a modifier.
func (s *Store) UnselectModifier(itemID, modifierID string) error {
	return s.Transact(func(tx *Tx) error {
		it, ok := tx.Items.Get(itemID)
		if !ok {
			return errorf(ErrNotFound, "item %s", itemID)
		}
		kept := it.SelectedModifiers[:0:0]
		for _, m := range it.SelectedModifiers {
			if m.ID != modifierID {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(it.SelectedModifiers) {
			return nil
		}
		it.SelectedModifiers = kept
		it.LastModified = tx.Now()
		tx.Items.Replace(it)
		return nil
	})
}

// RemovePriceOption removes one price option from an item. Removing the
// last option leaves a single simple-mode option in its place.
func (s *Store) RemovePriceOption(itemID, optionID string) error {
	return s.Transact(func(tx *Tx) error {
		it, ok := tx.Items.Get(itemID)
		if !ok {
			return errorf(ErrNotFound, "item %s", itemID)
		}
		found := false
		for _, o := range it.PriceOptions {
			if o.ID == optionID {
				found = true
				break
			}
		}
		if !found {
			return errorf(ErrNotFound, "item %s price option %s", itemID, optionID)
		}
		it.PriceOptions = model.RemovePriceOption(it.PriceOptions, optionID, tx.NewID)
		it.LastModified = tx.Now()
		tx.Items.Replace(it)
		return nil
	})
}

// fillPriceOptions gives an item with no price options a single
// simple-mode option and IDs to options that lack one.
func fillPriceOptions(tx *Tx, it *model.Item) {
	if len(it.PriceOptions) == 0 {
		it.PriceOptions = []model.PriceOption{{}}
	}
	for i := range it.PriceOptions {
		if it.PriceOptions[i].ID == "" {
			it.PriceOptions[i].ID = tx.NewID()
		}
	}
}

func hasOption(m model.Modifier, id string) bool {
	for _, o := range m.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}
