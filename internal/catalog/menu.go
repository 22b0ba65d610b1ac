package catalog

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nhle/menu-catalog/internal/model"
)

func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, sentinel)...)
}

// AddMenu inserts a menu at the head of the menu list. Generates an ID if
// empty and defaults the status to draft. The first menu added becomes
// the active menu.
func (s *Store) AddMenu(m model.Menu) (model.Menu, error) {
	if strings.TrimSpace(m.Name) == "" {
		return model.Menu{}, errorf(ErrInvalid, "menu name must not be empty")
	}
	err := s.Transact(func(tx *Tx) error {
		if m.ID == "" {
			m.ID = tx.NewID()
		} else if tx.Menus.Has(m.ID) {
			return errorf(ErrInvalid, "menu %s already exists", m.ID)
		}
		if m.Status == "" {
			m.Status = model.MenuStatusDraft
		}
		m.LastModified = tx.Now()
		m.ItemCount = 0
		tx.Menus.Prepend(m)
		if tx.ActiveMenu() == "" {
			tx.SetActiveMenu(m.ID)
		}
		return nil
	})
	if err != nil {
		return model.Menu{}, fmt.Errorf("adding menu: %w", err)
	}
	s.logger.Debug("added menu", zap.String("id", m.ID), zap.String("name", m.Name))
	return m, nil
}

// UpdateMenu replaces the menu with the same ID.
func (s *Store) UpdateMenu(m model.Menu) error {
	if strings.TrimSpace(m.Name) == "" {
		return errorf(ErrInvalid, "menu name must not be empty")
	}
	err := s.Transact(func(tx *Tx) error {
		m.LastModified = tx.Now()
		m.ItemCount = 0
		if !tx.Menus.Replace(m) {
			return errorf(ErrNotFound, "menu %s", m.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating menu %s: %w", m.ID, err)
	}
	s.logger.Debug("updated menu", zap.String("id", m.ID))
	return nil
}

// RemoveMenu deletes a menu permanently together with its categories and
// their items.
func (s *Store) RemoveMenu(id string) error {
	var cats, items int
	err := s.Transact(func(tx *Tx) error {
		if _, ok := tx.Menus.Delete(id); !ok {
			return errorf(ErrNotFound, "menu %s", id)
		}
		cats, items = DeleteMenuContents(tx, id)
		if tx.ActiveMenu() == id {
			tx.SetActiveMenu(firstID(tx.Menus.IDs()))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("removing menu %s: %w", id, err)
	}
	s.logger.Debug("removed menu",
		zap.String("id", id), zap.Int("categories", cats), zap.Int("items", items))
	return nil
}

// DeleteMenuContents removes the categories owned by menuID and their
// items from tx, returning how many of each were removed.
func DeleteMenuContents(tx *Tx, menuID string) (categories, items int) {
	owned := make(map[string]bool)
	for _, c := range tx.Categories.All() {
		if c.MenuID == menuID {
			owned[c.ID] = true
		}
	}
	categories = tx.Categories.DeleteWhere(func(c model.Category) bool { return owned[c.ID] })
	items = tx.Items.DeleteWhere(func(it model.Item) bool { return owned[it.Category] })
	return categories, items
}

// ReorderMenus sets the menu display order. ids must name every menu
// exactly once.
func (s *Store) ReorderMenus(ids []string) error {
	return s.Transact(func(tx *Tx) error { return tx.Menus.Reorder(ids) })
}

// Menus returns all menus in display order with item counts filled in.
func (s *Store) Menus() []model.Menu {
	var out []model.Menu
	s.read(func(st *Tx) {
		counts := menuCounts(st)
		out = st.Menus.All()
		for i := range out {
			out[i].ItemCount = counts[out[i].ID]
		}
	})
	return out
}

// Menu returns one menu with its item count filled in.
func (s *Store) Menu(id string) (model.Menu, error) {
	var (
		m  model.Menu
		ok bool
	)
	s.read(func(st *Tx) {
		m, ok = st.Menus.Get(id)
		if ok {
			m.ItemCount = menuCounts(st)[id]
		}
	})
	if !ok {
		return model.Menu{}, errorf(ErrNotFound, "menu %s", id)
	}
	return m, nil
}

// ActiveMenuID returns the menu new categories join by default.
func (s *Store) ActiveMenuID() string {
	var id string
	s.read(func(st *Tx) { id = st.activeMenu })
	return id
}

// SetActiveMenu selects the menu new categories join by default.
func (s *Store) SetActiveMenu(id string) error {
	return s.Transact(func(tx *Tx) error {
		if !tx.Menus.Has(id) {
			return errorf(ErrNotFound, "menu %s", id)
		}
		tx.SetActiveMenu(id)
		return nil
	})
}

// MenuItemCount returns the number of live items in the menu's categories.
func (s *Store) MenuItemCount(menuID string) int {
	var n int
	s.read(func(st *Tx) { n = menuCounts(st)[menuID] })
	return n
}

func firstID(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
