// Package lifecycle decides how catalog entities are deleted. Menus and
// modifiers are archived first and can be restored; categories and items
// are removed immediately. The policy table is the one place this is
// decided.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/menu-catalog/internal/catalog"
	"github.com/nhle/menu-catalog/internal/model"
)

var (
	// ErrConflict is returned when an archived entity cannot go back
	// because a live entity already uses its ID, or when an entity is
	// archived twice under the same ID.
	ErrConflict = errors.New("id already in use")

	// ErrNotArchivable is returned when Archive is asked to archive a kind
	// whose policy is immediate.
	ErrNotArchivable = errors.New("entity kind is not archivable")
)

// Policies is the deletion policy of every entity kind.
var Policies = map[model.EntityKind]model.DeletionPolicy{
	model.KindMenu:     model.PolicyArchivable,
	model.KindModifier: model.PolicyArchivable,
	model.KindCategory: model.PolicyImmediate,
	model.KindItem:     model.PolicyImmediate,
}

// Manager runs deletion, archive and restore against a catalog.
type Manager struct {
	store  *catalog.Store
	logger *zap.Logger
}

// New returns a Manager for s. A nil logger falls back to the store's.
func New(s *catalog.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = s.Logger()
	}
	return &Manager{store: s, logger: logger}
}

// Policy returns the deletion policy for kind. Unknown kinds are
// immediate.
func Policy(kind model.EntityKind) model.DeletionPolicy {
	if p, ok := Policies[kind]; ok {
		return p
	}
	return model.PolicyImmediate
}

// Delete removes the entity according to its kind's policy and reports
// which policy was applied.
func (m *Manager) Delete(kind model.EntityKind, id string) (model.DeletionPolicy, error) {
	policy := Policy(kind)
	if policy == model.PolicyArchivable {
		if _, err := m.Archive(kind, id); err != nil {
			return policy, err
		}
		return policy, nil
	}

	var err error
	switch kind {
	case model.KindCategory:
		err = m.store.RemoveCategory(id)
	case model.KindItem:
		err = m.store.RemoveItem(id)
	default:
		err = fmt.Errorf("deleting %s %s: unknown kind: %w", kind, id, catalog.ErrInvalid)
	}
	if err != nil {
		return policy, err
	}
	m.logger.Info("deleted", zap.String("kind", string(kind)), zap.String("id", id))
	return policy, nil
}

// Archive moves a live menu or modifier into the archive, stamped with
// the current time. A menu's categories stay in place until the archived
// menu is permanently deleted.
func (m *Manager) Archive(kind model.EntityKind, id string) (model.ArchivedItem, error) {
	if Policy(kind) != model.PolicyArchivable {
		return model.ArchivedItem{}, fmt.Errorf("archiving %s %s: %w", kind, id, ErrNotArchivable)
	}

	var a model.ArchivedItem
	err := m.store.Transact(func(tx *catalog.Tx) error {
		if tx.Archived.Has(id) {
			return fmt.Errorf("archived %s: %w", id, ErrConflict)
		}
		switch kind {
		case model.KindMenu:
			menu, ok := tx.Menus.Delete(id)
			if !ok {
				return fmt.Errorf("menu %s: %w", id, catalog.ErrNotFound)
			}
			a = model.ArchivedItem{
				ID:           menu.ID,
				Name:         menu.Name,
				ItemCount:    menuItemCount(tx, menu.ID),
				Status:       menu.Status,
				LastModified: menu.LastModified,
				Menu:         &menu,
			}
			if tx.ActiveMenu() == id {
				tx.SetActiveMenu(firstID(tx.Menus.IDs()))
			}
		case model.KindModifier:
			mod, ok := tx.Modifiers.Delete(id)
			if !ok {
				return fmt.Errorf("modifier %s: %w", id, catalog.ErrNotFound)
			}
			a = model.ArchivedItem{
				ID:           mod.ID,
				Name:         mod.Name,
				LastModified: mod.LastModified,
				Modifier:     &mod,
			}
		}
		a.Type = kind
		a.DeletedAt = tx.Now()
		tx.Archived.Append(a)
		return nil
	})
	if err != nil {
		return model.ArchivedItem{}, fmt.Errorf("archiving %s %s: %w", kind, id, err)
	}
	m.logger.Info("archived", zap.String("kind", string(kind)), zap.String("id", id))
	return a.Clone(), nil
}

// Restore takes an entity out of the archive and puts it back at the head
// of its collection exactly as it was archived.
func (m *Manager) Restore(archivedID string) (model.ArchivedItem, error) {
	var a model.ArchivedItem
	err := m.store.Transact(func(tx *catalog.Tx) error {
		var ok bool
		a, ok = tx.Archived.Delete(archivedID)
		if !ok {
			return fmt.Errorf("archived %s: %w", archivedID, catalog.ErrNotFound)
		}
		switch {
		case a.Menu != nil:
			if tx.Menus.Has(a.Menu.ID) {
				return fmt.Errorf("menu %s: %w", a.Menu.ID, ErrConflict)
			}
			tx.Menus.Prepend(*a.Menu)
			if tx.ActiveMenu() == "" {
				tx.SetActiveMenu(a.Menu.ID)
			}
		case a.Modifier != nil:
			if tx.Modifiers.Has(a.Modifier.ID) {
				return fmt.Errorf("modifier %s: %w", a.Modifier.ID, ErrConflict)
			}
			tx.Modifiers.Prepend(*a.Modifier)
		default:
			return fmt.Errorf("archived %s has no payload: %w", archivedID, catalog.ErrInvalid)
		}
		return nil
	})
	if err != nil {
		return model.ArchivedItem{}, fmt.Errorf("restoring %s: %w", archivedID, err)
	}
	m.logger.Info("restored", zap.String("kind", string(a.Type)), zap.String("id", archivedID))
	return a.Clone(), nil
}

// PermanentlyDelete removes an entity from the archive for good. A menu
// takes its categories and their items with it; a modifier is dropped
// from every category that offered it.
func (m *Manager) PermanentlyDelete(archivedID string) error {
	err := m.store.Transact(func(tx *catalog.Tx) error {
		a, ok := tx.Archived.Delete(archivedID)
		if !ok {
			return fmt.Errorf("archived %s: %w", archivedID, catalog.ErrNotFound)
		}
		purge(tx, a)
		return nil
	})
	if err != nil {
		return fmt.Errorf("permanently deleting %s: %w", archivedID, err)
	}
	m.logger.Info("permanently deleted", zap.String("id", archivedID))
	return nil
}

// Archived lists the archive, oldest first.
func (m *Manager) Archived() []model.ArchivedItem {
	return m.store.Archived()
}

// Purge permanently deletes every archived entity deleted more than
// olderThan ago and returns how many were removed.
func (m *Manager) Purge(olderThan time.Duration) (int, error) {
	var n int
	err := m.store.Transact(func(tx *catalog.Tx) error {
		cutoff := tx.Now().Add(-olderThan)
		for _, a := range tx.Archived.All() {
			if a.DeletedAt.Before(cutoff) {
				tx.Archived.Delete(a.ID)
				purge(tx, a)
				n++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("purging archive: %w", err)
	}
	if n > 0 {
		m.logger.Info("purged archive", zap.Int("removed", n), zap.Duration("older_than", olderThan))
	}
	return n, nil
}

// purge drops what the archived entity still owns in the live catalog,
// unless a live entity has taken over its ID.
func purge(tx *catalog.Tx, a model.ArchivedItem) {
	switch {
	case a.Menu != nil && !tx.Menus.Has(a.Menu.ID):
		catalog.DeleteMenuContents(tx, a.Menu.ID)
	case a.Modifier != nil && !tx.Modifiers.Has(a.Modifier.ID):
		catalog.DetachModifierEverywhere(tx, a.Modifier.ID)
	}
}

func menuItemCount(tx *catalog.Tx, menuID string) int {
	owned := make(map[string]bool)
	for _, c := range tx.Categories.All() {
		if c.MenuID == menuID {
			owned[c.ID] = true
		}
	}
	n := 0
	for _, it := range tx.Items.All() {
		if owned[it.Category] {
			n++
		}
	}
	return n
}

func firstID(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
