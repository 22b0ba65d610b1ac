package catalog

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nhle/menu-catalog/internal/model"
)

// AddModifier inserts a modifier at the head of the modifier list.
func (s *Store) AddModifier(m model.Modifier) (model.Modifier, error) {
	if strings.TrimSpace(m.Name) == "" {
		return model.Modifier{}, errorf(ErrInvalid, "modifier name must not be empty")
	}
	m = m.Clone()
	err := s.Transact(func(tx *Tx) error {
		if m.ID == "" {
			m.ID = tx.NewID()
		} else if tx.Modifiers.Has(m.ID) {
			return errorf(ErrInvalid, "modifier %s already exists", m.ID)
		}
		if m.Type == "" {
			m.Type = model.ModifierTypeOptional
		}
		fillOptionIDs(tx, &m)
		m.LastModified = tx.Now()
		tx.Modifiers.Prepend(m)
		return nil
	})
	if err != nil {
		return model.Modifier{}, fmt.Errorf("adding modifier: %w", err)
	}
	s.logger.Debug("added modifier", zap.String("id", m.ID), zap.String("name", m.Name))
	return m.Clone(), nil
}

// UpdateModifier replaces the modifier with the same ID. Snapshots already
// taken by items are not touched.
func (s *Store) UpdateModifier(m model.Modifier) error {
	if strings.TrimSpace(m.Name) == "" {
		return errorf(ErrInvalid, "modifier name must not be empty")
	}
	m = m.Clone()
	err := s.Transact(func(tx *Tx) error {
		fillOptionIDs(tx, &m)
		m.LastModified = tx.Now()
		if !tx.Modifiers.Replace(m) {
			return errorf(ErrNotFound, "modifier %s", m.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating modifier %s: %w", m.ID, err)
	}
	s.logger.Debug("updated modifier", zap.String("id", m.ID))
	return nil
}

// RemoveModifier deletes a modifier permanently and drops it from every
// category's modifier set. Item snapshots stay as they are.
func (s *Store) RemoveModifier(id string) error {
	err := s.Transact(func(tx *Tx) error {
		if _, ok := tx.Modifiers.Delete(id); !ok {
			return errorf(ErrNotFound, "modifier %s", id)
		}
		DetachModifierEverywhere(tx, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("removing modifier %s: %w", id, err)
	}
	s.logger.Debug("removed modifier", zap.String("id", id))
	return nil
}

// DetachModifierEverywhere removes modifierID from every category in tx.
func DetachModifierEverywhere(tx *Tx, modifierID string) {
	for _, c := range tx.Categories.All() {
		if c.HasModifier(modifierID) {
			c.SelectedModifiers = without(c.SelectedModifiers, modifierID)
			c.LastModified = tx.Now()
			tx.Categories.Replace(c)
		}
	}
}

// ReorderModifiers sets the modifier display order. ids must name every
// modifier exactly once.
func (s *Store) ReorderModifiers(ids []string) error {
	return s.Transact(func(tx *Tx) error { return tx.Modifiers.Reorder(ids) })
}

// Modifiers returns all modifiers in display order.
func (s *Store) Modifiers() []model.Modifier {
	var out []model.Modifier
	s.read(func(st *Tx) { out = st.Modifiers.All() })
	return out
}

// Modifier returns one modifier.
func (s *Store) Modifier(id string) (model.Modifier, error) {
	var (
		m  model.Modifier
		ok bool
	)
	s.read(func(st *Tx) { m, ok = st.Modifiers.Get(id) })
	if !ok {
		return model.Modifier{}, errorf(ErrNotFound, "modifier %s", id)
	}
	return m, nil
}

// Archived returns the archived entities, oldest archive first.
func (s *Store) Archived() []model.ArchivedItem {
	var out []model.ArchivedItem
	s.read(func(st *Tx) { out = st.Archived.All() })
	return out
}

func fillOptionIDs(tx *Tx, m *model.Modifier) {
	for i := range m.Options {
		if m.Options[i].ID == "" {
			m.Options[i].ID = tx.NewID()
		}
	}
}
