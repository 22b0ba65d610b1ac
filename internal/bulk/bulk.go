// Package bulk applies delete, copy and move to many items at once. Each
// call is one catalog transaction: it applies completely or not at all.
package bulk

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nhle/menu-catalog/internal/catalog"
	"github.com/nhle/menu-catalog/internal/model"
)

// Service runs bulk item operations against a catalog.
type Service struct {
	store  *catalog.Store
	logger *zap.Logger
}

// New returns a Service for s. A nil logger falls back to the store's.
func New(s *catalog.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = s.Logger()
	}
	return &Service{store: s, logger: logger}
}

// Delete removes every item whose ID is in ids. Unknown IDs are ignored,
// so repeating a delete is harmless. It returns how many items were
// removed.
func (b *Service) Delete(ids []string) (int, error) {
	want := set(ids)
	var n int
	err := b.store.Transact(func(tx *catalog.Tx) error {
		n = tx.Items.DeleteWhere(func(it model.Item) bool { return want[it.ID] })
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("deleting items: %w", err)
	}
	b.logger.Info("bulk deleted items", zap.Int("requested", len(ids)), zap.Int("removed", n))
	return n, nil
}

// Copy duplicates the items named by ids into targetCategoryID. Copies
// get fresh IDs and are inserted at the head of the item list in the
// order ids lists them; an ID listed twice is copied once. Originals are
// left untouched. It returns the copies.
func (b *Service) Copy(ids []string, targetCategoryID string) ([]model.Item, error) {
	var copies []model.Item
	err := b.store.Transact(func(tx *catalog.Tx) error {
		if !tx.Categories.Has(targetCategoryID) {
			return fmt.Errorf("category %s: %w", targetCategoryID, catalog.ErrNotFound)
		}
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			it, ok := tx.Items.Get(id)
			if !ok {
				continue
			}
			it.ID = tx.NewID()
			it.Category = targetCategoryID
			it.LastModified = tx.Now()
			copies = append(copies, it)
		}
		tx.Items.Prepend(copies...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("copying items: %w", err)
	}
	b.logger.Info("bulk copied items",
		zap.String("target", targetCategoryID), zap.Int("copied", len(copies)))
	return copies, nil
}

// Move reassigns the items named by ids to targetCategoryID, keeping
// their IDs and positions. It returns how many items were moved.
func (b *Service) Move(ids []string, targetCategoryID string) (int, error) {
	want := set(ids)
	var n int
	err := b.store.Transact(func(tx *catalog.Tx) error {
		if !tx.Categories.Has(targetCategoryID) {
			return fmt.Errorf("category %s: %w", targetCategoryID, catalog.ErrNotFound)
		}
		for _, it := range tx.Items.All() {
			if !want[it.ID] {
				continue
			}
			it.Category = targetCategoryID
			it.LastModified = tx.Now()
			tx.Items.Replace(it)
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("moving items: %w", err)
	}
	b.logger.Info("bulk moved items",
		zap.String("target", targetCategoryID), zap.Int("moved", n))
	return n, nil
}

func set(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
