// Package store persists catalog snapshots. SQLiteStore keeps one JSON
// document per entity plus the explicit display order of every list;
// ReadYAML and WriteYAML move whole snapshots in and out as YAML.
package store

import (
	"context"

	"github.com/nhle/menu-catalog/internal/model"
)

// List names used as keys in the list_order table.
const (
	ListMenus      = "menus"
	ListCategories = "categories"
	ListItems      = "items"
	ListModifiers  = "modifiers"
	ListArchived   = "archived_items"
)

// Store defines the persistence interface for catalog snapshots.
type Store interface {
	// SaveSnapshot replaces everything stored with snap.
	SaveSnapshot(ctx context.Context, snap model.Snapshot) error

	// LoadSnapshot returns the stored catalog. An empty database yields an
	// empty snapshot.
	LoadSnapshot(ctx context.Context) (model.Snapshot, error)

	Close() error
}
