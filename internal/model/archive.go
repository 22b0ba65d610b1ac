package model

import "time"

// EntityKind names a catalog entity type.
type EntityKind string

const (
	KindMenu     EntityKind = "menu"
	KindCategory EntityKind = "category"
	KindItem     EntityKind = "item"
	KindModifier EntityKind = "modifier"
)

// DeletionPolicy decides whether deleting an entity of a kind goes
// through the archive or removes it at once.
type DeletionPolicy string

const (
	PolicyArchivable DeletionPolicy = "archivable"
	PolicyImmediate  DeletionPolicy = "immediate"
)

// ArchivedItem is a soft-deleted entity. The summary fields mirror what
// the archive listing shows; exactly one payload field is set and holds
// the entity as it was when archived.
type ArchivedItem struct {
	ID           string     `json:"id" yaml:"id" db:"id"`
	Name         string     `json:"name" yaml:"name" db:"name"`
	ItemCount    int        `json:"item_count" yaml:"item_count" db:"item_count"`
	Status       string     `json:"status" yaml:"status" db:"status"`
	LastModified time.Time  `json:"last_modified" yaml:"last_modified" db:"last_modified"`
	Type         EntityKind `json:"type" yaml:"type" db:"type"`
	DeletedAt    time.Time  `json:"deleted_at" yaml:"deleted_at" db:"deleted_at"`

	Menu     *Menu     `json:"menu,omitempty" yaml:"menu,omitempty" db:"-"`
	Modifier *Modifier `json:"modifier,omitempty" yaml:"modifier,omitempty" db:"-"`
}

// Clone returns a deep copy of a.
func (a ArchivedItem) Clone() ArchivedItem {
	if a.Menu != nil {
		m := *a.Menu
		a.Menu = &m
	}
	if a.Modifier != nil {
		m := a.Modifier.Clone()
		a.Modifier = &m
	}
	return a
}
