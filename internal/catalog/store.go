// Package catalog holds the in-memory menu catalog: menus, categories,
// items, modifiers and archived entities, each kept as an ordered list.
package catalog

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/menu-catalog/internal/clock"
	"github.com/nhle/menu-catalog/internal/ident"
	"github.com/nhle/menu-catalog/internal/model"
)

var (
	// ErrNotFound is returned when an operation names an ID that is not in
	// the live collection.
	ErrNotFound = errors.New("not found")

	// ErrNotPermutation is returned when a reorder does not name every
	// existing entry exactly once.
	ErrNotPermutation = errors.New("new order is not a permutation of the existing entries")

	// ErrInvalid is returned for structurally unusable entities, such as a
	// blank name.
	ErrInvalid = errors.New("invalid entity")
)

// Tx is a working copy of the catalog handed to a Transact callback. All
// changes made through it become visible together when the callback
// returns nil and are discarded otherwise.
type Tx struct {
	Menus      *Collection[model.Menu]
	Categories *Collection[model.Category]
	Items      *Collection[model.Item]
	Modifiers  *Collection[model.Modifier]
	Archived   *Collection[model.ArchivedItem]

	activeMenu string
	now        time.Time
	ids        ident.Generator
}

// Now returns the instant the transaction started. Every timestamp
// written in one transaction uses it.
func (tx *Tx) Now() time.Time { return tx.now }

// NewID returns a fresh entity ID.
func (tx *Tx) NewID() string { return tx.ids.NewID() }

// ActiveMenu returns the ID of the menu new categories join by default.
func (tx *Tx) ActiveMenu() string { return tx.activeMenu }

// SetActiveMenu changes the active menu. An empty id clears it.
func (tx *Tx) SetActiveMenu(id string) { tx.activeMenu = id }

// Store is the catalog. It is safe for concurrent use; every exported
// operation is atomic.
type Store struct {
	mu     sync.RWMutex
	state  *Tx
	clock  clock.Clock
	ids    ident.Generator
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for LastModified stamps.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIDs sets the generator used for new entity IDs.
func WithIDs(g ident.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New returns an empty catalog.
func New(opts ...Option) *Store {
	s := &Store{
		clock:  clock.System{},
		ids:    ident.UUID{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = emptyState()
	return s
}

func emptyState() *Tx {
	return &Tx{
		Menus:      newCollection("menu", func(m model.Menu) model.Menu { return m }),
		Categories: newCollection("category", model.Category.Clone),
		Items:      newCollection("item", model.Item.Clone),
		Modifiers:  newCollection("modifier", model.Modifier.Clone),
		Archived:   newCollection("archived item", model.ArchivedItem.Clone),
	}
}

// Transact runs fn against a working copy of the catalog and commits the
// copy only if fn returns nil. It is the building block for operations
// that touch several entities and must apply all-or-nothing.
func (s *Store) Transact(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{
		Menus:      s.state.Menus.fork(),
		Categories: s.state.Categories.fork(),
		Items:      s.state.Items.fork(),
		Modifiers:  s.state.Modifiers.fork(),
		Archived:   s.state.Archived.fork(),
		activeMenu: s.state.activeMenu,
		now:        s.clock.Now(),
		ids:        s.ids,
	}
	if err := fn(tx); err != nil {
		return err
	}
	tx.ids = nil
	s.state = tx
	return nil
}

// read runs fn with the live state under a read lock. fn must not modify
// the collections.
func (s *Store) read(fn func(st *Tx)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Logger returns the store's logger so composing packages log alongside it.
func (s *Store) Logger() *zap.Logger { return s.logger }

// Now returns the store clock's current time.
func (s *Store) Now() time.Time { return s.clock.Now() }

// Snapshot returns a deep copy of the whole catalog.
func (s *Store) Snapshot() model.Snapshot {
	var snap model.Snapshot
	s.read(func(st *Tx) {
		snap = model.Snapshot{
			ActiveMenuID: st.activeMenu,
			Menus:        st.Menus.All(),
			Categories:   st.Categories.All(),
			Items:        st.Items.All(),
			Modifiers:    st.Modifiers.All(),
			Archived:     st.Archived.All(),
		}
	})
	return snap
}

// Load replaces the whole catalog with snap. Duplicate IDs within a
// collection, items whose category is missing and categories whose menu
// is missing are rejected and leave the store unchanged. A category may
// belong to an archived menu.
func (s *Store) Load(snap model.Snapshot) error {
	err := s.Transact(func(tx *Tx) error {
		if err := checkUnique("menu", snap.Menus); err != nil {
			return err
		}
		if err := checkUnique("category", snap.Categories); err != nil {
			return err
		}
		if err := checkUnique("item", snap.Items); err != nil {
			return err
		}
		if err := checkUnique("modifier", snap.Modifiers); err != nil {
			return err
		}
		if err := checkUnique("archived item", snap.Archived); err != nil {
			return err
		}
		if err := checkRefs(snap); err != nil {
			return err
		}
		tx.Menus.replaceAll(snap.Menus)
		tx.Categories.replaceAll(snap.Categories)
		tx.Items.replaceAll(snap.Items)
		tx.Modifiers.replaceAll(snap.Modifiers)
		tx.Archived.replaceAll(snap.Archived)
		tx.activeMenu = snap.ActiveMenuID
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("loaded catalog",
		zap.Int("menus", len(snap.Menus)),
		zap.Int("categories", len(snap.Categories)),
		zap.Int("items", len(snap.Items)),
		zap.Int("modifiers", len(snap.Modifiers)),
		zap.Int("archived", len(snap.Archived)),
	)
	return nil
}

func checkUnique[T model.Entry](kind string, vs []T) error {
	seen := make(map[string]bool, len(vs))
	for _, v := range vs {
		id := v.GetID()
		if id == "" {
			return errorf(ErrInvalid, "loading %ss: empty id", kind)
		}
		if seen[id] {
			return errorf(ErrInvalid, "loading %ss: duplicate id %s", kind, id)
		}
		seen[id] = true
	}
	return nil
}

// checkRefs verifies that every item names a category in snap and every
// category with a menu names a live or archived menu in snap.
func checkRefs(snap model.Snapshot) error {
	menus := make(map[string]bool, len(snap.Menus))
	for _, m := range snap.Menus {
		menus[m.ID] = true
	}
	for _, a := range snap.Archived {
		if a.Menu != nil {
			menus[a.Menu.ID] = true
		}
	}
	for _, c := range snap.Categories {
		if c.MenuID != "" && !menus[c.MenuID] {
			return errorf(ErrNotFound, "loading category %s: menu %s", c.ID, c.MenuID)
		}
	}

	categories := make(map[string]bool, len(snap.Categories))
	for _, c := range snap.Categories {
		categories[c.ID] = true
	}
	for _, it := range snap.Items {
		if !categories[it.Category] {
			return errorf(ErrNotFound, "loading item %s: category %s", it.ID, it.Category)
		}
	}
	if snap.ActiveMenuID != "" && !menus[snap.ActiveMenuID] {
		return errorf(ErrNotFound, "loading active menu %s", snap.ActiveMenuID)
	}
	return nil
}
