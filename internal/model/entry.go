package model

// Entry is implemented by every entity kept in an ordered catalog list.
type Entry interface {
	GetID() string
}

func (m Menu) GetID() string         { return m.ID }
func (c Category) GetID() string     { return c.ID }
func (it Item) GetID() string        { return it.ID }
func (m Modifier) GetID() string     { return m.ID }
func (a ArchivedItem) GetID() string { return a.ID }
