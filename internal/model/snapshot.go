package model

// Snapshot is the complete catalog state: the five ordered collections
// plus the active menu. Slice order is display order.
type Snapshot struct {
	ActiveMenuID string         `json:"active_menu_id" yaml:"active_menu_id"`
	Menus        []Menu         `json:"menus" yaml:"menus"`
	Categories   []Category     `json:"categories" yaml:"categories"`
	Items        []Item         `json:"items" yaml:"items"`
	Modifiers    []Modifier     `json:"modifiers" yaml:"modifiers"`
	Archived     []ArchivedItem `json:"archived" yaml:"archived"`
}
