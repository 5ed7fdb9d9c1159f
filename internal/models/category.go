package models

// CategoryTag is a display tag for grouping stock items. Not consumed by
// the ledger; pure CRUD.
type CategoryTag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
