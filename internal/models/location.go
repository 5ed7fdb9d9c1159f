package models

// Location is a named storage place. Names are unique case-insensitively.
type Location struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	LocationType    string `json:"locationType"`
	StorageCategory string `json:"storageCategory"`
	Company         string `json:"company"`
}

// Defaults applied when a location is created without these fields.
const (
	DefaultLocationType = "Internal Location"
	DefaultCompany      = "My Company"
)
