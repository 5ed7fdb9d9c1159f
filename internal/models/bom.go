package models

// BOM maps a product barcode to the component quantities consumed per
// assembled unit. At most one BOM exists per product barcode.
type BOM struct {
	ProductBarcode string         `json:"product_barcode"`
	Description    string         `json:"description"`
	Components     map[string]int `json:"components"` // component barcode -> qty per unit
}
