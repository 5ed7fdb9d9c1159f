package models

import "time"

// Stock log action tags. Every quantity-affecting operation appends at
// least one entry carrying one of these.
const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionScrap        = "scrap"
	ActionScanAdd      = "scan_add"
	ActionScanRemove   = "scan_remove"
	ActionConsume      = "consume"
	ActionTransferFrom = "transfer_from"
	ActionTransferTo   = "transfer_to"
	ActionAssemble     = "assemble"
	ActionBOMCreate    = "bom_create"
	ActionBOMUpdate    = "bom_update"
)

// StockLog is one append-only audit record. Entries are never mutated or
// deleted. Amount is a signed delta whose exact meaning depends on the
// action; ResultingQty is the post-action quantity for the affected
// barcode (item total, or the affected location row for transfers).
type StockLog struct {
	Timestamp    time.Time      `json:"timestamp"`
	Barcode      string         `json:"barcode"`
	Action       string         `json:"action"`
	Amount       int            `json:"amount"`
	ResultingQty int            `json:"resulting_qty"`
	Details      map[string]any `json:"details,omitempty"`
}
