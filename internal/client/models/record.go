// Package models defines client-side data models used by the Stockroom client.
package models

// Record is one inventory line item as stored by the backend and mirrored in
// the local cache.
//
// Invariants:
//   - a Record belongs to exactly one Group at any time;
//   - ItemID is unique only within its Group, not globally;
//   - Quantity may go negative transiently while a delta is applied, but is
//     never persisted negative by policy (not hard-enforced here).
type Record struct {
	// ItemID identifies the record within its Group.
	ItemID string `json:"item_id"`

	// Name is the user-visible item name.
	Name string `json:"name"`

	// Quantity is the current stock count.
	Quantity int `json:"quantity"`

	// Location is free-form text describing where the item is kept.
	Location string `json:"location"`

	// AlertThreshold is the quantity at or below which the item is
	// considered low on stock.
	AlertThreshold int `json:"alert_threshold"`

	// GroupID identifies the owning Group ("database" in user-facing terms).
	GroupID string `json:"database_id"`

	// GroupName is the owning Group's display name, denormalized onto every
	// record by the backend schema.
	GroupName string `json:"database_name"`

	// OrganizationID identifies the owning organization.
	OrganizationID string `json:"organization_id"`
}

// Group is a named partition of inventory records. Its existence is derived
// from the records sharing a GroupID; no standalone group rows exist.
type Group struct {
	ID   string `json:"database_id"`
	Name string `json:"database_name"`
}
