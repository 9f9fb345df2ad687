package dto

// ─── Shared reconciliation screen filters ────────────────────────────────────

// PanelFilter drives both sides of a reconciliation screen. Page size is
// fixed at 20 server-side; page indexes are clamped to ≥1.
type PanelFilter struct {
	GroupID        string `form:"group_id"         validate:"required,uuid"`
	InternalSearch string `form:"internal_search"`
	ExternalSearch string `form:"external_search"`
	InternalStatus string `form:"internal_status"` // all | mapped | unmapped
	ExternalStatus string `form:"external_status"`
	InternalPage   int    `form:"internal_page,default=1"`
	ExternalPage   int    `form:"external_page,default=1"`

	// Multi-select facets, raw-material screen only. Empty = no restriction.
	ProductGroups []string `form:"product_groups"`
	CompanyCodes  []string `form:"company_codes"`
}

// Page mirrors reconcile.Page for responses.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
}

// CompanyBadge annotates an external record with its resolved owning company.
// Nil when any resolution hop is missing — not an error, just no badge.
type CompanyBadge struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
