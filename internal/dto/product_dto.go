package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateProductMappingRequest struct {
	GroupID    string `json:"group_id"    validate:"required,uuid"`
	ProductID  string `json:"product_id"  validate:"required,uuid"`
	ExternalID string `json:"external_id" validate:"required"`
}

// QuickCreateProductRequest promotes an external-only record into a canonical
// product and links it in one operation.
type QuickCreateProductRequest struct {
	GroupID    string `json:"group_id"    validate:"required,uuid"`
	Name       string `json:"name"        validate:"required,min=2,max=120"`
	Category   string `json:"category"`
	ExternalID string `json:"external_id" validate:"required"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type SimpleMappingResponse struct {
	ID         string `json:"id"`
	InternalID string `json:"internal_id"`
	ExternalID string `json:"external_id"`
	// ExternalName falls back to the raw external id for orphan mappings.
	ExternalName string `json:"external_name"`
}

type ProductPanelItem struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Category string                  `json:"category"`
	Linked   bool                    `json:"linked"`
	Mappings []SimpleMappingResponse `json:"mappings"`
}

type ProductPanelsResponse struct {
	Internal Page[ProductPanelItem]         `json:"internal"`
	External Page[ExternalProductPanelItem] `json:"external"`
}
