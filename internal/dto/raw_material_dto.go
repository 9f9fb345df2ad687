package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateWeightedMappingRequest struct {
	RawMaterialID     string          `json:"raw_material_id"     validate:"required,uuid"`
	ExternalProductID string          `json:"external_product_id" validate:"required"`
	QuantityPerUnit   decimal.Decimal `json:"quantity_per_unit"   validate:"required"`
}

type UpdateWeightedMappingRequest struct {
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit" validate:"required"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type WeightedMappingResponse struct {
	ID                string          `json:"id"`
	RawMaterialID     string          `json:"raw_material_id"`
	ExternalProductID string          `json:"external_product_id"`
	// ExternalProductName falls back to the raw external id when the imported
	// record no longer exists (orphan mapping).
	ExternalProductName string          `json:"external_product_name"`
	QuantityPerUnit     decimal.Decimal `json:"quantity_per_unit"`
}

type RawMaterialPanelItem struct {
	ID       string                    `json:"id"`
	Name     string                    `json:"name"`
	Unit     string                    `json:"unit"`
	Linked   bool                      `json:"linked"`
	Mappings []WeightedMappingResponse `json:"mappings"`
}

type ExternalProductPanelItem struct {
	ExternalID   string        `json:"external_id"`
	ExternalCode string        `json:"external_code"`
	Name         string        `json:"name"`
	ProductGroup string        `json:"product_group"`
	Linked       bool          `json:"linked"`
	Company      *CompanyBadge `json:"company"`
}

type RawMaterialPanelsResponse struct {
	Internal Page[RawMaterialPanelItem]     `json:"internal"`
	External Page[ExternalProductPanelItem] `json:"external"`
}
