package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateCompanyMappingRequest struct {
	GroupID           string `json:"group_id"            validate:"required,uuid"`
	CompanyID         string `json:"company_id"          validate:"required,uuid"`
	ExternalCompanyID string `json:"external_company_id" validate:"required,uuid"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type CompanyPanelItem struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Linked   bool                    `json:"linked"`
	Mappings []SimpleMappingResponse `json:"mappings"`
}

type ExternalCompanyPanelItem struct {
	ID           string `json:"id"`
	ExternalID   string `json:"external_id"`
	ExternalCode string `json:"external_code"`
	Name         string `json:"name"`
	Linked       bool   `json:"linked"`
}

type CompanyPanelsResponse struct {
	Internal Page[CompanyPanelItem]         `json:"internal"`
	External Page[ExternalCompanyPanelItem] `json:"external"`
}

type CompanyResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	TradeName *string `json:"trade_name"`
}
