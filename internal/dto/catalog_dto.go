package dto

// Read-only catalog listings. These feed dropdowns and the debug views of the
// dashboard; reconciliation state (linked flags, badges) lives in the panel
// responses, not here.

type RawMaterialResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Level    int     `json:"level"`
	ParentID *string `json:"parent_id"`
}

type ProductResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type EmployeeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type ExternalProductResponse struct {
	ExternalID   string `json:"external_id"`
	ExternalCode string `json:"external_code"`
	Name         string `json:"name"`
	ProductGroup string `json:"product_group"`
	CompanyCode  string `json:"company_code"`
}

type ExternalEmployeeResponse struct {
	ExternalID  string `json:"external_id"`
	Name        string `json:"name"`
	CompanyCode string `json:"company_code"`
}

type ExternalCompanyResponse struct {
	ID           string `json:"id"`
	ExternalID   string `json:"external_id"`
	ExternalCode string `json:"external_code"`
	Name         string `json:"name"`
}
