package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateEmployeeMappingRequest struct {
	GroupID    string `json:"group_id"    validate:"required,uuid"`
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	ExternalID string `json:"external_id" validate:"required"`
}

type QuickCreateEmployeeRequest struct {
	GroupID    string `json:"group_id"    validate:"required,uuid"`
	Name       string `json:"name"        validate:"required,min=2,max=120"`
	Role       string `json:"role"`
	ExternalID string `json:"external_id" validate:"required"`
}

// BulkAssignEmployeesRequest links every eligible unlinked external employee
// by quick-creating a canonical record for each.
type BulkAssignEmployeesRequest struct {
	GroupID string `json:"group_id" validate:"required,uuid"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type EmployeePanelItem struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Role     string                  `json:"role"`
	Linked   bool                    `json:"linked"`
	Mappings []SimpleMappingResponse `json:"mappings"`
}

type ExternalEmployeePanelItem struct {
	ExternalID string        `json:"external_id"`
	Name       string        `json:"name"`
	Linked     bool          `json:"linked"`
	Company    *CompanyBadge `json:"company"`
}

type EmployeePanelsResponse struct {
	Internal Page[EmployeePanelItem]         `json:"internal"`
	External Page[ExternalEmployeePanelItem] `json:"external"`
}

// BulkAssignResponse reports per-item outcomes; duplicate rejections are
// collected, never fatal.
type BulkAssignResponse struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
