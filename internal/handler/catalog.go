package handler

import (
	"net/http"

	"vionup/internal/apierror"
	"vionup/internal/dto"
	"vionup/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler serves the read-only input listings: canonical records and
// imported external records, scoped by group. No reconciliation state here.
type CatalogHandler struct {
	rawMaterialRepo repository.RawMaterialRepository
	productRepo     repository.ProductRepository
	employeeRepo    repository.EmployeeRepository
	companyRepo     repository.CompanyRepository
	extRepo         repository.ExternalRepository
}

func NewCatalogHandler(
	rawMaterialRepo repository.RawMaterialRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	companyRepo repository.CompanyRepository,
	extRepo repository.ExternalRepository,
) *CatalogHandler {
	return &CatalogHandler{
		rawMaterialRepo: rawMaterialRepo,
		productRepo:     productRepo,
		employeeRepo:    employeeRepo,
		companyRepo:     companyRepo,
		extRepo:         extRepo,
	}
}

func groupIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Query("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("group_id invalido"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *CatalogHandler) ListRawMaterials(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	materials, err := h.rawMaterialRepo.ListByGroup(c.Request.Context(), groupID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.RawMaterialResponse, 0, len(materials))
	for _, m := range materials {
		item := dto.RawMaterialResponse{ID: m.ID.String(), Name: m.Name, Unit: m.Unit, Level: m.Level}
		if m.ParentID != nil {
			parent := m.ParentID.String()
			item.ParentID = &parent
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	products, err := h.productRepo.ListByGroup(c.Request.Context(), groupID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponse{ID: p.ID.String(), Name: p.Name, Category: p.Category})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *CatalogHandler) ListEmployees(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	employees, err := h.employeeRepo.ListByGroup(c.Request.Context(), groupID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, dto.EmployeeResponse{ID: e.ID.String(), Name: e.Name, Role: e.Role})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *CatalogHandler) ListCompanies(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	companies, err := h.companyRepo.ListByGroup(c.Request.Context(), groupID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, comp := range companies {
		out = append(out, dto.CompanyResponse{ID: comp.ID.String(), Name: comp.Name, TradeName: comp.TradeName})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *CatalogHandler) ListExternalProducts(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	records, err := h.extRepo.ListProducts(c.Request.Context(), groupID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.ExternalProductResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ExternalProductResponse{
			ExternalID:   r.ExternalID,
			ExternalCode: r.ExternalCode,
			Name:         r.Name,
			ProductGroup: r.ProductGroup,
			CompanyCode:  r.ExternalCompanyID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *CatalogHandler) ListExternalEmployees(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	records, err := h.extRepo.ListEmployees(c.Request.Context(), groupID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.ExternalEmployeeResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ExternalEmployeeResponse{
			ExternalID:  r.ExternalID,
			Name:        r.Name,
			CompanyCode: r.ExternalCompanyID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *CatalogHandler) ListExternalCompanies(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	records, err := h.extRepo.ListCompanies(c.Request.Context(), groupID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.ExternalCompanyResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ExternalCompanyResponse{
			ID:           r.ID.String(),
			ExternalID:   r.ExternalID,
			ExternalCode: r.ExternalCode,
			Name:         r.Name,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}
