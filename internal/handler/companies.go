package handler

import (
	"net/http"

	"vionup/internal/apierror"
	"vionup/internal/dto"
	"vionup/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CompaniesHandler struct{ svc service.CompanyService }

func NewCompaniesHandler(svc service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{svc: svc}
}

func (h *CompaniesHandler) Panels(c *gin.Context) {
	var filter dto.PanelFilter
	if !bindPanelFilter(c, &filter) {
		return
	}
	resp, err := h.svc.Panels(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CompaniesHandler) CreateMapping(c *gin.Context) {
	var req dto.CreateCompanyMappingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateMapping(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CompaniesHandler) DeleteMapping(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.DeleteMapping(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Resolve answers "which canonical company owns external code X". A missing
// company is a 200 with null body, not an error: unresolvable codes are a
// normal state while mappings are still being built.
func (h *CompaniesHandler) Resolve(c *gin.Context) {
	groupID, err := uuid.Parse(c.Query("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("group_id invalido"))
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, apierror.New("code obrigatorio"))
		return
	}
	resp, err := h.svc.ResolveOwningCompany(c.Request.Context(), groupID, code)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": resp})
}
