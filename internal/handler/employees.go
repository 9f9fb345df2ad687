package handler

import (
	"net/http"

	"vionup/internal/apierror"
	"vionup/internal/dto"
	"vionup/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EmployeesHandler struct{ svc service.EmployeeService }

func NewEmployeesHandler(svc service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{svc: svc}
}

func (h *EmployeesHandler) Panels(c *gin.Context) {
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

func (h *EmployeesHandler) CreateMapping(c *gin.Context) {
	var req dto.CreateEmployeeMappingRequest
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

func (h *EmployeesHandler) QuickCreate(c *gin.Context) {
	var req dto.QuickCreateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.QuickCreate(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// BulkAssign quick-creates a canonical employee for every unlinked external
// record in the group. Partial failures come back in the response body.
func (h *EmployeesHandler) BulkAssign(c *gin.Context) {
	var req dto.BulkAssignEmployeesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.BulkAssign(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeesHandler) DeleteMapping(c *gin.Context) {
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
