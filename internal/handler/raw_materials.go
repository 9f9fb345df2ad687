package handler

import (
	"net/http"

	"vionup/internal/apierror"
	"vionup/internal/dto"
	"vionup/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RawMaterialsHandler struct{ svc service.RawMaterialService }

func NewRawMaterialsHandler(svc service.RawMaterialService) *RawMaterialsHandler {
	return &RawMaterialsHandler{svc: svc}
}

// Panels godoc
// @Summary Painel de conciliacao de insumos
// @Tags raw-materials
// @Produce json
// @Success 200 {object} dto.RawMaterialPanelsResponse
// @Router /v1/raw-materials/panels [get]
func (h *RawMaterialsHandler) Panels(c *gin.Context) {
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

func (h *RawMaterialsHandler) CreateMapping(c *gin.Context) {
	var req dto.CreateWeightedMappingRequest
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

func (h *RawMaterialsHandler) UpdateMappingQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.UpdateWeightedMappingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateMappingQuantity(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RawMaterialsHandler) DeleteMapping(c *gin.Context) {
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
