package handler

import (
	"net/http"

	"vionup/internal/apierror"
	"vionup/internal/dto"
	"vionup/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) Panels(c *gin.Context) {
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

func (h *ProductsHandler) CreateMapping(c *gin.Context) {
	var req dto.CreateProductMappingRequest
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

// QuickCreate promotes an external-only record into a canonical product and
// links it in one call.
func (h *ProductsHandler) QuickCreate(c *gin.Context) {
	var req dto.QuickCreateProductRequest
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

func (h *ProductsHandler) DeleteMapping(c *gin.Context) {
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
