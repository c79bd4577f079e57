package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/service"
)

type InventoryHandler struct{ svc service.ProductService }

func NewInventoryHandler(svc service.ProductService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Restock godoc
// @Summary      Add stock
// @Description  Increases a product's stock through the locked inventory path.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Product UUID"
// @Param        body body dto.StockAdjustRequest true "Quantity to add"
// @Success      200  {object} dto.ProductResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/products/{id}/restock [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.StockAdjustRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Withdraw godoc
// @Summary      Withdraw stock
// @Description  Decreases stock outside a sale (waste, breakage). Fails with 409 on insufficient stock.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Product UUID"
// @Param        body body dto.StockAdjustRequest true "Quantity to remove"
// @Success      200  {object} dto.ProductResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/products/{id}/withdraw [post]
func (h *InventoryHandler) Withdraw(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.StockAdjustRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Withdraw(c.Request.Context(), id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock godoc
// @Summary      List low-stock products
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProductResponse
// @Router       /v1/products/low-stock [get]
func (h *InventoryHandler) LowStock(c *gin.Context) {
	resp, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
