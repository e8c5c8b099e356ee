// internal/handlers/catalog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkrights/ledger-backend/internal/services"
	"github.com/inkrights/ledger-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type purchaseRequest struct {
	PaidAmount uint64 `json:"paid_amount" binding:"required"`
}

// POST /products
func (h *CatalogHandler) RegisterProduct(c *gin.Context) {
	caller, ok := utils.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.RegisterProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	listing, err := h.catalogService.RegisterProduct(c.Request.Context(), caller, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, listing)
}

// GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listing, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, listing)
}

// GET /products?content_id=<id>
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Query("content_id"), 10, 64)
	if err != nil || contentID == 0 {
		utils.BadRequestResponse(c, "content_id query parameter is required", nil)
		return
	}

	ids, svcErr := h.catalogService.ListProductIDsByContent(c.Request.Context(), contentID)
	if svcErr != nil {
		utils.ServiceErrorResponse(c, svcErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"content_id": contentID, "product_ids": ids})
}

// PATCH /products/:id/active
func (h *CatalogHandler) SetActive(c *gin.Context) {
	caller, ok := utils.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	if err := h.catalogService.SetActive(c.Request.Context(), caller, productID, *req.Active); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"product_id": productID, "active": *req.Active})
}

// POST /products/:id/purchase
func (h *CatalogHandler) Purchase(c *gin.Context) {
	caller, ok := utils.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	receipt, err := h.catalogService.Purchase(c.Request.Context(), caller, productID, req.PaidAmount)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, receipt)
}
