// internal/handlers/rights.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkrights/ledger-backend/internal/services"
	"github.com/inkrights/ledger-backend/internal/utils"
)

type RightsHandler struct {
	rightsService *services.RightsService
}

func NewRightsHandler(rightsService *services.RightsService) *RightsHandler {
	return &RightsHandler{rightsService: rightsService}
}

type approveRequest struct {
	Spender uuid.UUID `json:"spender"`
}

type transferRequest struct {
	From uuid.UUID `json:"from" binding:"required"`
	To   uuid.UUID `json:"to" binding:"required"`
}

type operatorRequest struct {
	Operator uuid.UUID `json:"operator" binding:"required"`
	Enabled  *bool     `json:"enabled" binding:"required"`
}

// GET /rights/:id/owner
func (h *RightsHandler) GetOwner(c *gin.Context) {
	contentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	owner, err := h.rightsService.OwnerOf(c.Request.Context(), contentID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"content_id": contentID, "owner": owner})
}

// GET /rights/:id/approved
func (h *RightsHandler) GetApproved(c *gin.Context) {
	contentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	spender, err := h.rightsService.GetApproved(c.Request.Context(), contentID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"content_id": contentID, "approved": spender})
}

// POST /rights/:id/approve
func (h *RightsHandler) Approve(c *gin.Context) {
	caller, ok := utils.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	contentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	// A zero spender clears the standing approval.
	if err := h.rightsService.Approve(c.Request.Context(), caller, req.Spender, contentID); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"content_id": contentID, "approved": req.Spender})
}

// POST /rights/:id/transfer
func (h *RightsHandler) Transfer(c *gin.Context) {
	caller, ok := utils.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	contentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	if err := h.rightsService.TransferFrom(c.Request.Context(), caller, req.From, req.To, contentID); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"content_id": contentID, "owner": req.To})
}

// POST /rights/operators
func (h *RightsHandler) SetOperator(c *gin.Context) {
	caller, ok := utils.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req operatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	if err := h.rightsService.SetApprovalForAll(c.Request.Context(), caller, req.Operator, *req.Enabled); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"owner": caller, "operator": req.Operator, "enabled": *req.Enabled})
}

// GET /rights/operators?owner=<uuid>&operator=<uuid>
func (h *RightsHandler) GetOperator(c *gin.Context) {
	owner, err := uuid.Parse(c.Query("owner"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid owner", nil)
		return
	}
	operator, err := uuid.Parse(c.Query("operator"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid operator", nil)
		return
	}

	enabled, svcErr := h.rightsService.IsApprovedForAll(c.Request.Context(), owner, operator)
	if svcErr != nil {
		utils.ServiceErrorResponse(c, svcErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"owner": owner, "operator": operator, "enabled": enabled})
}
