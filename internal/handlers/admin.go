// internal/handlers/admin.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkrights/ledger-backend/internal/auth"
	"github.com/inkrights/ledger-backend/internal/middleware"
	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/services"
	"github.com/inkrights/ledger-backend/internal/utils"
)

// AdminHandler exposes the privileged setters. When a timelock delay is
// configured, each setter is queued through the admin command queue and
// becomes effective only after an explicit execute call; with a zero
// delay it applies immediately.
type AdminHandler struct {
	adminService   *services.AdminService
	rightsService  *services.RightsService
	catalogService *services.CatalogService
	revenueService *services.RevenueService
}

func NewAdminHandler(adminService *services.AdminService, rightsService *services.RightsService, catalogService *services.CatalogService, revenueService *services.RevenueService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		rightsService:  rightsService,
		catalogService: catalogService,
		revenueService: revenueService,
	}
}

type setFeeRequest struct {
	FeePercentage *uint64 `json:"fee_percentage" binding:"required"`
}

type setWalletRequest struct {
	Address uuid.UUID `json:"address" binding:"required"`
}

// dispatch applies the mutation now or queues it behind the timelock.
func (h *AdminHandler) dispatch(c *gin.Context, admin auth.AdminCapability, kind string, params models.JSONB, apply func(ctx context.Context) error) {
	if h.adminService.Delay() == 0 {
		if err := apply(c.Request.Context()); err != nil {
			utils.ServiceErrorResponse(c, err)
			return
		}
		utils.SuccessResponse(c, gin.H{"kind": kind, "applied": true})
		return
	}

	cmd, err := h.adminService.Propose(c.Request.Context(), admin, kind, params, apply)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.CreatedResponse(c, cmd)
}

// PUT /admin/revenue/fee
func (h *AdminHandler) SetFeePercentage(c *gin.Context) {
	admin := middleware.CapabilityFromContext(c)

	var req setFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	pct := *req.FeePercentage
	h.dispatch(c, admin, "revenue.set_fee_percentage",
		models.JSONB{"fee_percentage": pct},
		func(ctx context.Context) error {
			return h.revenueService.SetFeePercentage(ctx, admin, pct)
		})
}

// PUT /admin/revenue/platform-wallet
func (h *AdminHandler) SetPlatformWallet(c *gin.Context) {
	admin := middleware.CapabilityFromContext(c)

	var req setWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	addr := req.Address
	h.dispatch(c, admin, "revenue.set_platform_wallet",
		models.JSONB{"address": addr.String()},
		func(ctx context.Context) error {
			return h.revenueService.SetPlatformWallet(ctx, admin, addr)
		})
}

// PUT /admin/rights/content-registry
func (h *AdminHandler) SetContentRegistryAddress(c *gin.Context) {
	admin := middleware.CapabilityFromContext(c)

	var req setWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	addr := req.Address
	h.dispatch(c, admin, "rights.set_content_registry",
		models.JSONB{"address": addr.String()},
		func(ctx context.Context) error {
			return h.rightsService.SetContentRegistryAddress(ctx, admin, addr)
		})
}

// POST /admin/revenue/emergency-withdrawal
//
// Stuck-funds recovery is deliberately not queued behind the timelock.
func (h *AdminHandler) EmergencyWithdraw(c *gin.Context) {
	admin := middleware.CapabilityFromContext(c)

	amount, err := h.revenueService.EmergencyWithdraw(c.Request.Context(), admin)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"amount": amount})
}

// GET /admin/commands
func (h *AdminHandler) ListCommands(c *gin.Context) {
	admin := middleware.CapabilityFromContext(c)

	commands, err := h.adminService.List(c.Request.Context(), admin)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, commands)
}

// POST /admin/commands/:id/execute
func (h *AdminHandler) ExecuteCommand(c *gin.Context) {
	admin := middleware.CapabilityFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.Execute(c.Request.Context(), admin, id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"command_id": id, "status": services.CommandStatusExecuted})
}

// POST /admin/commands/:id/cancel
func (h *AdminHandler) CancelCommand(c *gin.Context) {
	admin := middleware.CapabilityFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.Cancel(c.Request.Context(), admin, id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"command_id": id, "status": services.CommandStatusCancelled})
}
