// internal/handlers/revenue.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/inkrights/ledger-backend/internal/services"
	"github.com/inkrights/ledger-backend/internal/utils"
)

type RevenueHandler struct {
	revenueService *services.RevenueService
}

func NewRevenueHandler(revenueService *services.RevenueService) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService}
}

// GET /revenue/config
func (h *RevenueHandler) GetConfig(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"fee_percentage":  h.revenueService.FeePercentage(),
		"platform_wallet": h.revenueService.PlatformWallet(),
	})
}

// GET /revenue/balance
func (h *RevenueHandler) GetBalance(c *gin.Context) {
	caller, ok := utils.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	amount, err := h.revenueService.Balance(c.Request.Context(), caller)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"recipient": caller, "amount": amount})
}

// POST /revenue/withdrawals/creator
func (h *RevenueHandler) WithdrawCreator(c *gin.Context) {
	caller, ok := utils.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	amount, err := h.revenueService.WithdrawCreatorFunds(c.Request.Context(), caller)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"recipient": caller, "amount": amount})
}

// POST /revenue/withdrawals/platform
func (h *RevenueHandler) WithdrawPlatform(c *gin.Context) {
	caller, ok := utils.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	amount, err := h.revenueService.WithdrawPlatformFunds(c.Request.Context(), caller)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"recipient": h.revenueService.PlatformWallet(), "amount": amount})
}
