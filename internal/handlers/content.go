// internal/handlers/content.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkrights/ledger-backend/internal/services"
	"github.com/inkrights/ledger-backend/internal/utils"
)

type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// parseIDParam reads a positive uint64 path parameter.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// POST /contents
func (h *ContentHandler) CreateContent(c *gin.Context) {
	caller, ok := utils.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	record, err := h.contentService.Create(c.Request.Context(), caller, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, record)
}

// GET /contents/:id
func (h *ContentHandler) GetContent(c *gin.Context) {
	contentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.contentService.Get(c.Request.Context(), contentID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, record)
}

// GET /contents?creator=<uuid>
func (h *ContentHandler) ListContents(c *gin.Context) {
	creatorStr := c.Query("creator")
	if creatorStr == "" {
		utils.BadRequestResponse(c, "creator query parameter is required", nil)
		return
	}
	creator, err := uuid.Parse(creatorStr)
	if err != nil {
		utils.BadRequestResponse(c, "invalid creator", nil)
		return
	}

	records, err := h.contentService.ListByCreator(c.Request.Context(), creator)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, records)
}
