// internal/handlers/events.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
	"github.com/inkrights/ledger-backend/internal/utils"
)

type EventsHandler struct {
	events store.EventStore
}

func NewEventsHandler(events store.EventStore) *EventsHandler {
	return &EventsHandler{events: events}
}

// GET /events?type=&actor=&content_id=&product_id=&page=&limit=
func (h *EventsHandler) ListEvents(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := store.EventFilter{
		Type:   models.EventType(c.Query("type")),
		Limit:  params.Limit,
		Offset: params.Offset(),
	}

	if actorStr := c.Query("actor"); actorStr != "" {
		actor, err := uuid.Parse(actorStr)
		if err != nil {
			utils.BadRequestResponse(c, "invalid actor", nil)
			return
		}
		filter.Actor = &actor
	}
	if idStr := c.Query("content_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			utils.BadRequestResponse(c, "invalid content_id", nil)
			return
		}
		filter.ContentID = &id
	}
	if idStr := c.Query("product_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			utils.BadRequestResponse(c, "invalid product_id", nil)
			return
		}
		filter.ProductID = &id
	}

	events, total, err := h.events.List(c.Request.Context(), filter)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, events, params, total)
}
