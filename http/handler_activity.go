package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ticketledger/entities"
)

func (h Handler) GetActivity(c echo.Context) error {
	var ticketID *int64
	if raw := c.QueryParam("ticket_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return entities.NewValidationError("invalid ticket_id: " + raw)
		}
		ticketID = &id
	}

	var limit int
	if raw := c.QueryParam("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l < 0 {
			return entities.NewValidationError("invalid limit: " + raw)
		}
		limit = l
	}

	entries, err := h.activityRepo.List(c.Request().Context(), ticketID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entries)
}
