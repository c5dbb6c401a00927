package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"ticketledger/export"
)

func (h Handler) GetDashboard(c echo.Context) error {
	dashboard, err := h.reportRepo.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboard)
}

func (h Handler) GetTicketsExport(c echo.Context) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	event, tickets, err := h.reportRepo.EventTickets(c.Request().Context(), eventID)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteTickets(&buf, event, tickets); err != nil {
		return err
	}

	return attachCSV(c, export.TicketsFileName(event), buf.Bytes())
}

func (h Handler) GetRedemptionsExport(c echo.Context) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.eventRepo.EventByID(c.Request().Context(), eventID); err != nil {
		return err
	}

	rows, err := h.ledgerRepo.RedemptionsByEvent(c.Request().Context(), eventID)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteRedemptions(&buf, rows); err != nil {
		return err
	}

	return attachCSV(c, export.RedemptionsFileName(eventID), buf.Bytes())
}

func attachCSV(c echo.Context, fileName string, content []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Blob(http.StatusOK, "text/csv", content)
}
