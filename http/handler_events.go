package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ticketledger/entities"
)

func (h Handler) GetEvents(c echo.Context) error {
	events, err := h.eventRepo.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, events)
}

func (h Handler) PostEvents(c echo.Context) error {
	var request entities.EventInput
	if err := c.Bind(&request); err != nil {
		return err
	}

	in, err := request.Normalize()
	if err != nil {
		return err
	}

	event, err := h.eventRepo.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, event)
}

func (h Handler) GetEvent(c echo.Context) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.eventRepo.Detail(c.Request().Context(), eventID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, detail)
}

func (h Handler) PutEvent(c echo.Context) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request entities.EventInput
	if err := c.Bind(&request); err != nil {
		return err
	}

	in, err := request.Normalize()
	if err != nil {
		return err
	}

	event, err := h.eventRepo.Update(c.Request().Context(), eventID, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, event)
}

func (h Handler) DeleteEvent(c echo.Context) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.eventRepo.Delete(c.Request().Context(), eventID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
