package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ticketledger/entities"
	"ticketledger/metrics"
)

func (h Handler) PostTickets(c echo.Context) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request entities.TicketSale
	if err := c.Bind(&request); err != nil {
		return err
	}

	ticket, err := request.ToTicket(eventID)
	if err != nil {
		return err
	}

	sold, err := h.ticketRepo.Sell(c.Request().Context(), ticket)
	if err != nil {
		return err
	}
	metrics.TicketSold(strconv.FormatInt(eventID, 10))

	return c.JSON(http.StatusCreated, sold)
}

func (h Handler) GetTicket(c echo.Context) error {
	detail, err := h.ticketRepo.Detail(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, detail)
}

func (h Handler) PutTicket(c echo.Context) error {
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request entities.TicketEdit
	if err := c.Bind(&request); err != nil {
		return err
	}

	ticket, err := h.ticketRepo.Update(c.Request().Context(), ticketID, request)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ticket)
}

func (h Handler) DeleteTicket(c echo.Context) error {
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.ticketRepo.Delete(c.Request().Context(), ticketID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetTicketLookup resolves a query to a single ticket. Several matches are
// answered with 409 and the candidate list.
func (h Handler) GetTicketLookup(c echo.Context) error {
	var query entities.LookupQuery
	if err := c.Bind(&query); err != nil {
		return err
	}

	ticket, err := h.ticketRepo.Lookup(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ticket)
}

func (h Handler) GetTicketSearch(c echo.Context) error {
	var query entities.LookupQuery
	if err := c.Bind(&query); err != nil {
		return err
	}

	var (
		tickets []entities.Ticket
		err     error
	)
	if query.Name != "" {
		tickets, err = h.ticketRepo.SearchByBuyer(c.Request().Context(), query.Name)
	} else {
		tickets, err = h.ticketRepo.SearchByToken(c.Request().Context(), query.Token)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tickets)
}
