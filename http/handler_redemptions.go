package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ticketledger/entities"
	"ticketledger/metrics"
)

type redeemRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

func (h Handler) PostRedeem(c echo.Context) error {
	var request redeemRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	start := time.Now()
	result, err := h.ledgerRepo.Redeem(c.Request().Context(), entities.Redemption{
		QRToken: c.Param("token"),
		Amount:  request.Amount,
		Reason:  request.Reason,
	})
	metrics.RedemptionAttempted(request.Amount, start, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, result)
}

func (h Handler) DeleteRedemption(c echo.Context) error {
	transactionID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.ledgerRepo.UndoRedemption(c.Request().Context(), transactionID)
	if err != nil {
		return err
	}
	metrics.RedemptionUndone()

	return c.JSON(http.StatusOK, result)
}
