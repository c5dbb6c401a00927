package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"

	"ticketledger/entities"
)

type errorResponse struct {
	Error      string            `json:"error"`
	Excess     *int64            `json:"excess,omitempty"`
	Candidates []entities.Ticket `json:"candidates,omitempty"`
}

// handleError renders domain errors returned by handlers with their HTTP status.
func handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, body := toErrorResponse(err)

	logger := log.FromContext(c.Request().Context()).WithError(err)
	if code >= http.StatusInternalServerError {
		logger.Error("Request failed")
	} else {
		logger.Debug("Request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		logger.WithField("response_error", err.Error()).Error("Could not write error response")
	}
}

func toErrorResponse(err error) (int, errorResponse) {
	var (
		validation entities.ValidationError
		exceeds    *entities.ExceedsBalanceError
		ambiguous  *entities.AmbiguousLookupError
		httpErr    *echo.HTTPError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, errorResponse{Error: validation.Message}
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.As(err, &exceeds):
		excess := exceeds.Excess()
		return http.StatusUnprocessableEntity, errorResponse{Error: exceeds.Error(), Excess: &excess}
	case entities.IsBusinessRuleViolation(err):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.As(err, &ambiguous):
		return http.StatusConflict, errorResponse{Error: ambiguous.Error(), Candidates: ambiguous.Candidates}
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, errorResponse{Error: msg}
	default:
		return http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)}
	}
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, entities.NewValidationError("invalid " + name + ": " + c.Param(name))
	}

	return id, nil
}
