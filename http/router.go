package http

import (
	"net/http"

	libHttp "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func NewHttpRouter(
	serviceName string,
	eventRepo EventRepository,
	ticketRepo TicketRepository,
	ledgerRepo LedgerRepository,
	reportRepo ReportRepository,
	activityRepo ActivityRepository,
) *echo.Echo {
	e := libHttp.NewEcho()
	e.HTTPErrorHandler = handleError

	e.Use(otelecho.Middleware(serviceName))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := Handler{
		eventRepo:    eventRepo,
		ticketRepo:   ticketRepo,
		ledgerRepo:   ledgerRepo,
		reportRepo:   reportRepo,
		activityRepo: activityRepo,
	}

	e.GET("/", handler.GetDashboard)
	e.GET("/dashboard", handler.GetDashboard)

	e.GET("/events", handler.GetEvents)
	e.POST("/events", handler.PostEvents)
	e.GET("/events/:id", handler.GetEvent)
	e.PUT("/events/:id", handler.PutEvent)
	e.DELETE("/events/:id", handler.DeleteEvent)
	e.POST("/events/:id/tickets", handler.PostTickets)
	e.GET("/events/:id/export/tickets", handler.GetTicketsExport)
	e.GET("/events/:id/export/redemptions", handler.GetRedemptionsExport)

	e.GET("/tickets/lookup", handler.GetTicketLookup)
	e.GET("/tickets/search", handler.GetTicketSearch)
	e.GET("/tickets/qr/:token", handler.GetTicket)
	e.POST("/tickets/qr/:token/redeem", handler.PostRedeem)
	e.PUT("/tickets/:id", handler.PutTicket)
	e.DELETE("/tickets/:id", handler.DeleteTicket)

	e.DELETE("/redemptions/:id", handler.DeleteRedemption)

	e.GET("/activity", handler.GetActivity)

	return e
}
