package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"ticketledger/db"
	ticketsHttp "ticketledger/http"
	"ticketledger/message"
	"ticketledger/message/event"
	"ticketledger/message/outbox"
)

type Service struct {
	httpAddr        string
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
}

type Config struct {
	HTTPAddr    string
	ServiceName string
}

// New wires repositories, the outbox forwarder, the activity event processor
// and the HTTP API. The database schema must already be migrated.
func New(
	cfg Config,
	redisClient *redis.Client,
	conn *db.DB,
) (Service, error) {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher, err := message.NewRedisPublisher(redisClient, watermillLogger)
	if err != nil {
		return Service{}, err
	}

	eventRepo := db.NewEventRepository(conn)
	ticketRepo := db.NewTicketRepo(conn)
	ledgerRepo := db.NewLedgerRepository(conn)
	reportRepo := db.NewReportRepository(conn)
	activityRepo := db.NewActivityRepository(conn)

	// also creates the outbox tables the repositories publish into
	pgSubscriber, err := outbox.SubscribeForPGMessages(conn.Conn, watermillLogger)
	if err != nil {
		return Service{}, err
	}

	watermillRouter, err := message.NewWatermillRouter(
		pgSubscriber,
		redisPublisher,
		event.NewProcessorConfig(redisClient, watermillLogger),
		event.NewHandler(activityRepo),
		watermillLogger,
	)
	if err != nil {
		return Service{}, err
	}

	echoRouter := ticketsHttp.NewHttpRouter(
		cfg.ServiceName,
		eventRepo,
		ticketRepo,
		ledgerRepo,
		reportRepo,
		activityRepo,
	)

	return Service{
		httpAddr:        cfg.HTTPAddr,
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
	}, nil
}

func (s Service) Run(
	ctx context.Context,
) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// we don't want to start HTTP server before Watermill router (so service won't be healthy before it's ready)
		<-s.watermillRouter.Running()

		log.FromContext(ctx).WithField("addr", s.httpAddr).Info("Starting HTTP server")

		err := s.echoRouter.Start(s.httpAddr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not run HTTP server: %w", err)
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
