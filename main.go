package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"

	"ticketledger/config"
	"ticketledger/db"
	"ticketledger/message"
	"ticketledger/service"
	observability "ticketledger/trace"
)

func main() {
	log.Init(logrus.InfoLevel)

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Could not load config")
	}
	logrus.SetLevel(cfg.Level())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	traceProvider, err := observability.ConfigureTraceProvider(cfg.JaegerEndpoint, cfg.ServiceName)
	if err != nil {
		logrus.WithError(err).Fatal("Could not configure tracing")
	}
	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Error("Could not shut down trace provider")
		}
	}()

	conn, err := db.NewDBConn(cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("Could not connect to postgres")
	}
	defer conn.Close()

	if err := conn.MigrateSchema(); err != nil {
		logrus.WithError(err).Fatal("Could not migrate schema")
	}

	redisClient := message.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()

	svc, err := service.New(
		service.Config{
			HTTPAddr:    cfg.HTTPAddr,
			ServiceName: cfg.ServiceName,
		},
		redisClient,
		&conn,
	)
	if err != nil {
		logrus.WithError(err).Fatal("Could not create service")
	}

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Error("Service stopped with error")
	}
}
