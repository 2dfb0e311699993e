package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ratesapi-nz/rates-api/infrastructure/database/postgres"
	"github.com/ratesapi-nz/rates-api/infrastructure/integrator/interest"
	"github.com/ratesapi-nz/rates-api/infrastructure/integrator/interest/interestclient"
	"github.com/ratesapi-nz/rates-api/infrastructure/repository"
	"github.com/ratesapi-nz/rates-api/internal/api"
	"github.com/ratesapi-nz/rates-api/internal/config"
	"github.com/ratesapi-nz/rates-api/internal/scheduler"
	"github.com/ratesapi-nz/rates-api/internal/usecases/ingesting"
	"github.com/ratesapi-nz/rates-api/internal/usecases/querying"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	ratesStore := repository.NewRatesStore(pgConn, cfg.Ingestion)
	runRepo := repository.NewIngestionRunRepository(pgConn)

	interestClient := interestclient.NewClient(cfg.Scraper)
	interestIntegrator := interest.New(cfg.Scraper, interestClient)

	ingestService := ingesting.NewService(cfg.Ingestion, interestIntegrator, ratesStore, runRepo)
	queryService := querying.NewService(ratesStore, runRepo)

	ratesSyncService := scheduler.NewRatesSyncService(cfg.RatesSync, ingestService)
	if err := ratesSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Failed to start the rates sync scheduler")
	} else {
		logrus.Info("Rates sync scheduler started")
	}

	server, err := api.New(cfg, queryService, ratesSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to ping PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
