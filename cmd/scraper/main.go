// Command scraper runs the ingestion pipeline once and exits. Useful for
// backfills and for running the scrape from an external cron instead of the
// API process scheduler.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ratesapi-nz/rates-api/infrastructure/database/postgres"
	"github.com/ratesapi-nz/rates-api/infrastructure/integrator/interest"
	"github.com/ratesapi-nz/rates-api/infrastructure/integrator/interest/interestclient"
	"github.com/ratesapi-nz/rates-api/infrastructure/repository"
	"github.com/ratesapi-nz/rates-api/internal/config"
	"github.com/ratesapi-nz/rates-api/internal/domain"
	"github.com/ratesapi-nz/rates-api/internal/usecases/ingesting"
)

func main() {
	// os.Exit skips deferred calls, so the work happens in run and main only
	// translates its result into an exit code.
	os.Exit(run())
}

func run() int {
	typeFlag := flag.String("type", "all", "data type to ingest (mortgage-rates, personal-loan-rates, car-loan-rates, credit-card-rates or all)")
	timeoutFlag := flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Error(err)
		return 1
	}

	dataTypes, err := resolveDataTypes(*typeFlag)
	if err != nil {
		logrus.Error(err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	pgConn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Error("Failed to connect to PostgreSQL")
		return 1
	}
	defer pgConn.Close()

	ratesStore := repository.NewRatesStore(pgConn, cfg.Ingestion)
	runRepo := repository.NewIngestionRunRepository(pgConn)

	interestClient := interestclient.NewClient(cfg.Scraper)
	interestIntegrator := interest.New(cfg.Scraper, interestClient)
	ingestService := ingesting.NewService(cfg.Ingestion, interestIntegrator, ratesStore, runRepo)

	exitCode := 0
	for _, dataType := range dataTypes {
		result, err := ingestService.Ingest(ctx, dataType)
		switch {
		case err == nil:
			logrus.WithFields(logrus.Fields{
				"data_type":      dataType,
				"snapshot_date":  result.SnapshotDate,
				"record_count":   result.RecordCount,
				"latest_updated": result.LatestUpdated,
			}).Info("Snapshot stored")
		case err == ingesting.ErrNoChanges:
			logrus.WithField("data_type", dataType).Info("No changes, nothing stored")
		case err == ingesting.ErrQualityRejected:
			logrus.WithField("data_type", dataType).Warn("Payload rejected by the quality guardrail")
		default:
			logrus.WithError(err).WithField("data_type", dataType).Error("Ingestion failed")
			exitCode = 1
		}
	}

	return exitCode
}

func resolveDataTypes(raw string) ([]domain.DataType, error) {
	if raw == "all" {
		return domain.DataTypes, nil
	}

	var dataTypes []domain.DataType
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if !domain.IsDataType(part) {
			return nil, fmt.Errorf("unknown data type: %s", part)
		}
		dataTypes = append(dataTypes, domain.DataType(part))
	}
	return dataTypes, nil
}
