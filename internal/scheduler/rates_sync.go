package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/ratesapi-nz/rates-api/internal/config"
	"github.com/ratesapi-nz/rates-api/internal/domain"
	"github.com/ratesapi-nz/rates-api/internal/usecases/ingesting"
)

// RatesSyncService schedules the scrape pipeline. Each tick runs the four
// data types sequentially; overlapping ticks are skipped rather than queued.
type RatesSyncService struct {
	scheduler *gocron.Scheduler
	cfg       config.RatesSync
	ingester  ingesting.Ingester

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewRatesSyncService(cfg config.RatesSync, ingester ingesting.Ingester) *RatesSyncService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.CronSchedule,
		"sync_enabled":  cfg.Enabled,
	}).Info("Rates sync scheduler configured")

	return &RatesSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		cfg:       cfg,
		ingester:  ingester,
	}
}

// Start schedules the sync and stops the scheduler when ctx is cancelled.
func (s *RatesSyncService) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		logrus.Info("Rates sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.cfg.CronSchedule).Info("Starting rates sync scheduler")

	_, err := s.scheduler.Cron(s.cfg.CronSchedule).Do(func() {
		s.syncAll(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling rates sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping rates sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce runs the pipeline for a single data type outside the schedule. The
// manual trigger route uses it.
func (s *RatesSyncService) RunOnce(ctx context.Context, dataType domain.DataType) (*ingesting.Result, error) {
	return s.ingester.Ingest(ctx, dataType)
}

// Status reports whether a sync is in flight and when the last one ran.
func (s *RatesSyncService) Status() (running bool, startedAt, completedAt time.Time) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning, s.lastSyncStartedAt, s.lastSyncCompletedAt
}

func (s *RatesSyncService) syncAll(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Rates sync already in progress, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now().UTC()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now().UTC()
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()
	var stored, skipped, failed int

	for _, dataType := range domain.DataTypes {
		result, err := s.ingester.Ingest(ctx, dataType)
		switch {
		case err == nil:
			stored++
			logrus.WithFields(logrus.Fields{
				"data_type":      dataType,
				"snapshot_date":  result.SnapshotDate,
				"record_count":   result.RecordCount,
				"latest_updated": result.LatestUpdated,
			}).Info("Rates sync stored a new snapshot")
		case err == ingesting.ErrNoChanges, err == ingesting.ErrQualityRejected:
			skipped++
		default:
			failed++
			logrus.WithError(err).WithField("data_type", dataType).Error("Rates sync failed for data type")
		}
	}

	logrus.WithFields(logrus.Fields{
		"stored":   stored,
		"skipped":  skipped,
		"failed":   failed,
		"duration": time.Since(startTime).String(),
	}).Info("Rates sync finished")
}
