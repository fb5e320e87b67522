package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/services"
)

// Maintenance runs the nightly housekeeping: purge completed question reviews
// past their retention window, then refresh SQLite's planner statistics.
// Pending reviews are never touched, so the scheduling semantics are
// unaffected by when (or whether) this runs.
type Maintenance struct {
	scheduler     *gocron.Scheduler
	db            *sql.DB
	reviewService services.ReviewService
	retentionDays int
	hourUTC       int
}

// NewMaintenance creates the nightly maintenance job, firing daily at hourUTC.
func NewMaintenance(db *sql.DB, reviewService services.ReviewService, retentionDays, hourUTC int) *Maintenance {
	return &Maintenance{
		scheduler:     gocron.NewScheduler(time.UTC),
		db:            db,
		reviewService: reviewService,
		retentionDays: retentionDays,
		hourUTC:       hourUTC,
	}
}

// Start begins running the job in the background.
func (m *Maintenance) Start() error {
	at := fmt.Sprintf("%02d:00", m.hourUTC)
	if _, err := m.scheduler.Every(1).Day().At(at).Do(m.Run); err != nil {
		return err
	}
	m.scheduler.StartAsync()
	logger.Default().Info("maintenance job scheduled daily at %s UTC", at)
	return nil
}

// Stop terminates the schedule. A run already in flight finishes.
func (m *Maintenance) Stop() {
	m.scheduler.Stop()
}

// Run executes one maintenance pass. Exported so the CLI can trigger it
// outside the schedule.
func (m *Maintenance) Run() {
	ctx := context.Background()
	log := logger.Default().WithPrefix("maintenance")
	ctx = logger.NewContext(ctx, log)

	cutoff := time.Now().UTC().AddDate(0, 0, -m.retentionDays)
	purged, err := m.reviewService.PurgeCompleted(ctx, cutoff)
	if err != nil {
		log.Error("failed to purge completed reviews: %v", err)
	} else {
		log.Info("purged %d completed reviews older than %s", purged, cutoff.Format("2006-01-02"))
	}

	if _, err := m.db.ExecContext(ctx, "ANALYZE"); err != nil {
		log.Error("failed to refresh statistics: %v", err)
		return
	}
	log.Info("statistics refreshed")
}
