package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type ReportGenerator interface {
	Generate(ctx context.Context, period string, trigger models.ReportTrigger) (*models.Report, error)
}

type ReportNotifier interface {
	NotifyReport(report models.Report) error
}

// Scheduler exports the previous day's sales report on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	reports  ReportGenerator
	notifier ReportNotifier
	timeout  time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	schedule string
	lastRun  time.Time
	lastErr  error
}

func NewScheduler(reports ReportGenerator, notifier ReportNotifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		reports:  reports,
		notifier: notifier,
		timeout:  5 * time.Minute,
		now:      time.Now,
	}
}

// Start registers the export job under spec (standard five-field cron syntax or
// descriptors such as @daily) and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return err
	}

	s.mu.Lock()
	s.schedule = spec
	s.mu.Unlock()

	s.cron.Start()
	log.Printf("Report scheduler started with schedule %q", spec)

	return nil
}

// Stop waits for a running export to finish.
func (s *Scheduler) Stop() {
	log.Println("Stopping report scheduler...")
	<-s.cron.Stop().Done()
	log.Println("Report scheduler stopped")
}

// RunOnce exports yesterday's report and notifies the webhooks.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	period := services.PreviousDay(s.now())
	report, err := s.reports.Generate(ctx, period, models.TriggerScheduled)

	s.mu.Lock()
	s.lastRun = s.now()
	s.lastErr = err
	s.mu.Unlock()

	if errors.Is(err, services.ErrNoSales) {
		log.Printf("No sales for %s, skipping scheduled report", period)
		return
	}

	if err != nil {
		log.WithError(err).Errorf("Scheduled report for %s failed", period)
		return
	}

	log.WithFields(log.Fields{
		"period": period,
		"orders": report.OrderCount,
		"path":   report.Path,
	}).Info("Scheduled report generated")

	if s.notifier == nil {
		return
	}

	if err := s.notifier.NotifyReport(*report); err != nil {
		log.WithError(err).Warn("Failed to send report notification")
	}
}

// GetStatus returns the schedule, job count and outcome of the last run.
// It backs the scheduler block of the health check.
func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := map[string]interface{}{
		"schedule": s.schedule,
		"jobs":     len(s.cron.Entries()),
	}

	if !s.lastRun.IsZero() {
		status["last_run"] = s.lastRun.Format(time.RFC3339)
	}

	if s.lastErr != nil {
		status["last_error"] = s.lastErr.Error()
	}

	return status
}
