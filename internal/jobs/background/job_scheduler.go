package background

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"stocktrack/internal/jobs"
)

// JobScheduler manages the background jobs of the service.
type JobScheduler struct {
	scheduler gocron.Scheduler
	alertSvc  *jobs.StockAlertService
}

// NewJobScheduler creates a scheduler with the low-stock alert job
// registered.
func NewJobScheduler(alertSvc *jobs.StockAlertService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alertSvc:  alertSvc,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.alertSvc.ScheduledLowStockCheck, context.Background()),
		gocron.WithName("stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return js, nil
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}
