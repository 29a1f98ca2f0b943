// Package cronjobs runs the daily reminder and pending-expiry jobs.
package cronjobs

import (
	"context"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/monitoring"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const jobTimeout = 5 * time.Minute

// AppointmentJobs is the work the scheduler triggers.
type AppointmentJobs interface {
	SendReminders(ctx context.Context) (int, error)
	ExpireStalePending(ctx context.Context) (int64, error)
}

type Runner struct {
	jobs AppointmentJobs
	log  *zap.Logger
}

func NewRunner(jobs AppointmentJobs, log *zap.Logger) *Runner {
	return &Runner{jobs: jobs, log: log}
}

// Start schedules reminders every day at reminderAt (HH:MM) and the
// pending expiry every hour.
func (r *Runner) Start(reminderAt string) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.Local)

	if _, err := scheduler.Every(1).Day().At(reminderAt).Do(r.SendReminders); err != nil {
		return nil, err
	}
	if _, err := scheduler.Every(1).Hour().Do(r.ExpirePending); err != nil {
		return nil, err
	}

	scheduler.StartAsync()
	r.log.Info("appointment cron jobs started", zap.String("reminder_at", reminderAt))
	return scheduler, nil
}

func (r *Runner) SendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, err := r.jobs.SendReminders(ctx)
	if err != nil {
		r.record("reminders", err)
		r.log.Error("error sending appointment reminders", zap.Error(err), zap.Int("sent", sent))
		return
	}
	r.record("reminders", nil)
	r.log.Info("appointment reminders sent", zap.Int("sent", sent))
}

func (r *Runner) ExpirePending() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := r.jobs.ExpireStalePending(ctx)
	r.record("expire_pending", err)
	if err != nil {
		r.log.Error("error expiring pending appointments", zap.Error(err))
		return
	}
	if n > 0 {
		r.log.Info("expired stale pending appointments", zap.Int64("cancelled", n))
	}
}

func (r *Runner) record(job string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	monitoring.JobRuns.WithLabelValues(job, outcome).Inc()
}
