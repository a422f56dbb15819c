package reminders

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"tax-engine/internal/deadlines"
	"tax-engine/internal/metrics"
	"tax-engine/internal/model"
)

// DefaultSchedule runs one minute past midnight, when every days-remaining
// count changes.
const DefaultSchedule = "1 0 * * *"

// Scheduler periodically re-evaluates the deadline tracker, publishes the
// result as gauges and logs anything urgent or overdue.
type Scheduler struct {
	tracker *deadlines.Tracker
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time

	cron *cron.Cron
}

// New validates schedule (standard five-field cron syntax, evaluated in the
// tracker's location) and prepares a scheduler. Nothing runs until Start.
func New(tracker *deadlines.Tracker, m *metrics.Metrics, log *slog.Logger, schedule string) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	s := &Scheduler{
		tracker: tracker,
		metrics: m,
		log:     log,
		now:     time.Now,
		cron:    cron.New(cron.WithLocation(tracker.Location())),
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.Refresh(s.now()) }); err != nil {
		return nil, &model.OpError{Op: "reminders.schedule", Kind: model.KindInvalidConfig, Err: err}
	}
	return s, nil
}

// Start refreshes once immediately, then on every scheduled tick.
func (s *Scheduler) Start() {
	s.Refresh(s.now())
	s.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Refresh evaluates every deadline as of now.
func (s *Scheduler) Refresh(now time.Time) []deadlines.Reminder {
	all := s.tracker.All(now)
	if s.metrics != nil {
		s.metrics.SetDeadlines(all)
	}
	for _, r := range all {
		switch r.Urgency {
		case deadlines.Overdue, deadlines.Urgent:
			s.log.Warn("deadline.approaching",
				"id", r.ID,
				"due_date", r.DueDate,
				"days_remaining", r.DaysRemaining,
				"urgency", r.Urgency,
			)
		}
	}
	s.log.Debug("deadlines.refreshed", "count", len(all))
	return all
}
