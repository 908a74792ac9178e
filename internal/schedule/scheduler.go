package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LeadSource supplies the current pre-notification lead in minutes.
// The settings store implements it.
type LeadSource interface {
	LeadMinutes() int
}

// Notifier delivers the two notification kinds. The Discord layer
// implements it; failures are logged by the implementation, not retried
// by the scheduler.
type Notifier interface {
	NotifyPre(ctx context.Context, leadMinutes int)
	NotifyMain(ctx context.Context)
}

// Scheduler fires pre/main notifications on the boundary grid. Changing
// the lead setting wakes the scheduler immediately through Updated so the
// new lead applies to the very next event instead of the one after.
type Scheduler struct {
	anchor   time.Time
	interval time.Duration
	leads    LeadSource
	notify   Notifier
	log      *zap.Logger

	// updated is signalled by the settings commands after a lead change.
	updated chan struct{}

	// now is swappable for tests.
	now func() time.Time
}

// NewScheduler builds a Scheduler on the package anchor/interval grid.
func NewScheduler(leads LeadSource, notify Notifier, log *zap.Logger) *Scheduler {
	return &Scheduler{
		anchor:   Anchor,
		interval: Interval,
		leads:    leads,
		notify:   notify,
		log:      log,
		updated:  make(chan struct{}, 1),
		now:      NowJST,
	}
}

// Updated wakes the scheduler so it recomputes the next event with fresh
// settings. Non-blocking; coalesces when a wake-up is already pending.
func (s *Scheduler) Updated() {
	select {
	case s.updated <- struct{}{}:
	default:
	}
}

// Run executes the notification loop until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("スケジューラを開始しました",
		zap.String("anchor", s.anchor.Format(time.RFC3339)),
		zap.Duration("interval", s.interval))

	for {
		now := s.now()
		lead := s.leads.LeadMinutes()
		ev := NextEvent(now, s.anchor, s.interval, lead)

		s.log.Info("次の通知時刻(JST)",
			zap.String("time", ev.Time.Format("2006-01-02 15:04:05")),
			zap.String("kind", kindLabel(ev.Kind)),
			zap.Int("lead_minutes", ev.Lead))

		sleep := ev.Time.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		s.log.Debug("スリープ", zap.Duration("duration", sleep))

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-s.updated:
			// Lead changed: drop the pending event and recompute.
			timer.Stop()
			continue
		case <-timer.C:
		}

		if ev.Kind == KindPre {
			s.notify.NotifyPre(ctx, ev.Lead)
		} else {
			s.notify.NotifyMain(ctx)
		}

		after := s.now()
		next := NextEvent(after, s.anchor, s.interval, s.leads.LeadMinutes())
		s.log.Info("次回の通知(JST)",
			zap.String("time", next.Time.Format("2006-01-02 15:04:05")),
			zap.String("kind", kindLabel(next.Kind)),
			zap.Int("lead_minutes", next.Lead))
	}
}

func kindLabel(k EventKind) string {
	if k == KindPre {
		return "事前通知"
	}
	return "本通知"
}
