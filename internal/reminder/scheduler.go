package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/medialert/internal/logging"
)

// Reminder is one scheduled notification request.
type Reminder struct {
	Title   string
	Body    string
	Trigger Trigger
}

// Scheduler delivers reminders at their trigger time. The mobile original
// delegates this to the platform notification service; the Go port ships an
// in-process implementation and keeps the seam for anything else.
type Scheduler interface {
	Schedule(ctx context.Context, r Reminder) error
}

// Notifier renders a fired reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, title, body string)
}

// LogNotifier writes fired reminders through the structured logger.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, title, body string) {
	n.log.Info(ctx, "REMINDER", "title", title, "body", body)
}

// TimerScheduler fires reminders from timers inside the current process and
// re-arms them every 24 hours while the process lives. Scheduled reminders
// do not survive a restart; persistence lives in the medication list, which
// is re-scheduled on demand.
type TimerScheduler struct {
	notifier Notifier
	log      logging.Logger

	mu      sync.Mutex
	stopped bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

func NewTimerScheduler(notifier Notifier, log logging.Logger) *TimerScheduler {
	return &TimerScheduler{
		notifier: notifier,
		log:      log,
		stop:     make(chan struct{}),
	}
}

func (s *TimerScheduler) Schedule(ctx context.Context, r Reminder) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.log.Debug(ctx, "reminder armed", "title", r.Title, "at", r.Trigger.At)

	go s.run(r)
	return nil
}

func (s *TimerScheduler) run(r Reminder) {
	defer s.wg.Done()

	timer := time.NewTimer(time.Until(r.Trigger.At))
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			s.notifier.Notify(context.Background(), r.Title, r.Body)
			if !r.Trigger.Repeats {
				return
			}
			timer.Reset(24 * time.Hour)
		case <-s.stop:
			return
		}
	}
}

// Close stops all armed reminders and waits for their goroutines to exit.
func (s *TimerScheduler) Close() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.stop)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
