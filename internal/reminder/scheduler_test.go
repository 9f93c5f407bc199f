package reminder

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/medialert/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type recordingNotifier struct {
	mu    sync.Mutex
	fired []string
}

func (n *recordingNotifier) Notify(_ context.Context, title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fired = append(n.fired, title)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.fired)
}

func TestTimerScheduler_FiresDueReminder(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewTimerScheduler(notifier, testLogger())
	defer s.Close()

	r := Reminder{
		Title:   "Time to take Aspirin!",
		Body:    "Dose: 100 mg - Via: oral",
		Trigger: Trigger{At: time.Now().Add(20 * time.Millisecond), Repeats: true},
	}
	require.NoError(t, s.Schedule(context.Background(), r))

	require.Eventually(t, func() bool { return notifier.count() == 1 },
		2*time.Second, 10*time.Millisecond)
}

func TestTimerScheduler_CloseStopsPendingReminders(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewTimerScheduler(notifier, testLogger())

	r := Reminder{
		Title:   "never",
		Trigger: Trigger{At: time.Now().Add(time.Hour)},
	}
	require.NoError(t, s.Schedule(context.Background(), r))

	s.Close()
	assert.Equal(t, 0, notifier.count())

	// Scheduling after Close is a quiet no-op.
	require.NoError(t, s.Schedule(context.Background(), r))
}

func TestLogNotifier_DoesNotPanic(t *testing.T) {
	NewLogNotifier(testLogger()).Notify(context.Background(), "t", "b")
}
