package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/medialert/internal/common"
	"github.com/dmitrijs2005/medialert/internal/kvstore"
	"github.com/dmitrijs2005/medialert/internal/models"
	"github.com/dmitrijs2005/medialert/internal/reminder"
	"github.com/dmitrijs2005/medialert/internal/repositories/medications"
)

const owner = "a@x.com"

// ---- fake scheduler ----

type fakeScheduler struct {
	ScheduleErr error

	Scheduled []reminder.Reminder
}

func (f *fakeScheduler) Schedule(_ context.Context, r reminder.Reminder) error {
	if f.ScheduleErr != nil {
		return f.ScheduleErr
	}
	f.Scheduled = append(f.Scheduled, r)
	return nil
}

// ---- helpers ----

func setupMedications(t *testing.T) (MedicationService, *fakeScheduler, medications.Repository) {
	t.Helper()
	repo := medications.NewKVRepository(kvstore.NewMemoryStore(), testLogger())
	sched := &fakeScheduler{}
	svc := NewMedicationService(repo, sched, testLogger(), reminder.DefaultMinDelay)
	return svc, sched, repo
}

func fixedNow(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}

func draft() models.Medication {
	return models.Medication{
		Name:      "Ibuprofen",
		Dose:      "500",
		Unit:      "mg",
		Frequency: "every 8 hours",
		Time:      "08:30",
		Via:       "oral",
		Duration:  "7 days",
		Notes:     "after meals",
	}
}

// ---- TESTS ----

func TestMedicationService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields are named exactly and nothing is saved", func(t *testing.T) {
		svc, sched, _ := setupMedications(t)

		m := draft()
		m.Unit = ""
		m.Duration = ""

		_, err := svc.Add(ctx, owner, m)
		var verr *common.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
		assert.Contains(t, verr.Fields, "unit")
		assert.Contains(t, verr.Fields, "duration")

		list, err := svc.List(ctx, owner)
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.Empty(t, sched.Scheduled)
	})

	t.Run("generates distinct ids and appends", func(t *testing.T) {
		svc, _, _ := setupMedications(t)

		first, err := svc.Add(ctx, owner, draft())
		require.NoError(t, err)
		require.NotEmpty(t, first.ID)

		second := draft()
		second.Name = "Aspirin"
		added, err := svc.Add(ctx, owner, second)
		require.NoError(t, err)
		require.NotEmpty(t, added.ID)
		assert.NotEqual(t, first.ID, added.ID)

		list, err := svc.List(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Ibuprofen", list[0].Name)
		assert.Equal(t, "Aspirin", list[1].Name)

		seen := map[string]bool{}
		for _, m := range list {
			require.NotEmpty(t, m.ID)
			require.False(t, seen[m.ID], "duplicate id %s", m.ID)
			seen[m.ID] = true
		}
	})

	t.Run("schedules a reminder for the saved medication", func(t *testing.T) {
		now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
		fixedNow(t, now)

		svc, sched, _ := setupMedications(t)

		_, err := svc.Add(ctx, owner, draft()) // intake at 08:30, already passed
		require.NoError(t, err)

		require.Len(t, sched.Scheduled, 1)
		r := sched.Scheduled[0]
		assert.Equal(t, "Time to take Ibuprofen!", r.Title)
		assert.Equal(t, "Dose: 500 mg - Via: oral", r.Body)
		assert.Equal(t, now.AddDate(0, 0, 1).Add(-30*time.Minute), r.Trigger.At)
		assert.True(t, r.Trigger.Repeats)
	})

	t.Run("scheduling failure does not fail the save", func(t *testing.T) {
		svc, sched, _ := setupMedications(t)
		sched.ScheduleErr = assert.AnError

		added, err := svc.Add(ctx, owner, draft())
		require.NoError(t, err)
		require.NotNil(t, added)

		list, err := svc.List(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("requires an owner", func(t *testing.T) {
		svc, _, _ := setupMedications(t)

		_, err := svc.Add(ctx, "", draft())
		require.ErrorIs(t, err, common.ErrNoActiveSession)
	})
}

func TestMedicationService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id fails and the list is unchanged", func(t *testing.T) {
		svc, _, _ := setupMedications(t)

		added, err := svc.Add(ctx, owner, draft())
		require.NoError(t, err)

		_, err = svc.Update(ctx, owner, "nope", draft())
		require.ErrorIs(t, err, common.ErrNotFound)

		list, err := svc.List(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, added.ID, list[0].ID)
		assert.Equal(t, "Ibuprofen", list[0].Name)
	})

	t.Run("replaces exactly one entry, keeps id and order", func(t *testing.T) {
		svc, _, _ := setupMedications(t)

		first, err := svc.Add(ctx, owner, draft())
		require.NoError(t, err)
		second := draft()
		second.Name = "Aspirin"
		added, err := svc.Add(ctx, owner, second)
		require.NoError(t, err)

		patch := draft()
		patch.Name = "Paracetamol"
		patch.Dose = "650"
		updated, err := svc.Update(ctx, owner, first.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)

		list, err := svc.List(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Paracetamol", list[0].Name)
		assert.Equal(t, "650", list[0].Dose)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, "Aspirin", list[1].Name)
		assert.Equal(t, added.ID, list[1].ID)
	})

	t.Run("validates like add", func(t *testing.T) {
		svc, _, _ := setupMedications(t)

		added, err := svc.Add(ctx, owner, draft())
		require.NoError(t, err)

		patch := draft()
		patch.Time = ""
		_, err = svc.Update(ctx, owner, added.ID, patch)
		var verr *common.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "time")
	})
}

func TestMedicationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the matching entry", func(t *testing.T) {
		svc, _, _ := setupMedications(t)

		first, err := svc.Add(ctx, owner, draft())
		require.NoError(t, err)
		second := draft()
		second.Name = "Aspirin"
		kept, err := svc.Add(ctx, owner, second)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, owner, first.ID))

		list, err := svc.List(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, kept.ID, list[0].ID)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		svc, _, _ := setupMedications(t)

		_, err := svc.Add(ctx, owner, draft())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, owner, "nope"))

		list, err := svc.List(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestMedicationService_Reschedule(t *testing.T) {
	ctx := context.Background()
	svc, sched, repo := setupMedications(t)

	_, err := svc.Add(ctx, owner, draft())
	require.NoError(t, err)
	second := draft()
	second.Name = "Aspirin"
	_, err = svc.Add(ctx, owner, second)
	require.NoError(t, err)

	// A stored entry with an unparseable time is skipped, not fatal.
	list, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	list = append(list, models.Medication{ID: "x", Name: "Broken", Time: "noon"})
	require.NoError(t, repo.SaveForOwner(ctx, owner, list))

	sched.Scheduled = nil
	armed, err := svc.Reschedule(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, armed)
	assert.Len(t, sched.Scheduled, 2)
}

func TestMedicationService_ListsAreIsolatedPerOwner(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupMedications(t)

	_, err := svc.Add(ctx, owner, draft())
	require.NoError(t, err)

	other, err := svc.List(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMedicationService_ConcurrentDeletesDoNotDropWrites(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupMedications(t)

	var ids []string
	for i := 0; i < 10; i++ {
		m := draft()
		added, err := svc.Add(ctx, owner, m)
		require.NoError(t, err)
		ids = append(ids, added.ID)
	}

	done := make(chan struct{})
	for _, id := range ids[:5] {
		go func(id string) {
			defer func() { done <- struct{}{} }()
			_ = svc.Delete(ctx, owner, id)
		}(id)
	}
	for i := 0; i < 5; i++ {
		<-done
	}

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}
