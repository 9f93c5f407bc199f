package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/medialert/internal/common"
	"github.com/dmitrijs2005/medialert/internal/logging"
	"github.com/dmitrijs2005/medialert/internal/models"
	"github.com/dmitrijs2005/medialert/internal/reminder"
	"github.com/dmitrijs2005/medialert/internal/repositories/medications"
)

// timeNow returns current time (allows for mock in tests).
var timeNow = time.Now

// MedicationService manages one user's medication list. Every operation
// requires the owner's email (from the active session); all writes rewrite
// the owner's whole list.
type MedicationService interface {
	List(ctx context.Context, ownerEmail string) ([]models.Medication, error)
	Add(ctx context.Context, ownerEmail string, med models.Medication) (*models.Medication, error)
	Update(ctx context.Context, ownerEmail, id string, med models.Medication) (*models.Medication, error)
	Delete(ctx context.Context, ownerEmail, id string) error

	// Reschedule re-arms reminders for every stored medication of the
	// owner. In-process timers do not survive a restart, so this runs
	// after each login. Returns the number of reminders armed.
	Reschedule(ctx context.Context, ownerEmail string) (int, error)
}

type medicationService struct {
	repo      medications.Repository
	scheduler reminder.Scheduler
	log       logging.Logger
	minDelay  time.Duration

	// One mutex per owner key: read-modify-write sequences on the same
	// list must not interleave.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMedicationService(repo medications.Repository, scheduler reminder.Scheduler,
	log logging.Logger, minDelay time.Duration) MedicationService {
	return &medicationService{
		repo:      repo,
		scheduler: scheduler,
		log:       log,
		minDelay:  minDelay,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *medicationService) ownerLock(ownerEmail string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[ownerEmail]
	if !ok {
		l = &sync.Mutex{}
		s.locks[ownerEmail] = l
	}
	return l
}

func (s *medicationService) List(ctx context.Context, ownerEmail string) ([]models.Medication, error) {
	if ownerEmail == "" {
		return nil, common.ErrNoActiveSession
	}
	return s.repo.ListByOwner(ctx, ownerEmail)
}

func (s *medicationService) Add(ctx context.Context, ownerEmail string, med models.Medication) (*models.Medication, error) {
	if ownerEmail == "" {
		return nil, common.ErrNoActiveSession
	}
	if err := med.Validate(); err != nil {
		return nil, err
	}

	lock := s.ownerLock(ownerEmail)
	lock.Lock()
	defer lock.Unlock()

	list, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	med.ID = uuid.NewString()
	list = append(list, med)

	if err := s.repo.SaveForOwner(ctx, ownerEmail, list); err != nil {
		return nil, err
	}

	s.scheduleReminder(ctx, med)
	return &med, nil
}

// scheduleReminder arms the daily notification for a saved medication. The
// record is already persisted at this point, so scheduling problems are
// logged and swallowed rather than failing the save. Reports whether a
// reminder was armed.
func (s *medicationService) scheduleReminder(ctx context.Context, med models.Medication) bool {
	trg, err := reminder.NextTrigger(timeNow(), med.Time, s.minDelay)
	if err != nil {
		s.log.Warn(ctx, "cannot schedule reminder", "name", med.Name, "time", med.Time, "error", err)
		return false
	}

	r := reminder.Reminder{
		Title:   fmt.Sprintf("Time to take %s!", med.Name),
		Body:    fmt.Sprintf("Dose: %s %s - Via: %s", med.Dose, med.Unit, med.Via),
		Trigger: trg,
	}
	if err := s.scheduler.Schedule(ctx, r); err != nil {
		s.log.Warn(ctx, "reminder scheduling failed", "name", med.Name, "error", err)
		return false
	}
	s.log.Debug(ctx, "reminder scheduled", "name", med.Name, "at", trg.At)
	return true
}

func (s *medicationService) Update(ctx context.Context, ownerEmail, id string, med models.Medication) (*models.Medication, error) {
	if ownerEmail == "" {
		return nil, common.ErrNoActiveSession
	}
	if err := med.Validate(); err != nil {
		return nil, err
	}

	lock := s.ownerLock(ownerEmail)
	lock.Lock()
	defer lock.Unlock()

	list, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range list {
		if list[i].ID == id {
			med.ID = id
			list[i] = med
			found = true
			break
		}
	}
	if !found {
		return nil, common.ErrNotFound
	}

	if err := s.repo.SaveForOwner(ctx, ownerEmail, list); err != nil {
		return nil, err
	}
	return &med, nil
}

func (s *medicationService) Reschedule(ctx context.Context, ownerEmail string) (int, error) {
	if ownerEmail == "" {
		return 0, common.ErrNoActiveSession
	}

	list, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return 0, err
	}

	armed := 0
	for _, med := range list {
		if s.scheduleReminder(ctx, med) {
			armed++
		}
	}
	return armed, nil
}

func (s *medicationService) Delete(ctx context.Context, ownerEmail, id string) error {
	if ownerEmail == "" {
		return common.ErrNoActiveSession
	}

	lock := s.ownerLock(ownerEmail)
	lock.Lock()
	defer lock.Unlock()

	list, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return err
	}

	// Absent id is a no-op, not an error; the remaining list is saved
	// either way.
	remaining := make([]models.Medication, 0, len(list))
	for _, m := range list {
		if m.ID != id {
			remaining = append(remaining, m)
		}
	}

	return s.repo.SaveForOwner(ctx, ownerEmail, remaining)
}
