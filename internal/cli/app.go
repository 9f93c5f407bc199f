// Package cli implements the interactive front end of MediAlert: a small
// REPL over the auth and medication services, standing in for the mobile
// app's screens.
package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/medialert/internal/config"
	"github.com/dmitrijs2005/medialert/internal/filex"
	"github.com/dmitrijs2005/medialert/internal/kvstore"
	"github.com/dmitrijs2005/medialert/internal/logging"
	"github.com/dmitrijs2005/medialert/internal/models"
	"github.com/dmitrijs2005/medialert/internal/reminder"
	medsrepo "github.com/dmitrijs2005/medialert/internal/repositories/medications"
	"github.com/dmitrijs2005/medialert/internal/repositories/session"
	"github.com/dmitrijs2005/medialert/internal/repositories/users"
	"github.com/dmitrijs2005/medialert/internal/services"
)

type App struct {
	config    *config.Config
	auth      services.AuthService
	meds      services.MedicationService
	store     kvstore.Store
	scheduler *reminder.TimerScheduler

	current *models.User
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewDefault(level)

	store, err := kvstore.NewBadgerStore(dataDir)
	if err != nil {
		log.Printf("error opening data store: %s", err.Error())
		return nil, err
	}

	scheduler := reminder.NewTimerScheduler(reminder.NewLogNotifier(logger), logger)

	usersRepo := users.NewKVRepository(store)
	sessionRepo := session.NewKVRepository(store, logger)
	medicationsRepo := medsrepo.NewKVRepository(store, logger)

	as := services.NewAuthService(usersRepo, sessionRepo, logger)
	ms := services.NewMedicationService(medicationsRepo, scheduler, logger, c.MinReminderDelay)

	return &App{
		config:    c,
		auth:      as,
		meds:      ms,
		store:     store,
		scheduler: scheduler,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.restoreSession(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() {
	a.scheduler.Close()
	if err := a.store.Close(); err != nil {
		log.Printf("error closing data store: %s", err.Error())
	}
}

func (a *App) isLoggedIn() bool {
	return a.current != nil
}

// restoreSession picks up a session persisted by a previous run and re-arms
// the reminders of the returning user.
func (a *App) restoreSession(ctx context.Context) {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		log.Printf("error restoring session: %s", err.Error())
		return
	}
	if user == nil {
		return
	}

	a.current = user
	log.Printf("Welcome back, %s", user.Name)

	armed, err := a.meds.Reschedule(ctx, user.Email)
	if err != nil {
		log.Printf("error rescheduling reminders: %s", err.Error())
		return
	}
	if armed > 0 {
		log.Printf("%d reminder(s) armed", armed)
	}
}
