// Package services contains the application services of the MediAlert core.
// This file defines the authentication service: account registration, login,
// session tracking, logout, and profile updates.
package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/medialert/internal/common"
	"github.com/dmitrijs2005/medialert/internal/logging"
	"github.com/dmitrijs2005/medialert/internal/models"
	"github.com/dmitrijs2005/medialert/internal/repositories/session"
	"github.com/dmitrijs2005/medialert/internal/repositories/users"
)

// AuthService defines the account and session operations.
//
// Contract:
//   - Register: add an account; common.ErrAlreadyRegistered on a duplicate email.
//   - Login: exact email+password match; writes the session on success. A
//     failed login leaves any existing session untouched.
//   - CurrentUser: the active account or nil; never fails on stored content.
//   - Logout: clears the session; idempotent.
//   - UpdateProfile: renames the active account in both the session and the
//     directory, preserving email and password.
type AuthService interface {
	Register(ctx context.Context, user models.User) error
	Login(ctx context.Context, email, password string) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, name string) (*models.User, error)
}

type authService struct {
	users   users.Repository
	session session.Repository
	log     logging.Logger

	// Serializes read-modify-write sequences on the directory and session
	// keys so overlapping calls cannot drop each other's writes.
	mu sync.Mutex
}

func NewAuthService(usersRepo users.Repository, sessionRepo session.Repository, log logging.Logger) AuthService {
	return &authService{users: usersRepo, session: sessionRepo, log: log}
}

func (a *authService) Register(ctx context.Context, user models.User) error {
	verr := common.NewValidationError()
	if user.Name == "" {
		verr.Add("name", "this field is required")
	}
	if user.Email == "" {
		verr.Add("email", "this field is required")
	}
	if user.Password == "" {
		verr.Add("password", "this field is required")
	}
	if !verr.Empty() {
		return verr
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	directory, err := a.users.All(ctx)
	if err != nil {
		return err
	}

	for _, existing := range directory {
		if existing.Email == user.Email {
			return common.ErrAlreadyRegistered
		}
	}

	directory = append(directory, user)
	if err := a.users.Save(ctx, directory); err != nil {
		return err
	}

	a.log.Info(ctx, "user registered", "email", user.Email)
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	directory, err := a.users.All(ctx)
	if err != nil {
		return nil, err
	}

	for _, candidate := range directory {
		if candidate.Email == email && candidate.Password == password {
			if err := a.session.Set(ctx, candidate); err != nil {
				return nil, err
			}
			a.log.Info(ctx, "login", "email", candidate.Email)
			return &candidate, nil
		}
	}

	// No session write on failure: a previously active session stays valid.
	return nil, common.ErrInvalidCredentials
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.session.Get(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.session.Clear(ctx)
}

func (a *authService) UpdateProfile(ctx context.Context, name string) (*models.User, error) {
	if name == "" {
		verr := common.NewValidationError()
		verr.Add("name", "this field is required")
		return nil, verr
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	current, err := a.session.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, common.ErrNoActiveSession
	}

	// Email is presented read-only and the password is carried over; only
	// the display name changes. The same updated value goes to the session
	// and the directory.
	updated := *current
	updated.Name = name

	if err := a.session.Set(ctx, updated); err != nil {
		return nil, err
	}

	directory, err := a.users.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range directory {
		if directory[i].Email == current.Email {
			directory[i] = updated
		}
	}
	if err := a.users.Save(ctx, directory); err != nil {
		return nil, err
	}

	a.log.Info(ctx, "profile updated", "email", updated.Email)
	return &updated, nil
}
