package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/medialert/internal/common"
	"github.com/dmitrijs2005/medialert/internal/models"
)

// requireLogin guards commands that need an active session; the REPL hides
// them when logged out, but typing them anyway must not blow up.
func (a *App) requireLogin() error {
	if a.isLoggedIn() {
		return nil
	}
	fmt.Println("Please log in first")
	return common.ErrNoActiveSession
}

func (a *App) getStatus() string {
	if a.current == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.current.Email)
}

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	err = a.auth.Register(ctx, models.User{Name: name, Email: email, Password: password})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyRegistered) {
			log.Printf("This user is already registered")
			return err
		}
		var verr *common.ValidationError
		if errors.As(err, &verr) {
			printFieldErrors(verr)
			return err
		}
		log.Printf("Registration failed: %s", err.Error())
		return err
	}

	fmt.Println("Success! You can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			log.Printf("Login unsuccessful: invalid email or password")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.current = user
	log.Printf("Login successful")

	armed, err := a.meds.Reschedule(ctx, user.Email)
	if err != nil {
		log.Printf("error rescheduling reminders: %s", err.Error())
	} else if armed > 0 {
		log.Printf("%d reminder(s) armed", armed)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	a.current = nil
	fmt.Println("Logged out")
	return nil
}

func printFieldErrors(verr *common.ValidationError) {
	for field, msg := range verr.Fields {
		fmt.Printf("  %s: %s\n", field, msg)
	}
}
