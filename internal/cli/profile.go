package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/medialert/internal/common"
)

func (a *App) Profile(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	// Email is the identity every stored record is keyed by, so it is shown
	// but not editable.
	fmt.Printf("Email: %s (read-only)\n", a.current.Email)

	name, err := GetTextWithDefault(a.reader, "Name", a.current.Name, os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	updated, err := a.auth.UpdateProfile(ctx, name)
	if err != nil {
		var verr *common.ValidationError
		if errors.As(err, &verr) {
			printFieldErrors(verr)
			return err
		}
		log.Printf("Could not update the profile: %s", err.Error())
		return err
	}

	a.current = updated
	fmt.Println("Profile updated")
	return nil
}
