package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/medialert/internal/common"
)

func (a *App) Edit(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := GetSimpleText(a.reader, "Enter medication id to edit", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	meds, err := a.meds.List(ctx, a.current.Email)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	for _, m := range meds {
		if m.ID != id {
			continue
		}

		patch, err := a.medicationForm(m)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}

		updated, err := a.meds.Update(ctx, a.current.Email, id, patch)
		if err != nil {
			var verr *common.ValidationError
			if errors.As(err, &verr) {
				fmt.Println("Please fill in the required fields:")
				printFieldErrors(verr)
				return err
			}
			log.Printf("Could not update the medication: %s", err.Error())
			return err
		}

		fmt.Printf("Updated %s\n", updated.Name)
		return nil
	}

	log.Printf("Medication %q not found", id)
	return nil
}
