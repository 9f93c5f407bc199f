package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/medialert/internal/common"
	"github.com/dmitrijs2005/medialert/internal/filex"
	"github.com/dmitrijs2005/medialert/internal/models"
)

// medicationForm walks the add/edit form. For edits, pass the existing
// record: empty answers keep the shown value.
func (a *App) medicationForm(current models.Medication) (models.Medication, error) {
	w := os.Stdout
	fields := []struct {
		prompt string
		value  *string
	}{
		{"Medication name", &current.Name},
		{"Dose (e.g. 500)", &current.Dose},
		{"Unit (mg, ml, drops, ...)", &current.Unit},
		{"Frequency (every N hours/days)", &current.Frequency},
		{"Intake time (HH:MM, 24h)", &current.Time},
		{"Administration route (oral, injected, ...)", &current.Via},
		{"Treatment duration (e.g. 7 days)", &current.Duration},
		{"Notes (optional)", &current.Notes},
	}

	for _, f := range fields {
		answer, err := GetTextWithDefault(a.reader, f.prompt, *f.value, w)
		if err != nil {
			return current, err
		}
		*f.value = answer
	}

	image, err := GetTextWithDefault(a.reader, "Image file path (optional)", current.Image, w)
	if err != nil {
		return current, err
	}
	if image != "" && !filex.FileExists(image) {
		log.Printf("Image %q not found, leaving it unset", image)
		image = ""
	}
	current.Image = image

	return current, nil
}

func (a *App) Add(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	med, err := a.medicationForm(models.Medication{})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	added, err := a.meds.Add(ctx, a.current.Email, med)
	if err != nil {
		var verr *common.ValidationError
		if errors.As(err, &verr) {
			fmt.Println("Please fill in the required fields:")
			printFieldErrors(verr)
			return err
		}
		log.Printf("Could not save the medication: %s", err.Error())
		return err
	}

	fmt.Printf("Saved %s (id %s)\n", added.Name, added.ID)
	return nil
}
