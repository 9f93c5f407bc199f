package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/medialert/internal/reminder"
)

func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	meds, err := a.meds.List(ctx, a.current.Email)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(meds) == 0 {
		fmt.Println("No medications yet. Use 'add' to create one.")
		return nil
	}

	for _, m := range meds {
		next := ""
		if trg, err := reminder.NextTrigger(time.Now(), m.Time, 0); err == nil {
			next = " next: " + trg.At.Format("Mon 15:04")
		}
		fmt.Printf("%s  %-20s %s %s at %s%s\n", m.ID, m.Name, m.Dose, m.Unit, m.Time, next)
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := GetSimpleText(a.reader, "Enter medication id to show", os.Stdout)
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
		fmt.Printf("Name:      %s\n", m.Name)
		fmt.Printf("Dose:      %s %s\n", m.Dose, m.Unit)
		fmt.Printf("Frequency: %s\n", m.Frequency)
		fmt.Printf("Time:      %s\n", m.Time)
		fmt.Printf("Via:       %s\n", m.Via)
		fmt.Printf("Duration:  %s\n", m.Duration)
		if m.Notes != "" {
			fmt.Printf("Notes:     %s\n", m.Notes)
		}
		if m.Image != "" {
			fmt.Printf("Image:     %s\n", m.Image)
		}
		return nil
	}

	log.Printf("Medication %q not found", id)
	return nil
}
