package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) Delete(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := GetSimpleText(a.reader, "Enter medication id to delete", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.meds.Delete(ctx, a.current.Email, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println("Deleted")
	return nil
}
