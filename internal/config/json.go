package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/medialert/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from zero values so the file only overrides what it
// actually sets.
type jsonConfig struct {
	DataDir             *string `json:"data_dir"`
	MinReminderDelayMin *int    `json:"min_reminder_delay_min"`
	Verbose             *bool   `json:"verbose"`
}

// parseJSON overlays cfg with values from the JSON file named by the -c or
// -config flag. Without the flag nothing is loaded. Read or unmarshal errors
// panic; startup config problems are not recoverable.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.MinReminderDelayMin != nil {
		cfg.MinReminderDelay = time.Duration(*jc.MinReminderDelayMin) * time.Minute
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
}
