package models

import (
	"encoding/json"

	"github.com/dmitrijs2005/medialert/internal/common"
)

// Medication is one entry in a user's medication list. Time is the intake
// time of day in "HH:MM" 24-hour form. Image is an optional local file
// reference; Notes is free text.
type Medication struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Unit      string `json:"unit"`
	Frequency string `json:"frequency"`
	Time      string `json:"time"`
	Via       string `json:"via"`
	Duration  string `json:"duration"`
	Notes     string `json:"notes,omitempty"`
	Image     string `json:"image,omitempty"`
}

// requiredFields are the form fields that must be filled before a medication
// can be saved. Notes and Image stay optional.
var requiredFields = []struct {
	name  string
	value func(*Medication) string
}{
	{"name", func(m *Medication) string { return m.Name }},
	{"dose", func(m *Medication) string { return m.Dose }},
	{"unit", func(m *Medication) string { return m.Unit }},
	{"frequency", func(m *Medication) string { return m.Frequency }},
	{"time", func(m *Medication) string { return m.Time }},
	{"via", func(m *Medication) string { return m.Via }},
	{"duration", func(m *Medication) string { return m.Duration }},
}

// Validate returns a field-level error map naming every missing required
// field, or nil when the medication is complete.
func (m *Medication) Validate() error {
	verr := common.NewValidationError()
	for _, f := range requiredFields {
		if f.value(m) == "" {
			verr.Add(f.name, "this field is required")
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// medicationRecord is the decode probe for stored entries. Image is a
// pointer so that a JSON null and an absent field both decode cleanly,
// while a non-string value fails the decode and marks the entry invalid.
type medicationRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Dose      string  `json:"dose"`
	Unit      string  `json:"unit"`
	Frequency string  `json:"frequency"`
	Time      string  `json:"time"`
	Via       string  `json:"via"`
	Duration  string  `json:"duration"`
	Notes     string  `json:"notes"`
	Image     *string `json:"image"`
}

// DecodeMedication parses one stored list element. It returns an error for
// anything the UI could not render: non-object entries, a non-string image,
// or empty id/name/time.
func DecodeMedication(raw json.RawMessage) (*Medication, error) {
	var rec medicationRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}

	verr := common.NewValidationError()
	if rec.ID == "" {
		verr.Add("id", "missing or empty")
	}
	if rec.Name == "" {
		verr.Add("name", "missing or empty")
	}
	if rec.Time == "" {
		verr.Add("time", "missing or empty")
	}
	if !verr.Empty() {
		return nil, verr
	}

	m := &Medication{
		ID:        rec.ID,
		Name:      rec.Name,
		Dose:      rec.Dose,
		Unit:      rec.Unit,
		Frequency: rec.Frequency,
		Time:      rec.Time,
		Via:       rec.Via,
		Duration:  rec.Duration,
		Notes:     rec.Notes,
	}
	if rec.Image != nil {
		m.Image = *rec.Image
	}
	return m, nil
}
