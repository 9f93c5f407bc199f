package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/medialert/internal/common"
)

func validMedication() Medication {
	return Medication{
		ID:        "1",
		Name:      "Ibuprofen",
		Dose:      "500",
		Unit:      "mg",
		Frequency: "every 8 hours",
		Time:      "08:30",
		Via:       "oral",
		Duration:  "7 days",
	}
}

func TestMedication_Validate(t *testing.T) {
	t.Run("complete medication passes", func(t *testing.T) {
		m := validMedication()
		require.NoError(t, m.Validate())
	})

	t.Run("names every missing field", func(t *testing.T) {
		m := validMedication()
		m.Dose = ""
		m.Via = ""

		err := m.Validate()
		require.Error(t, err)

		var verr *common.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
		assert.Contains(t, verr.Fields, "dose")
		assert.Contains(t, verr.Fields, "via")
	})

	t.Run("notes and image are optional", func(t *testing.T) {
		m := validMedication()
		m.Notes = ""
		m.Image = ""
		require.NoError(t, m.Validate())
	})
}

func TestDecodeMedication(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "complete entry",
			raw:  `{"id":"1","name":"Aspirin","time":"08:00","dose":"100","unit":"mg","frequency":"daily","via":"oral","duration":"30 days"}`,
		},
		{
			name: "null image is fine",
			raw:  `{"id":"1","name":"Aspirin","time":"08:00","image":null}`,
		},
		{
			name: "string image is fine",
			raw:  `{"id":"1","name":"Aspirin","time":"08:00","image":"file:///pill.png"}`,
		},
		{
			name:    "numeric image is invalid",
			raw:     `{"id":"1","name":"Aspirin","time":"08:00","image":42}`,
			wantErr: true,
		},
		{
			name:    "missing id",
			raw:     `{"name":"Aspirin","time":"08:00"}`,
			wantErr: true,
		},
		{
			name:    "empty name",
			raw:     `{"id":"1","name":"","time":"08:00"}`,
			wantErr: true,
		},
		{
			name:    "missing time",
			raw:     `{"id":"1","name":"Aspirin"}`,
			wantErr: true,
		},
		{
			name:    "not an object",
			raw:     `"oops"`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := DecodeMedication(json.RawMessage(tc.raw))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, m)
			assert.NotEmpty(t, m.ID)
		})
	}
}

func TestDecodeMedication_CopiesImage(t *testing.T) {
	raw := json.RawMessage(`{"id":"1","name":"Aspirin","time":"08:00","image":"file:///pill.png"}`)
	m, err := DecodeMedication(raw)
	require.NoError(t, err)
	assert.Equal(t, "file:///pill.png", m.Image)
}
