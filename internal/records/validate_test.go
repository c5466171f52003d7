package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Appointment(t *testing.T) {
	assert.Empty(t, Validate(Appointment{ClientName: "Jane", Date: "2024-05-01", Time: "10:00", Location: "Main"}))

	errs := Validate(Appointment{ClientName: "Jane", Time: "10:00"})
	assert.Equal(t, []FieldError{{Field: "date", Tag: "required"}, {Field: "location", Tag: "required"}}, errs)
}

func TestValidate_JournalEntryType(t *testing.T) {
	entry := JournalEntry{
		Date:                   "2024-05-01T10:00:00.000Z",
		NotarizationType:       Jurat,
		SignerName:             "Sam",
		SignerIDNumber:         "X1",
		SignerIDState:          "TX",
		SignerIDIssueDate:      "2020-01-01",
		SignerIDExpirationDate: "2030-01-01",
		SignerAddress:          "1 Elm",
		SignatureDataURL:       "data:image/png;base64,AAAA",
	}
	assert.Empty(t, Validate(entry))

	entry.NotarizationType = "Apostille"
	assert.Equal(t, []FieldError{{Field: "notarizationType", Tag: "notarization_type"}}, Validate(entry))
}

func TestNotarizationType_Valid(t *testing.T) {
	for _, nt := range NotarizationTypes {
		assert.True(t, nt.Valid(), nt)
	}
	assert.False(t, NotarizationType("acknowledgment").Valid())
	assert.False(t, NotarizationType("").Valid())
}
