package records

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Storage keys for the persisted collections and preferences.
const (
	AppointmentsKey = "notary_appointments"
	MileageKey      = "notary_mileage"
	JournalKey      = "notary_journal"
	DarkModeKey     = "notary_dark_mode"
)

// Appointment is a scheduled signing with a client.
type Appointment struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Time       string `json:"time" validate:"required"`
	Location   string `json:"location" validate:"required"`
}

func (a Appointment) RecordID() string { return a.ID }

func (a Appointment) WithID(id string) Appointment {
	a.ID = id
	return a
}

// MileageEntry is one logged trip. Entries are never edited once logged.
type MileageEntry struct {
	ID            string          `json:"id"`
	Date          string          `json:"date" validate:"required"`
	StartLocation string          `json:"startLocation" validate:"required"`
	EndLocation   string          `json:"endLocation" validate:"required"`
	Miles         decimal.Decimal `json:"miles"`
}

func (m MileageEntry) RecordID() string { return m.ID }

func (m MileageEntry) WithID(id string) MileageEntry {
	m.ID = id
	return m
}

// MarshalJSON writes Miles as a JSON number, matching stored entries.
// Quoted miles are still accepted when decoding.
func (m MileageEntry) MarshalJSON() ([]byte, error) {
	type entry MileageEntry
	return json.Marshal(struct {
		entry
		Miles json.Number `json:"miles"`
	}{entry(m), json.Number(m.Miles.String())})
}

// NotarizationType is the kind of notarial act recorded in the journal.
type NotarizationType string

const (
	Acknowledgment    NotarizationType = "Acknowledgment"
	Jurat             NotarizationType = "Jurat"
	CopyCertification NotarizationType = "Copy Certification"
	OathOrAffirmation NotarizationType = "Oath or Affirmation"
)

// NotarizationTypes lists every notarial act in display order.
var NotarizationTypes = []NotarizationType{
	Acknowledgment,
	Jurat,
	CopyCertification,
	OathOrAffirmation,
}

// Valid reports whether t is one of NotarizationTypes.
func (t NotarizationType) Valid() bool {
	for _, known := range NotarizationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// JournalEntry is one notarial act. Journal entries are legal records and are
// never edited once recorded.
type JournalEntry struct {
	ID                     string           `json:"id"`
	Date                   string           `json:"date" validate:"required"`
	NotarizationType       NotarizationType `json:"notarizationType" validate:"required,notarization_type"`
	SignerName             string           `json:"signerName" validate:"required"`
	SignerIDNumber         string           `json:"signerIdNumber" validate:"required"`
	SignerIDState          string           `json:"signerIdState" validate:"required"`
	SignerIDIssueDate      string           `json:"signerIdIssueDate" validate:"required"`
	SignerIDExpirationDate string           `json:"signerIdExpirationDate" validate:"required"`
	SignerAddress          string           `json:"signerAddress" validate:"required"`
	SignatureDataURL       string           `json:"signatureDataUrl" validate:"required"`
}

func (j JournalEntry) RecordID() string { return j.ID }

func (j JournalEntry) WithID(id string) JournalEntry {
	j.ID = id
	return j
}

// LocationInfo is the result of a county lookup. It is never persisted.
type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	County    string  `json:"county"`
	Error     string  `json:"error,omitempty"`
}
