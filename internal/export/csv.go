// Package export renders record collections as CSV downloads.
//
// Every field is quoted and embedded quotes are doubled, including numbers
// and dates, so spreadsheet tools never reinterpret a value.
package export

import (
	"errors"
	"fmt"
	"strings"

	"notary-ally/internal/records"
)

// ContentType is the MIME type of every exported document.
const ContentType = "text/csv;charset=utf-8"

// ErrNothingToExport is returned when the collection is empty.
var ErrNothingToExport = errors.New("nothing to export")

// Document is a rendered CSV file ready for download.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Column is one output column: a header label and how to read the value.
type Column[T any] struct {
	Label string
	Value func(T) string
}

// Kind names an exportable collection.
type Kind struct {
	// Noun is the plural used in the empty-collection message.
	Noun     string
	Filename string
}

var (
	Appointments = Kind{Noun: "appointments", Filename: "appointments.csv"}
	Mileage      = Kind{Noun: "mileage entries", Filename: "mileage_log.csv"}
	Journal      = Kind{Noun: "journal entries", Filename: "journal_entries.csv"}
)

// EmptyError reports an export of an empty collection. It matches ErrNothingToExport.
type EmptyError struct {
	Kind Kind
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("No %s to export.", e.Kind.Noun)
}

func (e *EmptyError) Unwrap() error {
	return ErrNothingToExport
}

// Export renders recs in their current order using columns.
func Export[T any](kind Kind, recs []T, columns []Column[T]) (Document, error) {
	if len(recs) == 0 {
		return Document{}, &EmptyError{Kind: kind}
	}

	lines := make([]string, 0, len(recs)+1)

	// Header labels are fixed identifiers and are written bare.
	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = col.Label
	}
	lines = append(lines, strings.Join(labels, ","))

	fields := make([]string, len(columns))
	for _, rec := range recs {
		for i, col := range columns {
			fields[i] = Quote(col.Value(rec))
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return Document{
		Filename:    kind.Filename,
		ContentType: ContentType,
		Body:        []byte(strings.Join(lines, "\n")),
	}, nil
}

// Quote wraps s in double quotes, doubling any quote inside it.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Unquote reverses Quote. It reports false if s is not a quoted field.
func Unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	inner := s[1 : len(s)-1]

	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '"' {
			// Quotes inside a field only ever appear doubled.
			if i+1 >= len(inner) || inner[i+1] != '"' {
				return "", false
			}
			i++
		}
		b.WriteByte(c)
	}
	return b.String(), true
}

// AppointmentColumns are the columns of appointments.csv.
var AppointmentColumns = []Column[records.Appointment]{
	{Label: "ID", Value: func(a records.Appointment) string { return a.ID }},
	{Label: "Client Name", Value: func(a records.Appointment) string { return a.ClientName }},
	{Label: "Date", Value: func(a records.Appointment) string { return a.Date }},
	{Label: "Time", Value: func(a records.Appointment) string { return a.Time }},
	{Label: "Location", Value: func(a records.Appointment) string { return a.Location }},
}

// MileageColumns are the columns of mileage_log.csv. Miles always carry one decimal place.
var MileageColumns = []Column[records.MileageEntry]{
	{Label: "ID", Value: func(m records.MileageEntry) string { return m.ID }},
	{Label: "Date", Value: func(m records.MileageEntry) string { return m.Date }},
	{Label: "Start Location", Value: func(m records.MileageEntry) string { return m.StartLocation }},
	{Label: "End Location", Value: func(m records.MileageEntry) string { return m.EndLocation }},
	{Label: "Miles", Value: func(m records.MileageEntry) string { return m.Miles.StringFixed(1) }},
}

// JournalColumns are the columns of journal_entries.csv. The signature image is not exported.
var JournalColumns = []Column[records.JournalEntry]{
	{Label: "ID", Value: func(j records.JournalEntry) string { return j.ID }},
	{Label: "Date", Value: func(j records.JournalEntry) string { return records.NormalizeTimestamp(j.Date) }},
	{Label: "Notarization Type", Value: func(j records.JournalEntry) string { return string(j.NotarizationType) }},
	{Label: "Signer Name", Value: func(j records.JournalEntry) string { return j.SignerName }},
	{Label: "Signer Address", Value: func(j records.JournalEntry) string { return j.SignerAddress }},
	{Label: "Signer ID Number", Value: func(j records.JournalEntry) string { return j.SignerIDNumber }},
	{Label: "Signer ID State", Value: func(j records.JournalEntry) string { return j.SignerIDState }},
	{Label: "Signer ID Issue Date", Value: func(j records.JournalEntry) string { return j.SignerIDIssueDate }},
	{Label: "Signer ID Expiration Date", Value: func(j records.JournalEntry) string { return j.SignerIDExpirationDate }},
}

// ExportAppointments renders appointments.csv.
func ExportAppointments(recs []records.Appointment) (Document, error) {
	return Export(Appointments, recs, AppointmentColumns)
}

// ExportMileage renders mileage_log.csv.
func ExportMileage(recs []records.MileageEntry) (Document, error) {
	return Export(Mileage, recs, MileageColumns)
}

// ExportJournal renders journal_entries.csv.
func ExportJournal(recs []records.JournalEntry) (Document, error) {
	return Export(Journal, recs, JournalColumns)
}
