package service

import (
	"context"
	"errors"
	"time"

	"notary-ally/internal/contextutil"
	"notary-ally/internal/export"
	"notary-ally/internal/records"
	"notary-ally/internal/signature"
)

// JournalService records notarial acts. Entries cannot be edited.
type JournalService struct {
	journal *records.Journal
	now     func() time.Time
}

// NewJournalService creates a JournalService over journal.
func NewJournalService(journal *records.Journal) *JournalService {
	return &JournalService{journal: journal, now: time.Now}
}

// List returns every journal entry, newest first.
func (s *JournalService) List() []records.JournalEntry {
	return s.journal.All()
}

// Record stamps draft with the current time, validates it, and appends it
// to the journal. Any Date on draft is overwritten.
func (s *JournalService) Record(ctx context.Context, draft records.JournalEntry) (records.JournalEntry, error) {
	logger := contextutil.LoggerFromContext(ctx)

	draft.Date = records.FormatTimestamp(s.now())

	if err := checkRecord(draft); err != nil {
		logger.WarnContext(ctx, "invalid journal entry", "error", err)
		return records.JournalEntry{}, err
	}

	if err := signature.Check(draft.SignatureDataURL); err != nil {
		logger.WarnContext(ctx, "rejected signature", "error", err)
		msg := "must be a PNG or JPEG image data URL"
		if errors.Is(err, signature.ErrBlank) {
			msg = "is required"
		}
		return records.JournalEntry{}, &ValidationError{Field: "signatureDataUrl", Message: msg}
	}

	entry := s.journal.Add(ctx, draft)
	logger.InfoContext(ctx, "journal entry recorded", "id", entry.ID, "type", entry.NotarizationType)
	return entry, nil
}

// Export renders the journal as CSV. Signatures are not exported.
func (s *JournalService) Export() (export.Document, error) {
	return export.ExportJournal(s.journal.All())
}
