package handlers

import (
	"context"
	"net/http"

	"notary-ally/internal/export"
	"notary-ally/internal/records"
)

// JournalService is the notarial journal as seen by the HTTP layer.
type JournalService interface {
	List() []records.JournalEntry
	Record(ctx context.Context, draft records.JournalEntry) (records.JournalEntry, error)
	Export() (export.Document, error)
}

// JournalHandler serves /api/journal. There is no update route: journal
// entries are permanent.
type JournalHandler struct {
	journal JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journal JournalService) *JournalHandler {
	return &JournalHandler{journal: journal}
}

// JournalRequest is a journal entry as submitted. The date is assigned by
// the server.
type JournalRequest struct {
	NotarizationType       records.NotarizationType `json:"notarizationType"`
	SignerName             string                   `json:"signerName"`
	SignerIDNumber         string                   `json:"signerIdNumber"`
	SignerIDState          string                   `json:"signerIdState"`
	SignerIDIssueDate      string                   `json:"signerIdIssueDate"`
	SignerIDExpirationDate string                   `json:"signerIdExpirationDate"`
	SignerAddress          string                   `json:"signerAddress"`
	SignatureDataURL       string                   `json:"signatureDataUrl"`
}

// List returns every journal entry, newest first.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.journal.List())
}

// Create records a notarial act.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req JournalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.journal.Record(r.Context(), records.JournalEntry{
		NotarizationType:       req.NotarizationType,
		SignerName:             req.SignerName,
		SignerIDNumber:         req.SignerIDNumber,
		SignerIDState:          req.SignerIDState,
		SignerIDIssueDate:      req.SignerIDIssueDate,
		SignerIDExpirationDate: req.SignerIDExpirationDate,
		SignerAddress:          req.SignerAddress,
		SignatureDataURL:       req.SignatureDataURL,
	})
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to record journal entry")
		return
	}
	writeJSON(w, r.Context(), http.StatusCreated, entry)
}

// Export downloads journal_entries.csv.
func (h *JournalHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.journal.Export()
	writeDocument(w, r, doc, err)
}
