package handlers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"notary-ally/internal/export"
	"notary-ally/internal/records"
	"notary-ally/internal/service"
)

// MileageService is the trip log as seen by the HTTP layer.
type MileageService interface {
	List() []records.MileageEntry
	TotalMiles() decimal.Decimal
	Export() (export.Document, error)
}

// MileageWorkflow drafts, prices and logs a trip.
type MileageWorkflow interface {
	Snapshot() service.MileageSnapshot
	SetDraft(draft service.MileageDraft) service.MileageSnapshot
	Calculate(ctx context.Context) (service.MileageSnapshot, error)
	Commit(ctx context.Context) (records.MileageEntry, error)
}

// MileageHandler serves /api/mileage and the trip draft under it.
type MileageHandler struct {
	mileage  MileageService
	workflow MileageWorkflow
}

// NewMileageHandler creates a new MileageHandler.
func NewMileageHandler(mileage MileageService, workflow MileageWorkflow) *MileageHandler {
	return &MileageHandler{mileage: mileage, workflow: workflow}
}

// MileageLogResponse is the trip log with its running total.
type MileageLogResponse struct {
	Entries    []records.MileageEntry `json:"entries"`
	TotalMiles string                 `json:"totalMiles"`
}

// List returns every logged trip, newest first, and the total distance.
func (h *MileageHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, MileageLogResponse{
		Entries:    h.mileage.List(),
		TotalMiles: h.mileage.TotalMiles().StringFixed(1),
	})
}

// Export downloads mileage_log.csv.
func (h *MileageHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.mileage.Export()
	writeDocument(w, r, doc, err)
}

// Draft returns the trip being entered.
func (h *MileageHandler) Draft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.workflow.Snapshot())
}

// UpdateDraft replaces the draft fields.
func (h *MileageHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var draft service.MileageDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	writeJSON(w, r.Context(), http.StatusOK, h.workflow.SetDraft(draft))
}

// Calculate looks up the distance for the draft.
func (h *MileageHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	snap, err := h.workflow.Calculate(r.Context())
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to calculate mileage")
		return
	}
	writeJSON(w, r.Context(), http.StatusOK, snap)
}

// Commit logs the drafted trip.
func (h *MileageHandler) Commit(w http.ResponseWriter, r *http.Request) {
	entry, err := h.workflow.Commit(r.Context())
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to log trip")
		return
	}
	writeJSON(w, r.Context(), http.StatusCreated, entry)
}
