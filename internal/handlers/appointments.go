package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"notary-ally/internal/export"
	"notary-ally/internal/records"
)

// AppointmentService is the appointment book as seen by the HTTP layer.
type AppointmentService interface {
	List() []records.Appointment
	Create(ctx context.Context, draft records.Appointment) (records.Appointment, error)
	Update(ctx context.Context, appt records.Appointment) (records.Appointment, error)
	Export() (export.Document, error)
}

// AppointmentHandler serves /api/appointments.
type AppointmentHandler struct {
	appointments AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// AppointmentRequest is an appointment as submitted. An ID in the body is
// ignored on create and must match the URL on update.
type AppointmentRequest struct {
	ID         string `json:"id,omitempty"`
	ClientName string `json:"clientName"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Location   string `json:"location"`
}

func (req AppointmentRequest) toRecord(id string) records.Appointment {
	return records.Appointment{
		ID:         id,
		ClientName: req.ClientName,
		Date:       req.Date,
		Time:       req.Time,
		Location:   req.Location,
	}
}

// List returns every appointment, newest first.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.appointments.List())
}

// Create adds an appointment.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	appt, err := h.appointments.Create(r.Context(), req.toRecord(""))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to create appointment")
		return
	}
	writeJSON(w, r.Context(), http.StatusCreated, appt)
}

// Update replaces the appointment named in the URL.
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if req.ID != "" && req.ID != id {
		writeError(w, http.StatusBadRequest, "Appointment id does not match the URL")
		return
	}

	appt, err := h.appointments.Update(r.Context(), req.toRecord(id))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to update appointment")
		return
	}
	writeJSON(w, r.Context(), http.StatusOK, appt)
}

// Export downloads appointments.csv.
func (h *AppointmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.appointments.Export()
	writeDocument(w, r, doc, err)
}
