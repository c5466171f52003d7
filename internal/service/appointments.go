package service

import (
	"context"

	"notary-ally/internal/contextutil"
	"notary-ally/internal/export"
	"notary-ally/internal/records"
)

// AppointmentService schedules and edits client appointments.
type AppointmentService struct {
	book *records.AppointmentBook
}

// NewAppointmentService creates an AppointmentService over book.
func NewAppointmentService(book *records.AppointmentBook) *AppointmentService {
	return &AppointmentService{book: book}
}

// List returns every appointment, newest first.
func (s *AppointmentService) List() []records.Appointment {
	return s.book.All()
}

// Create validates draft and adds it to the book with a fresh ID.
func (s *AppointmentService) Create(ctx context.Context, draft records.Appointment) (records.Appointment, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := checkRecord(draft); err != nil {
		logger.WarnContext(ctx, "invalid appointment", "error", err)
		return records.Appointment{}, err
	}

	appt := s.book.Add(ctx, draft)
	logger.InfoContext(ctx, "appointment created", "id", appt.ID)
	return appt, nil
}

// Update replaces the appointment with the same ID. An unknown ID yields
// ErrNotFound and leaves the book unchanged.
func (s *AppointmentService) Update(ctx context.Context, appt records.Appointment) (records.Appointment, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if appt.ID == "" {
		return records.Appointment{}, &ValidationError{Field: "id", Message: "is required"}
	}
	if err := checkRecord(appt); err != nil {
		logger.WarnContext(ctx, "invalid appointment", "id", appt.ID, "error", err)
		return records.Appointment{}, err
	}

	if !s.book.Update(ctx, appt) {
		logger.WarnContext(ctx, "appointment not found", "id", appt.ID)
		return records.Appointment{}, WrapError(ErrNotFound, "appointment "+appt.ID)
	}

	logger.InfoContext(ctx, "appointment updated", "id", appt.ID)
	return appt, nil
}

// Export renders the appointments as CSV.
func (s *AppointmentService) Export() (export.Document, error) {
	return export.ExportAppointments(s.book.All())
}
