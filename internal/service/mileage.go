package service

import (
	"github.com/shopspring/decimal"

	"notary-ally/internal/export"
	"notary-ally/internal/records"
)

// MileageService reads the trip log. Trips are added through MileageWorkflow.
type MileageService struct {
	log *records.MileageLog
}

// NewMileageService creates a MileageService over log.
func NewMileageService(log *records.MileageLog) *MileageService {
	return &MileageService{log: log}
}

// List returns every logged trip, newest first.
func (s *MileageService) List() []records.MileageEntry {
	return s.log.All()
}

// TotalMiles sums the log, rounded to one decimal place.
func (s *MileageService) TotalMiles() decimal.Decimal {
	return s.log.TotalMiles().Round(1)
}

// Export renders the trip log as CSV.
func (s *MileageService) Export() (export.Document, error) {
	return export.ExportMileage(s.log.All())
}
