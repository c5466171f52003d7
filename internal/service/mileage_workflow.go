package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"notary-ally/internal/contextutil"
	"notary-ally/internal/records"
)

// WorkflowState is the stage of the trip being drafted.
type WorkflowState string

const (
	StateIdle        WorkflowState = "idle"
	StateCalculating WorkflowState = "calculating"
	StateCalculated  WorkflowState = "calculated"
	StateFailed      WorkflowState = "failed"
)

// Messages shown alongside the draft.
const (
	msgMissingLocations = "Please enter both start and end locations."
	msgCalculateFirst   = "Please calculate miles before logging the trip."
	msgNonPositive      = "Calculated distance must be greater than zero."
)

// DistanceResolver looks up the driving distance between two places.
type DistanceResolver interface {
	ResolveDistance(ctx context.Context, start, end string) (decimal.Decimal, error)
}

// MileageDraft is the trip being entered before it is logged.
type MileageDraft struct {
	Date          string `json:"date"`
	StartLocation string `json:"startLocation"`
	EndLocation   string `json:"endLocation"`
}

// MileageSnapshot is a point-in-time view of the workflow.
type MileageSnapshot struct {
	State   WorkflowState    `json:"state"`
	Draft   MileageDraft     `json:"draft"`
	Miles   *decimal.Decimal `json:"miles,omitempty"`
	Message string           `json:"message,omitempty"`
}

// MileageWorkflow computes a trip distance and then logs the trip.
//
// Editing the draft after a calculation does not discard the computed
// distance, so a commit logs the edited locations with the earlier figure.
type MileageWorkflow struct {
	resolver DistanceResolver
	log      *records.MileageLog

	mu       sync.Mutex
	state    WorkflowState
	draft    MileageDraft
	miles    decimal.Decimal
	hasMiles bool
	message  string
}

// NewMileageWorkflow creates an idle workflow whose draft date is today (UTC).
func NewMileageWorkflow(resolver DistanceResolver, log *records.MileageLog) *MileageWorkflow {
	return &MileageWorkflow{
		resolver: resolver,
		log:      log,
		state:    StateIdle,
		draft:    MileageDraft{Date: time.Now().UTC().Format(time.DateOnly)},
	}
}

// Snapshot returns the current state, draft, distance and message.
func (w *MileageWorkflow) Snapshot() MileageSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *MileageWorkflow) snapshotLocked() MileageSnapshot {
	snap := MileageSnapshot{
		State:   w.state,
		Draft:   w.draft,
		Message: w.message,
	}
	if w.hasMiles {
		miles := w.miles
		snap.Miles = &miles
	}
	return snap
}

// SetDraft replaces the draft fields. The workflow state is left alone.
func (w *MileageWorkflow) SetDraft(draft MileageDraft) MileageSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = draft
	return w.snapshotLocked()
}

// Calculate resolves the distance for the current draft. Only one
// calculation runs at a time; the lock is not held during the lookup.
func (w *MileageWorkflow) Calculate(ctx context.Context) (MileageSnapshot, error) {
	logger := contextutil.LoggerFromContext(ctx)

	w.mu.Lock()
	if w.state == StateCalculating {
		snap := w.snapshotLocked()
		w.mu.Unlock()
		return snap, ErrCalculationInProgress
	}
	if w.draft.StartLocation == "" || w.draft.EndLocation == "" {
		field := "startLocation"
		if w.draft.StartLocation != "" {
			field = "endLocation"
		}
		w.message = msgMissingLocations
		snap := w.snapshotLocked()
		w.mu.Unlock()
		return snap, &ValidationError{Field: field, Message: "is required"}
	}
	w.state = StateCalculating
	w.message = ""
	w.hasMiles = false
	w.miles = decimal.Zero
	start, end := w.draft.StartLocation, w.draft.EndLocation
	w.mu.Unlock()

	miles, err := w.resolver.ResolveDistance(ctx, start, end)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		logger.WarnContext(ctx, "mileage calculation failed", "error", err)
		w.state = StateFailed
		w.message = userMessage(err)
		return w.snapshotLocked(), err
	}
	w.state = StateCalculated
	w.miles = miles
	w.hasMiles = true
	return w.snapshotLocked(), nil
}

// Commit logs the drafted trip with the calculated distance. It requires a
// completed calculation with a positive distance. On success the locations
// are cleared, the date is kept, and the workflow returns to idle.
func (w *MileageWorkflow) Commit(ctx context.Context) (records.MileageEntry, error) {
	logger := contextutil.LoggerFromContext(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateCalculated || !w.hasMiles {
		w.message = msgCalculateFirst
		return records.MileageEntry{}, &ValidationError{Field: "miles", Message: "must be calculated before logging the trip"}
	}
	if !w.miles.IsPositive() {
		w.message = msgNonPositive
		return records.MileageEntry{}, &ValidationError{Field: "miles", Message: "must be greater than zero"}
	}

	entry := records.MileageEntry{
		Date:          w.draft.Date,
		StartLocation: w.draft.StartLocation,
		EndLocation:   w.draft.EndLocation,
		Miles:         w.miles,
	}
	if err := checkRecord(entry); err != nil {
		return records.MileageEntry{}, err
	}

	entry = w.log.Add(ctx, entry)
	logger.InfoContext(ctx, "trip logged", "id", entry.ID, "miles", entry.Miles.StringFixed(1))

	w.draft.StartLocation = ""
	w.draft.EndLocation = ""
	w.miles = decimal.Zero
	w.hasMiles = false
	w.message = ""
	w.state = StateIdle
	return entry, nil
}

// userMessage is the text shown for a failed lookup.
func userMessage(err error) string {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Message
	}
	return err.Error()
}
