package records

import (
	"context"

	"github.com/shopspring/decimal"

	"notary-ally/internal/persist"
	"notary-ally/internal/storage"
)

// Record is a stored domain record of type T.
type Record[T any] interface {
	RecordID() string
	WithID(id string) T
}

// Collection is a persisted, newest-first sequence of records.
type Collection[T Record[T]] struct {
	value *persist.Value[[]T]
	ids   IDGenerator
}

// NewCollection wraps value. The value should already be loaded.
func NewCollection[T Record[T]](value *persist.Value[[]T], ids IDGenerator) *Collection[T] {
	return &Collection[T]{value: value, ids: ids}
}

// Add assigns draft a fresh ID, puts it at the front of the collection and
// persists the result. Any ID already on draft is replaced.
func (c *Collection[T]) Add(ctx context.Context, draft T) T {
	rec := draft.WithID(c.ids.NewID())
	c.value.Update(ctx, func(prev []T) []T {
		next := make([]T, 0, len(prev)+1)
		next = append(next, rec)
		return append(next, prev...)
	})
	return rec
}

// All returns a copy of the records, newest first.
func (c *Collection[T]) All() []T {
	current := c.value.Get()
	out := make([]T, len(current))
	copy(out, current)
	return out
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	return len(c.value.Get())
}

// Find returns the record with the given ID.
func (c *Collection[T]) Find(id string) (T, bool) {
	for _, rec := range c.value.Get() {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Reset empties the collection and removes its stored copy.
func (c *Collection[T]) Reset(ctx context.Context) error {
	return c.value.Reset(ctx)
}

// replace swaps in rec for the record with the same ID, keeping order.
// It reports false, and writes nothing, when no record matches.
func (c *Collection[T]) replace(ctx context.Context, rec T) bool {
	return c.value.Modify(ctx, func(prev []T) ([]T, bool) {
		for i, existing := range prev {
			if existing.RecordID() != rec.RecordID() {
				continue
			}
			next := make([]T, len(prev))
			copy(next, prev)
			next[i] = rec
			return next, true
		}
		return prev, false
	})
}

// AppointmentBook is the appointment collection. Appointments are the only
// records that can be edited after creation.
type AppointmentBook struct {
	*Collection[Appointment]
}

// Update replaces the appointment with the same ID. It reports false and
// leaves the book unchanged when the ID is unknown.
func (b *AppointmentBook) Update(ctx context.Context, a Appointment) bool {
	return b.replace(ctx, a)
}

// MileageLog is the append-only trip log.
type MileageLog struct {
	*Collection[MileageEntry]
}

// TotalMiles sums every logged trip.
func (l *MileageLog) TotalMiles() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.value.Get() {
		total = total.Add(e.Miles)
	}
	return total
}

// Journal is the append-only notarial journal.
type Journal struct {
	*Collection[JournalEntry]
}

// Book bundles the persisted state of one notary's records.
type Book struct {
	Appointments *AppointmentBook
	Mileage      *MileageLog
	Journal      *Journal
	DarkMode     *persist.Value[bool]
}

// OpenBook loads every collection from store.
func OpenBook(ctx context.Context, store storage.Substrate, ids IDGenerator) *Book {
	return &Book{
		Appointments: &AppointmentBook{NewCollection(persist.Open(ctx, store, AppointmentsKey, []Appointment{}), ids)},
		Mileage:      &MileageLog{NewCollection(persist.Open(ctx, store, MileageKey, []MileageEntry{}), ids)},
		Journal:      &Journal{NewCollection(persist.Open(ctx, store, JournalKey, []JournalEntry{}), ids)},
		DarkMode:     persist.Open(ctx, store, DarkModeKey, false),
	}
}
