package records

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator assigns identifiers to new records.
type IDGenerator interface {
	NewID() string
}

// UUIDs issues random version 4 UUIDs.
type UUIDs struct{}

func (UUIDs) NewID() string {
	return uuid.NewString()
}

// jsISOLayout matches JavaScript's Date.prototype.toISOString.
const jsISOLayout = "2006-01-02T15:04:05.000Z"

// TimestampIDs issues the creation time as an ISO-8601 UTC string with
// millisecond precision. Two records created within the same millisecond
// get the same ID; use it only where IDs must match existing data.
type TimestampIDs struct {
	Now func() time.Time
}

func (g TimestampIDs) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return FormatTimestamp(now())
}

// FormatTimestamp renders t the way the journal stores creation times.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(jsISOLayout)
}

// NewIDGenerator returns the generator for scheme ("uuid" or "timestamp").
// Unknown schemes fall back to UUIDs.
func NewIDGenerator(scheme string) IDGenerator {
	if scheme == "timestamp" {
		return TimestampIDs{}
	}
	return UUIDs{}
}

// NormalizeTimestamp rewrites an RFC 3339 timestamp in FormatTimestamp form.
// Strings that do not parse are returned unchanged.
func NormalizeTimestamp(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return FormatTimestamp(t)
}
