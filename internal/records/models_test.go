package records

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMileageEntry_MarshalJSON(t *testing.T) {
	entry := MileageEntry{
		ID:            "2024-05-01T10:00:00.000Z",
		Date:          "2024-05-01",
		StartLocation: "Home",
		EndLocation:   "Office",
		Miles:         decimal.RequireFromString("42.50"),
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2024-05-01T10:00:00.000Z","date":"2024-05-01","startLocation":"Home","endLocation":"Office","miles":42.5}`, string(data))
	assert.Contains(t, string(data), `"miles":42.5`)
}

func TestMileageEntry_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "number", raw: `{"id":"a","date":"2024-05-01","startLocation":"Home","endLocation":"Office","miles":12.5}`},
		{name: "quoted", raw: `{"id":"a","date":"2024-05-01","startLocation":"Home","endLocation":"Office","miles":"12.5"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entry MileageEntry
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &entry))
			assert.True(t, entry.Miles.Equal(decimal.RequireFromString("12.5")), "miles = %s", entry.Miles)
			assert.Equal(t, "Office", entry.EndLocation)
		})
	}
}
