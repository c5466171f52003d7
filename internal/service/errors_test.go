package service

import (
	"errors"
	"testing"

	"notary-ally/internal/records"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "field and message",
			err: &ValidationError{
				Field:   "clientName",
				Message: "is required",
			},
			want: "validation error on field clientName: is required",
		},
		{
			name: "empty field",
			err: &ValidationError{
				Field:   "",
				Message: "invalid",
			},
			want: "validation error on field : invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := WrapError(&ValidationError{Field: "date", Message: "is required"}, "create appointment")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(%v, ErrInvalidInput) = false", err)
	}
}

func TestLookupError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &LookupError{
		Message: DistanceLookupMessage,
		Err:     errors.Join(ErrExternalService, cause),
	}

	if err.Error() != DistanceLookupMessage {
		t.Errorf("LookupError.Error() = %q, want %q", err.Error(), DistanceLookupMessage)
	}
	if !errors.Is(err, ErrExternalService) {
		t.Error("LookupError should match ErrExternalService")
	}
	if !errors.Is(err, cause) {
		t.Error("LookupError should match its cause")
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "nil error",
			err:     nil,
			msg:     "context",
			wantNil: true,
		},
		{
			name:    "wrapped error",
			err:     errors.New("original error"),
			msg:     "context",
			wantNil: false,
			wantMsg: "context: original error",
		},
		{
			name:    "wrapped sentinel",
			err:     ErrNotFound,
			msg:     "update appointment",
			wantMsg: "update appointment: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("WrapError() = nil, want error")
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("WrapError() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("WrapError() does not wrap %v", tt.err)
			}
		})
	}
}

func TestCheckRecord(t *testing.T) {
	tests := []struct {
		name      string
		rec       any
		wantField string
		wantMsg   string
	}{
		{
			name: "valid appointment",
			rec: records.Appointment{
				ClientName: "Jane Doe", Date: "2024-05-01", Time: "10:00", Location: "123 Main St",
			},
		},
		{
			name:      "first missing field is reported",
			rec:       records.Appointment{Date: "2024-05-01"},
			wantField: "clientName",
			wantMsg:   "is required",
		},
		{
			name: "unknown notarization type",
			rec: records.JournalEntry{
				Date:                   "2024-05-01T10:00:00.000Z",
				NotarizationType:       "Wedding",
				SignerName:             "John Smith",
				SignerIDNumber:         "D1234567",
				SignerIDState:          "CA",
				SignerIDIssueDate:      "2020-01-01",
				SignerIDExpirationDate: "2028-01-01",
				SignerAddress:          "1 Elm St",
				SignatureDataURL:       "data:image/png;base64,AAAA",
			},
			wantField: "notarizationType",
			wantMsg:   "must be one of Acknowledgment, Jurat, Copy Certification, Oath or Affirmation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRecord(tt.rec)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("checkRecord() error = %v, want nil", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("checkRecord() error = %v, want *ValidationError", err)
			}
			if vErr.Field != tt.wantField || vErr.Message != tt.wantMsg {
				t.Errorf("checkRecord() = {%s, %s}, want {%s, %s}", vErr.Field, vErr.Message, tt.wantField, tt.wantMsg)
			}
		})
	}
}
