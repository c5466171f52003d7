package persist_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"notary-ally/internal/persist"
	"notary-ally/internal/storage"
	"notary-ally/internal/storage/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func TestValue_LoadDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		mockSetup func(*mocks.MockSubstrate)
	}{
		{
			name: "absent key",
			mockSetup: func(m *mocks.MockSubstrate) {
				m.EXPECT().Get(gomock.Any(), "k").Return("", false, nil)
			},
		},
		{
			name: "empty string",
			mockSetup: func(m *mocks.MockSubstrate) {
				m.EXPECT().Get(gomock.Any(), "k").Return("", true, nil)
			},
		},
		{
			name: "corrupt json",
			mockSetup: func(m *mocks.MockSubstrate) {
				m.EXPECT().Get(gomock.Any(), "k").Return("[{not json", true, nil)
			},
		},
		{
			name: "substrate error",
			mockSetup: func(m *mocks.MockSubstrate) {
				m.EXPECT().Get(gomock.Any(), "k").Return("", false, errors.New("disk I/O error"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockSubstrate(ctrl)
			tt.mockSetup(store)

			def := []item{{ID: "default"}}
			v := persist.Open(context.Background(), store, "k", def)

			if diff := cmp.Diff(def, v.Get()); diff != "" {
				t.Errorf("Get() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValue_WriteFailureKeepsMemoryState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSubstrate(ctrl)
	store.EXPECT().Set(gomock.Any(), "notary_dark_mode", "true").Return(errors.New("quota exceeded"))

	v := persist.New(store, "notary_dark_mode", false)
	v.Set(context.Background(), true)

	if !v.Get() {
		t.Error("Get() = false after failed write, want in-memory value true")
	}
}

func TestValue_WritesThroughOnEveryChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSubstrate(ctrl)
	gomock.InOrder(
		store.EXPECT().Set(gomock.Any(), "n", "1").Return(nil),
		store.EXPECT().Set(gomock.Any(), "n", "2").Return(nil),
		store.EXPECT().Set(gomock.Any(), "n", "12").Return(nil),
	)

	v := persist.New(store, "n", 0)
	ctx := context.Background()
	v.Set(ctx, 1)
	v.Set(ctx, 2)
	got := v.Update(ctx, func(n int) int { return n + 10 })

	if got != 12 || v.Get() != 12 {
		t.Errorf("Update() = %d, Get() = %d; want 12", got, v.Get())
	}
}

func TestValue_RoundTrip(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	repo := storage.NewKVRepo(db)
	ctx := context.Background()

	want := []item{
		{ID: "2", Label: `says "hi", then leaves`},
		{ID: "1", Label: "data:image/png;base64,iVBORw0KGgo="},
	}

	first := persist.Open(ctx, repo, "items", []item{})
	first.Set(ctx, want)

	second := persist.Open(ctx, repo, "items", []item{})
	if diff := cmp.Diff(want, second.Get()); diff != "" {
		t.Errorf("reloaded value mismatch (-want +got):\n%s", diff)
	}
}

func TestValue_Reset(t *testing.T) {
	store := storage.NewMemoryKV()
	ctx := context.Background()

	v := persist.Open(ctx, store, "notary_journal", []item{})
	v.Set(ctx, []item{{ID: "1"}})
	if err := v.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if len(v.Get()) != 0 {
		t.Errorf("Get() after Reset() = %v, want empty", v.Get())
	}
	if _, ok, _ := store.Get(ctx, "notary_journal"); ok {
		t.Error("stored copy still present after Reset()")
	}
}

func TestValue_ResetReportsDeleteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deleteErr := errors.New("database is locked")
	store := mocks.NewMockSubstrate(ctrl)
	store.EXPECT().Set(gomock.Any(), "notary_journal", gomock.Any()).Return(nil)
	store.EXPECT().Delete(gomock.Any(), "notary_journal").Return(deleteErr)

	v := persist.New(store, "notary_journal", []item{})
	ctx := context.Background()
	v.Set(ctx, []item{{ID: "1"}})

	err := v.Reset(ctx)
	if !errors.Is(err, deleteErr) {
		t.Fatalf("Reset() error = %v, want %v", err, deleteErr)
	}
	if len(v.Get()) != 0 {
		t.Errorf("Get() after failed Reset() = %v, want empty", v.Get())
	}
}

func TestValue_ModifySkipsWriteWhenUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSubstrate(ctrl)
	// Only the applied change reaches the substrate.
	store.EXPECT().Set(gomock.Any(), "n", "5").Return(nil).Times(1)

	v := persist.New(store, "n", 0)
	ctx := context.Background()

	if v.Modify(ctx, func(n int) (int, bool) { return n, false }) {
		t.Error("Modify() = true for a no-op change")
	}
	if !v.Modify(ctx, func(n int) (int, bool) { return 5, true }) {
		t.Error("Modify() = false for an applied change")
	}
	if v.Get() != 5 {
		t.Errorf("Get() = %d, want 5", v.Get())
	}
}
