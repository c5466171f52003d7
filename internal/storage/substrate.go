package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_substrate.go -package=mocks notary-ally/internal/storage Substrate

import "context"

// Substrate is a durable string-keyed store of string values.
// Each key is written independently; there are no multi-key transactions.
type Substrate interface {
	// Get returns the value stored under key. The boolean is false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the substrate is reachable.
	Ping(ctx context.Context) error
}
