// Package persist keeps JSON-encoded values in a storage.Substrate.
//
// A Value is loaded once (read-through with a default) and written back on
// every change (write-through). The in-memory copy is authoritative for the
// running process: read and write failures are logged, never returned, so a
// broken substrate degrades to an unsaved session instead of failing callers.
// Reset is the one operation that reports a substrate error.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"notary-ally/internal/contextutil"
	"notary-ally/internal/storage"
)

// Value is a persisted value of type T stored under a single key.
type Value[T any] struct {
	store storage.Substrate
	key   string
	def   T

	mu      sync.RWMutex
	current T
}

// New returns a Value holding def. Call Load to pick up the stored copy.
func New[T any](store storage.Substrate, key string, def T) *Value[T] {
	return &Value[T]{
		store:   store,
		key:     key,
		def:     def,
		current: def,
	}
}

// Open is New followed by Load.
func Open[T any](ctx context.Context, store storage.Substrate, key string, def T) *Value[T] {
	v := New(store, key, def)
	v.Load(ctx)
	return v
}

// Load reads the stored value into memory and returns it.
// An absent, empty, unreadable or undecodable value yields the default.
func (v *Value[T]) Load(ctx context.Context) T {
	loaded := v.read(ctx)

	v.mu.Lock()
	v.current = loaded
	v.mu.Unlock()

	return loaded
}

func (v *Value[T]) read(ctx context.Context) T {
	logger := contextutil.LoggerFromContext(ctx)

	raw, ok, err := v.store.Get(ctx, v.key)
	if err != nil {
		logger.ErrorContext(ctx, "error reading stored value", "key", v.key, "error", err)
		return v.def
	}
	if !ok || raw == "" {
		logger.DebugContext(ctx, "no stored value, using default", "key", v.key)
		return v.def
	}

	var decoded T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		logger.ErrorContext(ctx, "error decoding stored value", "key", v.key, "error", err)
		return v.def
	}
	return decoded
}

// Get returns the in-memory value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the value and writes it through to the substrate.
func (v *Value[T]) Set(ctx context.Context, value T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = value
	v.write(ctx, value)
}

// Update replaces the value with fn applied to the current value and writes it through.
// fn runs under the value's lock and must not call back into v.
func (v *Value[T]) Update(ctx context.Context, fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := fn(v.current)
	v.current = next
	v.write(ctx, next)
	return next
}

// Modify is Update for changes that may not apply. fn reports whether it changed
// anything; when it did not, the value is left as it was and nothing is written.
func (v *Value[T]) Modify(ctx context.Context, fn func(T) (T, bool)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	next, changed := fn(v.current)
	if !changed {
		return false
	}
	v.current = next
	v.write(ctx, next)
	return true
}

// Reset restores the default and removes the stored copy. Unlike writes,
// a failed delete is returned: the stored copy would come back on the next Load.
func (v *Value[T]) Reset(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = v.def
	if err := v.store.Delete(ctx, v.key); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "error clearing stored value", "key", v.key, "error", err)
		return fmt.Errorf("failed to clear %s: %w", v.key, err)
	}
	return nil
}

// write must be called with mu held so writes reach the substrate in update order.
func (v *Value[T]) write(ctx context.Context, value T) {
	logger := contextutil.LoggerFromContext(ctx)

	encoded, err := json.Marshal(value)
	if err != nil {
		logger.ErrorContext(ctx, "error encoding value", "key", v.key, "error", err)
		return
	}
	if err := v.store.Set(ctx, v.key, string(encoded)); err != nil {
		logger.ErrorContext(ctx, "error setting stored value", "key", v.key, "error", err)
	}
}
