package handlers

import (
	"context"
	"net/http"
)

// Flag is a persisted boolean preference.
type Flag interface {
	Get() bool
	Set(ctx context.Context, v bool)
}

// PreferencesHandler serves /api/preferences.
type PreferencesHandler struct {
	darkMode Flag
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(darkMode Flag) *PreferencesHandler {
	return &PreferencesHandler{darkMode: darkMode}
}

// Preferences are the user's display settings.
type Preferences struct {
	DarkMode *bool `json:"darkMode"`
}

// Get returns the stored preferences.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	dark := h.darkMode.Get()
	writeJSON(w, r.Context(), http.StatusOK, Preferences{DarkMode: &dark})
}

// Update stores the preferences present in the body.
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req Preferences
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DarkMode != nil {
		h.darkMode.Set(r.Context(), *req.DarkMode)
	}
	h.Get(w, r)
}
