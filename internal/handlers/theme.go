package handlers

import (
	"encoding/json"
	"net/http"

	"robofed.org/web/internal/middleware"
	"robofed.org/web/internal/theme"
)

// ThemeToggle flips the theme and pins it as the visitor's choice.
func ThemeToggle(w http.ResponseWriter, r *http.Request) {
	themeAction(w, r, (*theme.Controller).Toggle)
}

// ThemeReset drops the visitor's choice so the system preference applies again.
func ThemeReset(w http.ResponseWriter, r *http.Request) {
	themeAction(w, r, (*theme.Controller).Reset)
}

// ThemeSystem records a change of the operating-system preference. The scheme query
// parameter is required.
func ThemeSystem(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("scheme") == "" {
		middleware.WriteError(w, r, http.StatusBadRequest, "scheme is required")
		return
	}
	themeAction(w, r, (*theme.Controller).Appearance)
}

// themeAction syncs the controller with the scheme the client reports, runs action and
// answers with the resulting appearance. Cookies are written by the controller's store.
func themeAction(w http.ResponseWriter, r *http.Request, action func(*theme.Controller) theme.Appearance) {
	c := middleware.ThemeFromContext(r.Context())
	if c == nil {
		middleware.WriteError(w, r, http.StatusInternalServerError, "theme not initialized")
		return
	}
	if s := r.URL.Query().Get("scheme"); s != "" {
		t, err := theme.Parse(s)
		if err != nil {
			middleware.WriteError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		c.SystemChanged(t)
	}
	a := action(c)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(a)
}
