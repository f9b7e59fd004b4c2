// Package app provides the orchestration layer for Filmcard.
//
// # Overview
//
// Run is the composition root. It loads configuration and preferences,
// builds the backend client and the fetch controller, and then hands off to
// either the TUI or print mode.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          TOML + FILMCARD_* env
//	       ├─────> prefs.Load()           theme, last film
//	       ├─────> backend.NewClient()    POST film_url
//	       ├─────> logging.Open()         diagnostics go to the log file
//	       ├─────> fetch.NewController()  Pending → Ready | Failed
//	       │
//	       ├─ TUI ──> ui.Run()            blocks until quit
//	       │
//	       └─ print ─> Controller.Fetch() one activation
//	                  YAML/JSON to stdout, failure message returned
//
// # Locator Resolution
//
// The film to show is taken from Options.Locator, then from the last film
// successfully shown (prefs), and otherwise left absent. An absent locator
// is still sent; the backend decides what that means.
//
// # Error Handling
//
// Configuration and client setup errors are returned from Run. Fetch
// failures are not fatal in the TUI: they show as the Failed view and in the
// log. In print mode a failed fetch is returned as an error carrying the
// Failed message, so the process exits non-zero.
package app
