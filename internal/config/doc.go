// Package config loads Filmcard's configuration.
//
// # Sources
//
// Load reads a TOML file (default ~/.config/filmcard/config.toml) and then
// applies environment overrides. A missing file is not an error; every field
// has a default. Empty or whitespace-only values also fall back to defaults.
//
// # TOML Format
//
//	api_url = "127.0.0.1:8000"
//	endpoint = "/api/movie"
//	request_timeout = "30s"
//	log_path = "~/.local/state/filmcard/filmcard.log"
//	log_level = "info"
//
// request_timeout is a Go duration string. When omitted, requests are not
// bounded by a client timeout.
//
// # Environment
//
//   - FILMCARD_API_URL
//   - FILMCARD_ENDPOINT
//   - FILMCARD_LOG_PATH
//   - FILMCARD_LOG_LEVEL
//
// # Path Expansion
//
// The config path and log_path accept a leading ~ and relative paths; both
// are resolved to absolute paths.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML ("parse config"),
// invalid durations and home directory lookup failures.
package config
