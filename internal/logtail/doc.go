// Package logtail reads the tail of Filmcard's diagnostic log for display in
// the TUI.
//
// # Reading
//
// Read keeps a ring buffer of maxLines and scans the file once, so memory is
// O(maxLines) regardless of file size. Blank lines are skipped. A missing file
// is not an error; it simply means nothing has been logged yet.
//
//	entries, err := logtail.Read(cfg.LogPath, 200)
//
// # Parsing
//
// Entries written by log/slog's text handler are split into time, level,
// message and the remaining attributes:
//
//	time=2026-10-17T09:00:00Z level=ERROR msg="film fetch failed" kind=status
//
// Quoted values are unquoted. Lines in any other format (a panic trace, for
// example) are returned with Message and Raw set to the whole line.
package logtail
