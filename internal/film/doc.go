// Package film defines the film-details payload returned by the backend and
// the normalized view model the UI renders.
//
// # Normalization boundary
//
// The backend payload is loosely shaped: every field may be missing, year may
// arrive quoted or as a bare number, and genres come as a single comma-joined
// string. Normalize is the only place that deals with those gaps. Downstream
// code receives a ViewModel whose slices are never nil and whose review always
// has a value:
//
//   - Genres: split on ",", trimmed, blanks dropped, first MaxGenres kept
//   - Review: the summary, or DefaultReview when the summary is empty
//   - Aspects: passed through as the raw JSON elements the backend sent
//   - Everything else: copied as-is, empty when absent
//
// Normalize has no side effects and returns identical output for identical
// input, so it is tested directly without fakes.
package film
