// Package fetch drives the film-details request lifecycle.
//
// # States
//
// A Controller is always in exactly one State:
//
//	Pending ──> Ready(ViewModel)
//	   │
//	   └──────> Failed(message)
//
// Pending is the initial state and the state every activation starts in.
// Ready and Failed are terminal: once reached, nothing changes until the next
// Activate.
//
// # Activations
//
// Activate bumps the controller's generation, moves it to Pending, and
// returns an Activation. Run on that Activation issues the single outbound
// request and blocks until it resolves; that call is the only suspension
// point. When the request returns, its outcome is applied only if no newer
// activation has started in the meantime. A slow response for an old locator
// therefore never replaces the state of a newer one.
//
// In the TUI, Run is executed inside a tea.Cmd so the update loop never
// blocks; one-shot callers use Fetch.
//
// # Failures
//
// Every error from the backend ends the current activation in Failed with a
// message beginning "Failed to fetch movie data". Status errors carry the
// numeric code. Each failure is also written once to the logger at error level.
// Nothing is retried; a new attempt needs a new activation.
//
// # Limitations
//
// The controller adds no timeout of its own. A request that never answers
// leaves the controller in Pending until the caller's context is cancelled or
// a newer activation supersedes it.
package fetch
