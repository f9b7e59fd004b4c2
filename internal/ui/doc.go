// Package ui implements Filmcard's terminal interface with Bubble Tea.
//
// # Overview
//
// The UI is the presentation side of the fetch controller. It never decides
// what state the film is in; after every activation event it reads
// Controller.State and renders that:
//
//   - Pending: a spinner and "Fetching film details..."
//   - Failed: an error panel carrying the state's message
//   - Ready: a scrollable viewport with title, year, director, genre chips,
//     synopsis, review and one bar per aspect
//
// # Activations
//
// activateCmd calls Controller.Activate synchronously, so the controller is
// Pending before the command is even scheduled, then returns two commands:
// one that announces the activation and one that runs the request off the
// update loop. The result message only tells the model to re-read the
// controller; a superseded request therefore cannot change what is on screen.
//
// # Key Bindings
//
//	r        reload the current film (new activation)
//	o, /     enter a different film URL
//	d        toggle the diagnostics pane (tail of the log file)
//	T        cycle theme (saved to prefs)
//	j/k      scroll the film card
//	q        quit
//
// # Files
//
//   - app.go: Model, Update, commands and messages
//   - view.go: header, body and footer rendering per phase
//   - render.go: film card and diagnostics rendering helpers
//   - theme.go: color palettes and Lipgloss styles
package ui
