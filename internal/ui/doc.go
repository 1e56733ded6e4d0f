// Package ui contains the Bubble Tea program that drives an interactive query
// session over a Markdown document. The Model type focuses on message
// orchestration, while dedicated helpers own input, navigation, rendering,
// and query bookkeeping.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, query dispatch and results, clipboard outcomes,
//     file reloads).
//   - Key presses are routed by mode (normal, query, tree, help). Query
//     editing lives in input.go; every edit that changes the text submits the
//     buffer to the query pipeline.
//
// State ownership:
//   - Result list, tree, and query input state live in internal/ui/state.
//   - The query.Pipeline stamps every submission with a generation. Results
//     of superseded generations are dropped in handleResultMsg, so a slow
//     evaluation never overwrites a newer one.
//   - Clipboard export runs off the update loop through the command bus in
//     internal/ui/command.
//
// Backend interactions:
//   - With file watching enabled, a backend.Watcher streams reloaded
//     documents; applyBackendEvent swaps the document, resets tree state and
//     evaluates the active query again.
package ui
