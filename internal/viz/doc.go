// Package viz provides the terminal visualizer for recorded sorting traces.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [NewApp]: preset menu that opens the player
//   - [Model]: bar chart of the current step with a statistics panel
//   - Theme selection with 5 built-in color schemes
//
// Playback ticks are [TickMsg] values tagged with the player generation.
// Changing the array, size or algorithm bumps the generation, so a tick
// already in flight is dropped instead of advancing the new sequence.
//
// # Key Bindings
//
//	Space - Play/Pause
//	←/→   - Step back/forward while paused
//	R     - New array
//	A     - Next algorithm
//	[]    - Shrink/grow array
//	+/-   - Speed
//	T     - Cycle color themes
//	S     - Save trace
//	?     - Show help overlay
package viz
