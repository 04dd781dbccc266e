// Package ui hosts a simulation run inside a Bubble Tea program. The package
// is deliberately thin: the simulation owns every screen, and the model only
// translates terminal events into simulation calls and paints the text the
// simulation produces.
//
// Message flow:
//   - Key presses are mapped onto the input pipeline: printable runes are
//     pushed, Backspace erases, Enter submits, and ctrl+c quits.
//   - TickMsg drives the simulation. Each tick asks the day gate whether a
//     simulation day has passed and calls Sim.Tick once. When the window
//     stack empties the program quits.
//   - WindowSizeMsg updates the paint area unless a fixed size was configured.
//
// Messages are routed through a typed handler registry so each tea.Msg is
// handled by one focused function.
package ui
