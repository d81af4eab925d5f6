// Package entities defines core domain models and data structures.
package entities

// Board identifies the target board variant for a firmware build
type Board string

// Board identifiers the rp2 port is known to build for
const (
	BoardPico   Board = "RPI_PICO"
	BoardPicoW  Board = "RPI_PICO_W"
	BoardPico2  Board = "RPI_PICO2"
	BoardPico2W Board = "RPI_PICO2_W"
)

// DefaultBoard is used when no board identifier is supplied
const DefaultBoard = BoardPicoW

// KnownBoards returns the board identifiers this orchestrator has been
// exercised against. The native build system remains authoritative: an
// unknown identifier is passed through unchanged.
func KnownBoards() []Board {
	return []Board{BoardPico, BoardPicoW, BoardPico2, BoardPico2W}
}

// Known reports whether b is one of the exercised board identifiers
func (b Board) Known() bool {
	for _, known := range KnownBoards() {
		if b == known {
			return true
		}
	}
	return false
}

// String returns the board identifier as passed to the native build system
func (b Board) String() string {
	return string(b)
}
