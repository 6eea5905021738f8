package config

type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	White Color = "white"
	None  Color = ""
)

const (
	MinPosition = 0
	MaxPosition = 12

	// WheelSize is the number of equally likely pockets on the wheel.
	WheelSize = MaxPosition - MinPosition + 1
)

var (
	RedPositions   = map[int]bool{1: true, 3: true, 5: true, 8: true, 10: true, 12: true}
	BlackPositions = map[int]bool{2: true, 4: true, 6: true, 7: true, 9: true, 11: true}
)

// ColorOf derives the pocket color from its position. Position 0 is the
// single white pocket; anything outside the wheel maps to None.
func ColorOf(position int) Color {
	switch {
	case position == 0:
		return White
	case RedPositions[position]:
		return Red
	case BlackPositions[position]:
		return Black
	default:
		return None
	}
}
