package core

// Color is a foreground color for a screen cell. The platform layer maps
// each value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorGray
	ColorBrightYellow
	ColorBrightWhite

	// Piece palette.
	ColorAqua
	ColorBlueViolet
	ColorDarkGreen
	ColorGold
	ColorCrimson
	ColorBeige
	ColorBurlywood
)
