package core

// Color represents a foreground or background color for a screen cell.
// Values are platform-neutral; the TUI layer maps them to ANSI 256 codes.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	// Zone backgrounds
	ColorSky
	ColorSmog
	ColorLoam
	ColorRootBrown
	ColorDeepWater
)
