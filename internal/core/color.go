package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors.
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
)

// spectrum orders colors from cool to hot.
var spectrum = []Color{
	ColorBlue,
	ColorCyan,
	ColorGreen,
	ColorBrightGreen,
	ColorYellow,
	ColorOrange,
	ColorRed,
	ColorMagenta,
	ColorBrightMagenta,
	ColorBrightWhite,
}

// Heat maps v in [1, max] onto the spectrum, cool for small values and hot
// for values near max. Values below 1 map to gray.
func Heat(v, max int) Color {
	if v < 1 || max < 1 {
		return ColorGray
	}
	if v > max {
		v = max
	}
	if max == 1 {
		return spectrum[len(spectrum)-1]
	}
	idx := (v - 1) * (len(spectrum) - 1) / (max - 1)
	return spectrum[idx]
}
