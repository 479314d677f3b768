package move

// Approximate RGB values for the palette indexes, for on-screen
// rendering only. The hardware interprets the index itself.
var rgb = map[uint8][3]uint8{
	ColorOff:         {0, 0, 0},
	ColorDimWhite:    {60, 60, 60},
	ColorWhite:       {200, 200, 200},
	ColorRed:         {255, 0, 0},
	ColorDimRed:      {90, 0, 0},
	ColorOrange:      {255, 100, 0},
	ColorYellow:      {255, 220, 0},
	ColorGreen:       {0, 220, 0},
	ColorDimGreen:    {0, 80, 0},
	ColorCyan:        {0, 200, 200},
	ColorBlue:        {0, 90, 255},
	ColorPurple:      {150, 0, 200},
	ColorPink:        {255, 80, 180},
	ColorBrightWhite: {255, 255, 255},
}

// ColorRGB returns an RGB approximation of a palette index. Unknown
// indexes render as a mid gray so they stay visible.
func ColorRGB(index uint8) [3]uint8 {
	if c, ok := rgb[index]; ok {
		return c
	}
	if index == 0 {
		return [3]uint8{0, 0, 0}
	}
	return [3]uint8{120, 120, 120}
}
