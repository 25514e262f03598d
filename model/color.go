package model

import "fmt"

// HasColor reports whether a packed 0xRRGGBB color is an explicit color.
// Zero is "no explicit color": the emitter inherits the target default.
func HasColor(packed int) bool {
	return packed != 0
}

// RGB unpacks a 0xRRGGBB color into its components.
func RGB(packed int) (r, g, b uint8) {
	return uint8(packed >> 16 & 0xFF), uint8(packed >> 8 & 0xFF), uint8(packed & 0xFF)
}

// HexRGB formats a packed color as an uppercase RRGGBB hex string, the
// form OOXML color attributes expect.
func HexRGB(packed int) string {
	return fmt.Sprintf("%06X", packed&0xFFFFFF)
}
