package cart

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

const (
	LogoSize   = 48
	LogoWidth  = 48 // pixels
	LogoHeight = 8

	logoStart = 0x0104
	logoEnd   = logoStart + LogoSize
)

// NintendoLogo is the bitmap the boot ROM compares against 0x0104-0x0133.
var NintendoLogo = [LogoSize]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// nintendoLogoHex is NintendoLogo as rendered by LogoHex.
const nintendoLogoHex = "CE ED 66 66 CC 0D 00 0B 03 73 00 83 00 0C 00 0D " +
	"00 08 11 1F 88 89 00 0E DC CC 6E E6 DD DD D9 99 " +
	"BB BB 67 63 6E 0E EC CC DD DC 99 9F BB B9 33 3E"

// LogoHex renders logo as uppercase hex pairs separated by single spaces.
func LogoHex(logo [LogoSize]byte) string {
	var sb strings.Builder
	sb.Grow(LogoSize * 3)
	for i, b := range logo {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// ParseLogoHex is the inverse of LogoHex. It accepts any whitespace between
// pairs and either letter case.
func ParseLogoHex(s string) ([LogoSize]byte, error) {
	var logo [LogoSize]byte
	fields := strings.Fields(s)
	if len(fields) != LogoSize {
		return logo, fmt.Errorf("logo hex: got %d bytes, want %d", len(fields), LogoSize)
	}
	for i, f := range fields {
		if len(f) != 2 {
			return logo, fmt.Errorf("logo hex: byte %d: %q is not a hex pair", i, f)
		}
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return logo, fmt.Errorf("logo hex: byte %d: %w", i, err)
		}
		logo[i] = byte(v)
	}
	return logo, nil
}

// LogoPixels expands the logo into its 48x8 boot screen bitmap. Each byte
// holds two 4-pixel rows (high nibble first), consecutive byte pairs form a
// 4x4 block, and the second 24 bytes hold the bottom half.
func LogoPixels(logo [LogoSize]byte) [LogoHeight][LogoWidth]bool {
	var px [LogoHeight][LogoWidth]bool
	for i, b := range logo {
		half := i / 24 // 0 top, 1 bottom
		block := (i % 24) / 2
		row := half*4 + (i%2)*2
		x0 := block * 4
		for n := 0; n < 2; n++ {
			nibble := b >> (4 * (1 - n)) & 0x0F
			for bit := 0; bit < 4; bit++ {
				px[row+n][x0+bit] = nibble&(0x08>>bit) != 0
			}
		}
	}
	return px
}

var logoPalette = color.Palette{
	color.RGBA{0xE0, 0xF8, 0xD0, 0xFF}, // off
	color.RGBA{0x08, 0x18, 0x20, 0xFF}, // on
}

// LogoImage draws the logo bitmap with every pixel enlarged to scale x scale.
func LogoImage(logo [LogoSize]byte, scale int) *image.Paletted {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewPaletted(image.Rect(0, 0, LogoWidth*scale, LogoHeight*scale), logoPalette)
	px := LogoPixels(logo)
	for y := 0; y < LogoHeight; y++ {
		for x := 0; x < LogoWidth; x++ {
			if !px[y][x] {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(x*scale+dx, y*scale+dy, 1)
				}
			}
		}
	}
	return img
}
