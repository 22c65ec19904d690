package squares

import (
	"fmt"
	"strconv"

	"github.com/lox/squares/internal/randutil"
)

// Palette is the ordered set of colors handed out to new players.
var Palette = []string{
	"#E63946",
	"#1D3557",
	"#2A9D8F",
	"#E9C46A",
	"#F4A261",
	"#264653",
	"#6A0572",
	"#AB83A1",
	"#D62828",
	"#457B9D",
	"#F77F00",
	"#FCBF49",
	"#3A86A7",
	"#8338EC",
	"#FF006E",
	"#06D6A0",
	"#118AB2",
	"#EF476F",
	"#073B4C",
	"#7209B7",
	"#B5179E",
	"#4CC9F0",
}

// NextColor returns the first palette color no player uses. Once the palette
// is exhausted it synthesizes a mid-range color, each channel in [30, 229].
func NextColor(players []Player, rng randutil.Source) string {
	used := make(map[string]bool, len(players))
	for _, p := range players {
		used[p.Color] = true
	}
	for _, c := range Palette {
		if !used[c] {
			return c
		}
	}
	r := rng.IntN(200) + 30
	g := rng.IntN(200) + 30
	b := rng.IntN(200) + 30
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// ContrastColor picks black or white text for a #rrggbb background.
// Malformed colors get white.
func ContrastColor(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return "white"
	}
	r, errR := strconv.ParseUint(hex[1:3], 16, 8)
	g, errG := strconv.ParseUint(hex[3:5], 16, 8)
	b, errB := strconv.ParseUint(hex[5:7], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return "white"
	}
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance > 0.5 {
		return "black"
	}
	return "white"
}
