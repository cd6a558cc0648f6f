package artwork

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// PlaceholderHues returns the two gradient hues for a title and artist.
// Only the lengths count, so the result is stable for a given pair.
func PlaceholderHues(title, artist string) (float64, float64) {
	hue := (utf8.RuneCountInString(title)*19 + utf8.RuneCountInString(artist)*13) % 360
	return float64(hue), float64((hue + 80) % 360)
}

// Placeholder returns an SVG data URI with a two-colour diagonal gradient
// derived from title and artist.
func Placeholder(title, artist string) string {
	h1, h2 := PlaceholderHues(title, artist)
	from := colorful.Hsl(h1, 0.70, 0.45).Clamped().Hex()
	to := colorful.Hsl(h2, 0.65, 0.30).Clamped().Hex()

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="600" height="600">`+
		`<defs><linearGradient id="g" x1="0" y1="0" x2="1" y2="1">`+
		`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/>`+
		`</linearGradient></defs><rect width="600" height="600" fill="url(#g)"/></svg>`, from, to)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// IsPlaceholder reports whether url was produced by Placeholder.
func IsPlaceholder(url string) bool {
	const prefix = "data:image/svg+xml;base64,"
	return len(url) >= len(prefix) && url[:len(prefix)] == prefix
}
