package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Duration formats seconds compactly in the largest unit that fits,
// e.g. "45s", "2.5h", "1.1w".
func Duration(s int64) string {
	neg := s < 0
	if neg {
		s = -s
	}
	var out string
	switch {
	case s > 604800:
		out = fmt.Sprintf("%.1fw", float64(s)/604800)
	case s > 86400:
		out = fmt.Sprintf("%.1fd", float64(s)/86400)
	case s > 3600:
		out = fmt.Sprintf("%.1fh", float64(s)/3600)
	case s > 60:
		out = fmt.Sprintf("%.1fm", float64(s)/60)
	default:
		out = fmt.Sprintf("%ds", s)
	}
	if neg {
		return "-" + out
	}
	return out
}

// Mass formats grams with an SI prefix, e.g. "1.5 kg".
func Mass(grams float64) string {
	if grams == 0 || math.IsNaN(grams) || math.IsInf(grams, 0) {
		return fmt.Sprintf("%g g", grams)
	}
	return strings.TrimSpace(humanize.SIWithDigits(grams, 2, "g"))
}
