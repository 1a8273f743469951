package render

import (
	"math"
	"strings"
)

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values on a log scale, one rune per value.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	logs := make([]float64, len(values))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range values {
		if v <= 0 {
			v = math.SmallestNonzeroFloat64
		}
		logs[i] = math.Log10(v)
		lo = math.Min(lo, logs[i])
		hi = math.Max(hi, logs[i])
	}

	var b strings.Builder
	for _, l := range logs {
		idx := 0
		if hi > lo {
			idx = int(math.Round((l - lo) / (hi - lo) * float64(len(sparkTicks)-1)))
		}
		b.WriteRune(sparkTicks[idx])
	}
	return b.String()
}
