package modifier

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var (
	reTimeCost = regexp.MustCompile(`^(?:\d+[wdhms])+$`)
	reTimePart = regexp.MustCompile(`(\d+)([wdhms])`)
)

var unitSeconds = map[string]int64{
	"w": 7 * 24 * 3600,
	"d": 24 * 3600,
	"h": 3600,
	"m": 60,
	"s": 1,
}

// ParseTimeCost converts strings such as "3d" or "1h30m" into seconds.
func ParseTimeCost(s string) (int64, error) {
	if !reTimeCost.MatchString(s) {
		return 0, fmt.Errorf("time cost %q not in expected format `\\d+[wdhms]`", s)
	}
	var total int64
	for _, part := range reTimePart.FindAllStringSubmatch(s, -1) {
		n, err := strconv.ParseInt(part[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("time cost %q: %w", s, err)
		}
		unit := unitSeconds[part[2]]
		if n > (math.MaxInt64-total)/unit {
			return 0, fmt.Errorf("time cost %q is too long", s)
		}
		total += n * unit
	}
	return total, nil
}
