package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/switch527/coin-base/pkg/errors"
)

// unitSeconds maps the relative shorthand units to their length in seconds.
var unitSeconds = map[byte]int64{
	's': 1,
	'm': 60,
	'h': 3600,
	'd': 86400,
	'w': 604800,
}

// parseTimeParam interprets a query parameter as either an epoch-seconds
// value ("1700000000", fractions allowed) or a relative shorthand of the form
// <integer><unit> ("30m", "2d") counted back from now. An empty string yields
// the zero time so the caller's defaults apply. Anything else is rejected.
func parseTimeParam(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	if n, ok := parseShorthand(raw); ok {
		return now.Add(-time.Duration(n) * time.Second), nil
	}

	epoch, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, errors.NewErrorDetails(
			fmt.Sprintf("%q is neither an epoch value nor a relative offset", raw),
			string(errors.InvalidQueryTimeError),
			"time",
		)
	}

	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec), nil
}

func parseShorthand(raw string) (int64, bool) {
	if len(raw) < 2 {
		return 0, false
	}

	unit, ok := unitSeconds[raw[len(raw)-1]]
	if !ok {
		return 0, false
	}

	n, err := strconv.ParseInt(raw[:len(raw)-1], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}

	return n * unit, true
}
