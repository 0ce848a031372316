package vault

import (
	"strconv"
	"strings"
	"time"
)

// epochMillisThreshold splits epoch seconds from epoch milliseconds by
// magnitude: values at or above it are already milliseconds. The boundary
// corresponds to 2001-09-09 in milliseconds and 33658 AD in seconds, so no
// real-world export is ambiguous.
const epochMillisThreshold = 1e12

// timestampParser attempts one interpretation of a raw timestamp string.
type timestampParser func(string) (int64, bool)

// timestampParsers is the ordered chain of attempts: numeric epoch first
// (seconds or milliseconds by magnitude), then ISO-8601 variants from most to
// least specific. First success wins.
var timestampParsers = []timestampParser{
	parseEpoch,
	parseLayout(time.RFC3339Nano),
	parseLayout(time.RFC3339),
	parseLayout("2006-01-02T15:04:05.999999999"),
	parseLayout("2006-01-02 15:04:05"),
	parseLayout("2006-01-02"),
}

// ParseTimestamp interprets a provider's raw timestamp value as epoch
// milliseconds. It accepts integer epoch seconds, integer or fractional epoch
// milliseconds, and common ISO-8601 date/time strings. Unparsable or absent
// values yield (0, false), never an error: a missing timestamp only means the
// record sorts as oldest.
func ParseTimestamp(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	for _, parse := range timestampParsers {
		if ms, ok := parse(raw); ok {
			return ms, true
		}
	}
	return 0, false
}

func parseEpoch(raw string) (int64, bool) {
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil || num <= 0 {
		return 0, false
	}
	if num >= epochMillisThreshold {
		return int64(num), true
	}
	return int64(num * 1000), true
}

func parseLayout(layout string) timestampParser {
	return func(raw string) (int64, bool) {
		t, err := time.Parse(layout, raw)
		if err != nil {
			return 0, false
		}
		return t.UTC().UnixMilli(), true
	}
}
