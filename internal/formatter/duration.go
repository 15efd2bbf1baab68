package formatter

import (
	"fmt"
	"regexp"
	"strconv"
)

// isoDurationRe matches the PT#H#M#S subset of ISO-8601 durations used by the
// YouTube Data API. No weeks, days, or fractional seconds.
var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatISODuration converts an ISO-8601 duration ("PT1H2M10S") to a
// zero-padded "HH:MM:SS" string.
//
// The function is total: absent groups count as zero and input that does not
// match the pattern at all yields "00:00:00".
func FormatISODuration(iso string) string {
	m := isoDurationRe.FindStringSubmatch(iso)
	if m == nil {
		return "00:00:00"
	}

	hours := groupInt(m[1])
	minutes := groupInt(m[2])
	seconds := groupInt(m[3])

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatMillis converts a duration in milliseconds to "M:SS" for display.
func FormatMillis(ms int) string {
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func groupInt(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
