package costengine

import (
	"regexp"
	"strconv"
)

var timelineHoursPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*-?\s*(?:hours?|hrs?)\b`)

// ParseTimelineHours extracts an explicit hour count such as "8 hours" or
// "a 12-hour job" from a free-form timeline. Zero hours count as absent.
func ParseTimelineHours(timeline string) (float64, bool) {
	m := timelineHoursPattern.FindStringSubmatch(timeline)
	if m == nil {
		return 0, false
	}
	hours, err := strconv.ParseFloat(m[1], 64)
	if err != nil || hours <= 0 {
		return 0, false
	}
	return hours, true
}
