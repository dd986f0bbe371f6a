package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp parses a stored timestamp. Values with an offset keep it;
// values without one are local times in the source zone.
func ParseTimestamp(raw string, source *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	if source == nil {
		source = time.UTC
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, source); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// TimeString formats t as 24h clock time in zone.
func TimeString(t time.Time, zone *time.Location) string {
	return in(t, zone).Format("15:04")
}

// DateString formats t like "Mon Mar 01 2021" in zone.
func DateString(t time.Time, zone *time.Location) string {
	return in(t, zone).Format("Mon Jan 02 2006")
}

// LongDateString formats t like "Monday March 1st 2021" in zone.
func LongDateString(t time.Time, zone *time.Location) string {
	local := in(t, zone)
	return fmt.Sprintf("%s %s %s %d", local.Weekday(), local.Month(), ordinal(local.Day()), local.Year())
}

// DateTimeString formats t like "Mon Mar 01 2021, 10:00" in zone.
func DateTimeString(t time.Time, zone *time.Location) string {
	return in(t, zone).Format("Mon Jan 02 2006, 15:04")
}

// TimeRange formats the start and end clock times of a talk.
func TimeRange(start, end time.Time, zone *time.Location) string {
	return TimeString(start, zone) + " - " + TimeString(end, zone)
}

func in(t time.Time, zone *time.Location) time.Time {
	if zone == nil {
		return t
	}
	return t.In(zone)
}

func ordinal(day int) string {
	suffix := "th"
	switch day % 100 {
	case 11, 12, 13:
	default:
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(day) + suffix
}

// LoadZone resolves an IANA zone name, falling back to fallback when the
// name is empty or unknown.
func LoadZone(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}

// TimezoneOptions lists the zones offered to the viewer: the default, the
// viewer's current choice and the detected local zone. Duplicates and
// unknown names are dropped; order is preserved.
func TimezoneOptions(defaultZone string, others ...string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, 1+len(others))
	for _, name := range append([]string{defaultZone}, others...) {
		if name == "" || seen[name] {
			continue
		}
		if _, err := time.LoadLocation(name); err != nil {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
