// Package calendar exports booked talks as an iCalendar feed.
package calendar

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"virtualconf/internal/domain"
)

const productID = "-//virtualconf//my talks//EN"

// Exporter renders talks as VEVENTs.
type Exporter struct {
	now func() time.Time
}

func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// Export returns an ICS document with one event per talk. Times are UTC.
// The conference link, when present, is the event URL and location.
func (e *Exporter) Export(talks []*domain.Talk, calendarName string) []byte {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if calendarName != "" {
		cal.SetName(calendarName)
	}

	stamp := e.now().UTC()
	for _, t := range talks {
		uid := t.ID
		if uid == "" {
			uid = t.Slug
		}
		ev := cal.AddEvent(uid + "@virtualconf")
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(t.Start.UTC())
		ev.SetEndAt(t.End.UTC())
		ev.SetSummary(t.Title)
		if desc := description(t); desc != "" {
			ev.SetDescription(desc)
		}
		if t.ConferenceLink != "" {
			ev.SetURL(t.ConferenceLink)
			ev.SetLocation(t.ConferenceLink)
		}
	}
	return []byte(cal.Serialize())
}

func description(t *domain.Talk) string {
	names := make([]string, 0, len(t.Speakers))
	for _, s := range t.Speakers {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "With " + strings.Join(names, ", ")
}
