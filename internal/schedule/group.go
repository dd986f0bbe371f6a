// Package schedule groups talks into display dates and time slots and
// formats times in the viewer's timezone.
package schedule

import (
	"slices"
	"sort"
	"time"

	"virtualconf/internal/domain"
	"virtualconf/internal/eligibility"
)

// Options controls grouping. With FilterMine a talk is kept when Email is a
// participant or its slug is in MySlugs. A nil Categories keeps every talk;
// otherwise a talk is kept only when its first category's icon is listed.
type Options struct {
	Filter     domain.ScheduleFilter
	Email      string
	MySlugs    []string
	Categories []string
	Zone       *time.Location
}

// Group sorts talks by start and buckets them by display date, then by
// display time. Dates and slots keep chronological order.
func Group(talks []*domain.Talk, opts Options) []domain.DateGroup {
	sorted := slices.Clone(talks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	mine := make(map[string]bool, len(opts.MySlugs))
	for _, s := range opts.MySlugs {
		mine[s] = true
	}
	var selected map[string]bool
	if opts.Categories != nil {
		selected = make(map[string]bool, len(opts.Categories))
		for _, c := range opts.Categories {
			selected[c] = true
		}
	}

	groups := []domain.DateGroup{}
	for _, t := range sorted {
		if opts.Filter == domain.FilterMine && !mine[t.Slug] && !eligibility.IsParticipating(t.Participants, opts.Email) {
			continue
		}
		if selected != nil {
			cat, ok := t.PrimaryCategory()
			if !ok || !selected[cat.Icon] {
				continue
			}
		}
		date := DateString(t.Start, opts.Zone)
		clock := TimeString(t.Start, opts.Zone)

		gi := slices.IndexFunc(groups, func(g domain.DateGroup) bool { return g.Date == date })
		if gi < 0 {
			groups = append(groups, domain.DateGroup{Date: date})
			gi = len(groups) - 1
		}
		g := &groups[gi]
		si := slices.IndexFunc(g.Slots, func(s domain.TimeSlot) bool { return s.Time == clock })
		if si < 0 {
			g.Slots = append(g.Slots, domain.TimeSlot{Time: clock})
			si = len(g.Slots) - 1
		}
		g.Slots[si].Talks = append(g.Slots[si].Talks, t)
	}
	return groups
}

// AllCategories returns the icon keys of every category, which is the
// default selection of the category filter.
func AllCategories(categories []*domain.Category) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == nil || slices.Contains(out, c.Icon) {
			continue
		}
		out = append(out, c.Icon)
	}
	return out
}
