package domain

import "context"

// CategoryStageSlug is the stage whose schedule supports filtering by category.
const CategoryStageSlug = "crystal-ball"

// ScheduleFilter selects all sessions or only the viewer's.
type ScheduleFilter string

const (
	FilterAll  ScheduleFilter = "all"
	FilterMine ScheduleFilter = "mine"
)

// ScheduleQuery holds the viewer's schedule options. A nil Categories means
// every category is selected.
type ScheduleQuery struct {
	Filter     ScheduleFilter
	Categories []string
	Stage      string
}

// TimeSlot is the talks starting at the same display time.
type TimeSlot struct {
	Time  string  `json:"time"`
	Talks []*Talk `json:"talks"`
}

// DateGroup is one display date of a stage schedule.
type DateGroup struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

// StageSchedule is one stage's grouped schedule with the viewer's
// availability per talk slug.
type StageSchedule struct {
	Name               string                  `json:"name"`
	Slug               string                  `json:"slug"`
	Description        string                  `json:"description,omitempty"`
	Live               bool                    `json:"live"`
	WarmupExercises    []Exercise              `json:"warmup_exercises,omitempty"`
	Dates              []DateGroup             `json:"dates"`
	Availability       map[string]Availability `json:"availability"`
	Categories         []*Category             `json:"categories,omitempty"`
	SelectedCategories []string                `json:"selected_categories,omitempty"`
}

// ScheduleView is the rendered schedule page.
type ScheduleView struct {
	Timezone string          `json:"timezone"`
	Filter   ScheduleFilter  `json:"filter"`
	Stages   []StageSchedule `json:"stages"`
}

// WarmupStage is a stage that is not live yet, with its warm-up exercises.
type WarmupStage struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Exercises   []Exercise `json:"exercises"`
}

// TalkService exposes the schedule and join/drop actions.
type TalkService interface {
	Schedule(ctx context.Context, s *Session, q ScheduleQuery) (*ScheduleView, error)
	Talk(ctx context.Context, s *Session, slug string) (*TalkWithAvailability, error)
	// Warmup lists the stages that are not live and have warm-up exercises.
	Warmup(ctx context.Context) ([]WarmupStage, error)
	// Join books the talk for the session's participant. A nil session yields ErrUnauthenticated.
	Join(ctx context.Context, s *Session, slug string) (*JoinResult, error)
	// Drop removes the session's participant from the talk. A nil session yields ErrUnauthenticated.
	Drop(ctx context.Context, s *Session, slug string) error
	MyTalks(ctx context.Context, s *Session) ([]MinimalTalk, error)
	Calendar(ctx context.Context, s *Session) ([]byte, error)
}
