package eligibility

import (
	"fmt"
	"testing"
	"time"

	"virtualconf/internal/domain"

	"github.com/stretchr/testify/assert"
)

const viewer = "ada@example.com"

func at(hour int) time.Time {
	return time.Date(2025, 3, 1, hour, 0, 0, 0, time.UTC)
}

func participants(n int) []domain.Participant {
	out := make([]domain.Participant, n)
	for i := range out {
		out[i] = domain.Participant{ID: fmt.Sprintf("p%d", i), Email: fmt.Sprintf("p%d@example.com", i)}
	}
	return out
}

func newTalk(slug string, hour int, capacity domain.Capacity, n int) *domain.Talk {
	return &domain.Talk{
		ID:           "id-" + slug,
		Slug:         slug,
		Start:        at(hour),
		End:          at(hour + 1),
		MaxCapacity:  capacity,
		SelfAssign:   true,
		Participants: participants(n),
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name       string
		talk       *domain.Talk
		myTalks    []domain.MinimalTalk
		wantJoin   bool
		wantFull   bool
		wantSeats  int
		wantShow   bool
		wantReason string
	}{
		{
			name:      "open seats",
			talk:      newTalk("a", 10, domain.Seats(2), 0),
			wantJoin:  true,
			wantSeats: 2,
			wantShow:  true,
		},
		{
			name:       "capacity reached",
			talk:       newTalk("a", 10, domain.Seats(2), 2),
			wantFull:   true,
			wantReason: ReasonFullyBooked,
		},
		{
			name:       "timeslot conflict with unlimited capacity",
			talk:       newTalk("a", 10, domain.Unlimited(), 0),
			myTalks:    []domain.MinimalTalk{{Slug: "b", Start: at(10)}},
			wantReason: ReasonTimeslot,
		},
		{
			name:       "second workshop",
			talk:       newTalk("abracademy-workshop-2", 11, domain.Unlimited(), 0),
			myTalks:    []domain.MinimalTalk{{Slug: "abracademy-workshop-1", Start: at(9)}},
			wantReason: ReasonWorkshop,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.talk, viewer, tt.myTalks)
			assert.Equal(t, tt.wantJoin, got.IsJoinable)
			assert.Equal(t, tt.wantJoin, IsJoinable(tt.talk, viewer, tt.myTalks))
			assert.Equal(t, tt.wantFull, got.IsFullyBooked)
			assert.Equal(t, tt.wantSeats, got.RemainingSeats)
			assert.Equal(t, tt.wantShow, got.ShowRemainingSeats)
			assert.Equal(t, tt.wantReason, got.BlockedReason)
			assert.False(t, got.AlreadyBooked)
		})
	}
}

func TestUnlimitedCapacityNeverFull(t *testing.T) {
	for _, n := range []int{0, 1, 50, 1000} {
		talk := newTalk("a", 10, domain.Unlimited(), n)
		got := Evaluate(talk, viewer, nil)
		assert.False(t, got.IsFullyBooked, "participants=%d", n)
		assert.False(t, got.ShowRemainingSeats, "participants=%d", n)
		assert.True(t, got.IsJoinable, "participants=%d", n)
	}
}

func TestLimitedCapacityReachedOrExceeded(t *testing.T) {
	for capacity := 1; capacity <= 5; capacity++ {
		for n := capacity; n <= capacity+2; n++ {
			talk := newTalk("a", 10, domain.Seats(capacity), n)
			got := Evaluate(talk, viewer, nil)
			assert.True(t, got.IsFullyBooked, "capacity=%d participants=%d", capacity, n)
			assert.False(t, got.IsJoinable, "capacity=%d participants=%d", capacity, n)
		}
	}
}

func TestInvalidCapacityIsNotEnforced(t *testing.T) {
	talk := newTalk("a", 10, domain.Capacity{}, 10)
	got := Evaluate(talk, viewer, nil)
	assert.False(t, got.IsFullyBooked)
	assert.False(t, got.ShowRemainingSeats)
	assert.True(t, got.IsJoinable)
}

func TestSameStartConflicts(t *testing.T) {
	first := newTalk("first", 10, domain.Unlimited(), 0)
	second := newTalk("second", 10, domain.Unlimited(), 0)
	booked := []domain.MinimalTalk{first.Minimal()}

	assert.False(t, TimeslotAvailable(booked, second))
	assert.False(t, IsJoinable(second, viewer, booked))
}

func TestSameInstantDifferentZoneConflicts(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	talk := newTalk("a", 10, domain.Unlimited(), 0)
	booked := []domain.MinimalTalk{{Slug: "b", Start: talk.Start.In(madrid)}}
	assert.False(t, TimeslotAvailable(booked, talk))
}

func TestBackToBackDoesNotConflict(t *testing.T) {
	talk := newTalk("a", 11, domain.Unlimited(), 0)
	booked := []domain.MinimalTalk{{Slug: "b", Start: at(10), End: at(11)}}
	assert.True(t, TimeslotAvailable(booked, talk))
	assert.True(t, IsJoinable(talk, viewer, booked))
}

func TestWorkshopAllowed(t *testing.T) {
	workshop := newTalk("intro-abracademy-workshop", 15, domain.Unlimited(), 0)
	plain := newTalk("keynote", 15, domain.Unlimited(), 0)
	otherWorkshop := []domain.MinimalTalk{{Slug: "abracademy-workshop-advanced", Start: at(9)}}

	assert.False(t, WorkshopAllowed(otherWorkshop, workshop))
	assert.True(t, WorkshopAllowed(otherWorkshop, plain))
	assert.True(t, WorkshopAllowed(nil, workshop))
}

func TestSelfAssignDisabled(t *testing.T) {
	talk := newTalk("a", 10, domain.Unlimited(), 0)
	talk.SelfAssign = false

	got := Evaluate(talk, viewer, nil)
	assert.False(t, got.IsJoinable)
	assert.Equal(t, ReasonNoSelfAssign, got.BlockedReason)
}

func TestAlreadyBooked(t *testing.T) {
	byEmail := newTalk("a", 10, domain.Seats(2), 1)
	byEmail.Participants = append(byEmail.Participants, domain.Participant{Email: viewer})

	got := Evaluate(byEmail, viewer, nil)
	assert.True(t, got.AlreadyBooked)
	assert.False(t, got.IsJoinable)
	assert.True(t, got.IsCancellable)
	assert.False(t, got.IsFullyBooked)
	assert.False(t, got.ShowRemainingSeats)
	assert.Empty(t, got.BlockedReason)

	bySlug := newTalk("b", 12, domain.Unlimited(), 0)
	bySlug.SelfAssign = false
	got = Evaluate(bySlug, viewer, []domain.MinimalTalk{bySlug.Minimal()})
	assert.True(t, got.AlreadyBooked)
	assert.False(t, got.IsCancellable)
}

func TestIsParticipating_IgnoresCase(t *testing.T) {
	list := []domain.Participant{{Email: "Ada@Example.com"}}
	assert.True(t, IsParticipating(list, "Ada@Example.com"))
	assert.True(t, IsParticipating(list, "ada@example.com"))
	assert.False(t, IsParticipating(list, "bob@example.com"))

	talk := newTalk("a", 10, domain.Seats(2), 0)
	talk.Participants = list
	got := Evaluate(talk, viewer, nil)
	assert.True(t, got.AlreadyBooked)
	assert.False(t, got.IsJoinable)
}

func TestIsParticipating_EmptyEmail(t *testing.T) {
	assert.False(t, IsParticipating([]domain.Participant{{Email: ""}}, ""))
}

func TestRemainingSeats(t *testing.T) {
	talk := newTalk("a", 10, domain.Seats(5), 0)

	n, show := RemainingSeats(talk, 3, false)
	assert.Equal(t, 2, n)
	assert.True(t, show)

	n, show = RemainingSeats(talk, 7, false)
	assert.Equal(t, 0, n)
	assert.False(t, show)

	_, show = RemainingSeats(talk, 3, true)
	assert.False(t, show)
}
