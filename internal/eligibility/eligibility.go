// Package eligibility decides whether a viewer may join or drop a talk.
//
// All functions are pure. The talk's participant list is the capacity
// source of truth; the viewer's cached bookings are only used for the
// timeslot and workshop rules.
package eligibility

import (
	"strings"

	"virtualconf/internal/domain"
)

// Reasons a join is blocked, in evaluation order.
const (
	ReasonAlreadyBooked = "you already joined this talk"
	ReasonFullyBooked   = "this talk is fully booked"
	ReasonNoSelfAssign  = "participants for this talk are assigned by the organizers"
	ReasonTimeslot      = "you already joined another talk at this time"
	ReasonWorkshop      = "you can join only one workshop"
)

// IsParticipating reports whether email is in the participant list. Case is
// ignored.
func IsParticipating(participants []domain.Participant, email string) bool {
	if email == "" {
		return false
	}
	for _, p := range participants {
		if strings.EqualFold(p.Email, email) {
			return true
		}
	}
	return false
}

// BookedBySlug reports whether slug is among the viewer's bookings.
func BookedBySlug(myTalks []domain.MinimalTalk, slug string) bool {
	for _, t := range myTalks {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

// AlreadyBooked combines the participant and cached-bookings views.
func AlreadyBooked(talk *domain.Talk, email string, myTalks []domain.MinimalTalk) bool {
	return IsParticipating(talk.Participants, email) || BookedBySlug(myTalks, talk.Slug)
}

// TimeslotAvailable is false when a booked talk starts at the same instant.
// Only identical starts conflict; back-to-back talks do not.
func TimeslotAvailable(myTalks []domain.MinimalTalk, talk *domain.Talk) bool {
	for _, t := range myTalks {
		if t.Slug != talk.Slug && t.Start.Equal(talk.Start) {
			return false
		}
	}
	return true
}

// IsWorkshop reports whether slug carries the workshop marker.
func IsWorkshop(slug string) bool {
	return strings.Contains(slug, domain.WorkshopMarker)
}

// WorkshopAllowed is false when talk is a workshop and another workshop is
// already booked.
func WorkshopAllowed(myTalks []domain.MinimalTalk, talk *domain.Talk) bool {
	if !IsWorkshop(talk.Slug) {
		return true
	}
	for _, t := range myTalks {
		if t.Slug != talk.Slug && IsWorkshop(t.Slug) {
			return false
		}
	}
	return true
}

// IsFullyBooked reports whether a limited capacity has been reached by
// someone other than the viewer.
func IsFullyBooked(talk *domain.Talk, participants int, alreadyBooked bool) bool {
	return !alreadyBooked && talk.MaxCapacity.Limited() && participants >= talk.MaxCapacity.Seats
}

// RemainingSeats returns the free seats and whether the count should be
// shown. Unlimited or invalid capacities are not shown.
func RemainingSeats(talk *domain.Talk, participants int, alreadyBooked bool) (int, bool) {
	if !talk.MaxCapacity.Limited() {
		return 0, false
	}
	remaining := max(talk.MaxCapacity.Seats-participants, 0)
	return remaining, !alreadyBooked && remaining > 0
}

// IsCancellable reports whether the viewer may drop the talk themselves.
func IsCancellable(talk *domain.Talk, alreadyBooked bool) bool {
	return alreadyBooked && talk.SelfAssign
}

// IsJoinable applies every join rule.
func IsJoinable(talk *domain.Talk, email string, myTalks []domain.MinimalTalk) bool {
	return blockedReason(talk, email, myTalks) == ""
}

func blockedReason(talk *domain.Talk, email string, myTalks []domain.MinimalTalk) string {
	booked := AlreadyBooked(talk, email, myTalks)
	switch {
	case booked:
		return ReasonAlreadyBooked
	case IsFullyBooked(talk, len(talk.Participants), booked):
		return ReasonFullyBooked
	case !talk.SelfAssign:
		return ReasonNoSelfAssign
	case !TimeslotAvailable(myTalks, talk):
		return ReasonTimeslot
	case !WorkshopAllowed(myTalks, talk):
		return ReasonWorkshop
	}
	return ""
}

// Evaluate computes the viewer's full availability state for talk.
func Evaluate(talk *domain.Talk, email string, myTalks []domain.MinimalTalk) domain.Availability {
	booked := AlreadyBooked(talk, email, myTalks)
	n := len(talk.Participants)
	remaining, show := RemainingSeats(talk, n, booked)
	reason := blockedReason(talk, email, myTalks)
	if booked {
		reason = ""
	}
	return domain.Availability{
		AlreadyBooked:      booked,
		RemainingSeats:     remaining,
		ShowRemainingSeats: show,
		IsJoinable:         !booked && reason == "",
		IsCancellable:      IsCancellable(talk, booked),
		IsFullyBooked:      IsFullyBooked(talk, n, booked),
		BlockedReason:      reason,
	}
}
