// Package booking keeps the viewer's booked talks ("my talks").
package booking

import (
	"context"
	"slices"

	"virtualconf/internal/cache"
	"virtualconf/internal/domain"
)

// Kind names a reducer action.
type Kind int

const (
	ActionAdd Kind = iota
	ActionRemove
	ActionReset
	ActionSet
)

// Action is one state transition. Talk is used by add and remove, Talks by set.
type Action struct {
	Kind  Kind
	Talk  domain.MinimalTalk
	Talks []domain.MinimalTalk
}

func Add(t domain.MinimalTalk) Action { return Action{Kind: ActionAdd, Talk: t} }
func Remove(t domain.MinimalTalk) Action { return Action{Kind: ActionRemove, Talk: t} }
func Reset() Action { return Action{Kind: ActionReset} }
func Set(ts []domain.MinimalTalk) Action { return Action{Kind: ActionSet, Talks: ts} }

// Reduce applies a to talks and returns the new list. The input slice is
// never modified. Add replaces an entry with the same slug and appends the
// talk at the end; remove drops every entry with the talk's slug.
func Reduce(talks []domain.MinimalTalk, a Action) []domain.MinimalTalk {
	switch a.Kind {
	case ActionAdd:
		out := withoutSlug(talks, a.Talk.Slug)
		return append(out, a.Talk)
	case ActionRemove:
		return withoutSlug(talks, a.Talk.Slug)
	case ActionReset:
		return []domain.MinimalTalk{}
	case ActionSet:
		if a.Talks == nil {
			return []domain.MinimalTalk{}
		}
		return slices.Clone(a.Talks)
	default:
		return slices.Clone(talks)
	}
}

func withoutSlug(talks []domain.MinimalTalk, slug string) []domain.MinimalTalk {
	out := make([]domain.MinimalTalk, 0, len(talks)+1)
	for _, t := range talks {
		if t.Slug != slug {
			out = append(out, t)
		}
	}
	return out
}

// Reducer persists the reduced list under the myTalks key of a session scope.
type Reducer struct {
	store *cache.Store
}

// NewReducer binds a reducer to one session's cache scope.
func NewReducer(store *cache.Store) *Reducer {
	return &Reducer{store: store}
}

// State returns the cached list. ok is false when nothing is cached or the
// entry has expired.
func (r *Reducer) State(ctx context.Context) (talks []domain.MinimalTalk, ok bool) {
	if !r.store.Get(ctx, cache.KeyMyTalks, &talks) {
		return nil, false
	}
	return talks, true
}

// Dispatch applies a to the cached list and persists the result for 24h.
func (r *Reducer) Dispatch(ctx context.Context, a Action) []domain.MinimalTalk {
	current, _ := r.State(ctx)
	next := Reduce(current, a)
	r.store.Set(ctx, cache.KeyMyTalks, next, cache.DefaultTTL)
	return next
}
