package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"virtualconf/internal/booking"
	"virtualconf/internal/cache"
	"virtualconf/internal/catalog"
	"virtualconf/internal/domain"
	"virtualconf/internal/eligibility"
	"virtualconf/internal/schedule"
)

// ReasonNotBooked is returned when dropping a talk the viewer has not joined.
const ReasonNotBooked = "you have not joined this talk"

// Snapshots provides the cached published catalog.
type Snapshots interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// CalendarExporter renders talks as an iCalendar document.
type CalendarExporter interface {
	Export(talks []*domain.Talk, calendarName string) []byte
}

type talkService struct {
	catalog  Snapshots
	talks    domain.TalkStore
	remote   domain.RemoteFunctions
	store    *cache.Store
	prefs    domain.PreferenceService
	exporter CalendarExporter
	now      func() time.Time
	logger   *slog.Logger

	// inflight holds the session ids with a join or drop under way.
	inflight sync.Map
}

func NewTalkService(
	snapshots Snapshots,
	talks domain.TalkStore,
	remote domain.RemoteFunctions,
	store *cache.Store,
	prefs domain.PreferenceService,
	exporter CalendarExporter,
	logger *slog.Logger,
) domain.TalkService {
	return &talkService{
		catalog:  snapshots,
		talks:    talks,
		remote:   remote,
		store:    store,
		prefs:    prefs,
		exporter: exporter,
		now:      time.Now,
		logger:   orDiscard(logger),
	}
}

func (s *talkService) reducer(sess *domain.Session) *booking.Reducer {
	return booking.NewReducer(s.store.Scope(sess.SessionID))
}

// myTalks returns the cached booking list, hydrating it from the store when
// absent or expired.
func (s *talkService) myTalks(ctx context.Context, sess *domain.Session) ([]domain.MinimalTalk, error) {
	r := s.reducer(sess)
	if talks, ok := r.State(ctx); ok {
		return talks, nil
	}
	remote, err := s.remote.MyTalks(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("load my talks: %w", err)
	}
	return r.Dispatch(ctx, booking.Set(remote)), nil
}

func (s *talkService) zone(ctx context.Context, sess *domain.Session) *time.Location {
	return schedule.LoadZone(s.prefs.Timezone(ctx, sess), time.UTC)
}

func (s *talkService) Schedule(ctx context.Context, sess *domain.Session, q domain.ScheduleQuery) (*domain.ScheduleView, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if q.Filter == "" {
		q.Filter = domain.FilterAll
	}

	var mine []domain.MinimalTalk
	var slugs []string
	if sess != nil {
		mine, err = s.myTalks(ctx, sess)
		if err != nil {
			s.logger.WarnContext(ctx, "schedule without my talks", slog.Any("error", err))
		}
		for _, t := range mine {
			slugs = append(slugs, t.Slug)
		}
	}

	zone := s.zone(ctx, sess)
	view := &domain.ScheduleView{Timezone: zone.String(), Filter: q.Filter, Stages: []domain.StageSchedule{}}
	for _, stage := range snap.Stages {
		if stage.Slug == domain.TestStageSlug && (sess == nil || !sess.IsAdmin) {
			continue
		}
		if q.Stage != "" && q.Stage != stage.Slug {
			continue
		}

		opts := schedule.Options{Filter: q.Filter, Email: sess.Email(), MySlugs: slugs, Zone: zone}
		ss := domain.StageSchedule{
			Name:            stage.Name,
			Slug:            stage.Slug,
			Description:     stage.Description,
			Live:            stage.Live,
			WarmupExercises: stage.WarmupExercises,
			Availability:    make(map[string]domain.Availability, len(stage.Schedule)),
		}
		if stage.Slug == domain.CategoryStageSlug {
			opts.Categories = q.Categories
			ss.Categories = snap.Categories
			ss.SelectedCategories = q.Categories
			if ss.SelectedCategories == nil {
				ss.SelectedCategories = schedule.AllCategories(snap.Categories)
			}
		}
		ss.Dates = schedule.Group(stage.Schedule, opts)
		for _, t := range stage.Schedule {
			ss.Availability[t.Slug] = eligibility.Evaluate(t, sess.Email(), mine)
		}
		view.Stages = append(view.Stages, ss)
	}

	if q.Stage != "" && len(view.Stages) == 0 {
		return nil, fmt.Errorf("stage %q: %w", q.Stage, domain.ErrNotFound)
	}
	return view, nil
}

func (s *talkService) Talk(ctx context.Context, sess *domain.Session, slug string) (*domain.TalkWithAvailability, error) {
	talk, err := s.talks.GetTalkBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	var mine []domain.MinimalTalk
	if sess != nil {
		if mine, err = s.myTalks(ctx, sess); err != nil {
			s.logger.WarnContext(ctx, "talk without my talks", slog.String("slug", slug), slog.Any("error", err))
		}
	}

	now := s.now()
	return &domain.TalkWithAvailability{
		Talk:         talk,
		Availability: eligibility.Evaluate(talk, sess.Email(), mine),
		IsLive:       !now.Before(talk.Start) && now.Before(talk.End),
		TimeRange:    schedule.TimeRange(talk.Start, talk.End, s.zone(ctx, sess)),
	}, nil
}

// begin marks a join or drop as under way for the session. The returned
// func clears the mark.
func (s *talkService) begin(sess *domain.Session) (func(), error) {
	if _, busy := s.inflight.LoadOrStore(sess.SessionID, struct{}{}); busy {
		return nil, domain.ErrActionInProgress
	}
	return func() { s.inflight.Delete(sess.SessionID) }, nil
}

// prepare reads the talk fresh from the store so capacity is checked against
// the current participant list.
func (s *talkService) prepare(ctx context.Context, sess *domain.Session, slug string) (*domain.Talk, domain.Availability, error) {
	talk, err := s.talks.GetTalkBySlug(ctx, slug)
	if err != nil {
		return nil, domain.Availability{}, err
	}
	mine, err := s.myTalks(ctx, sess)
	if err != nil {
		return nil, domain.Availability{}, err
	}
	return talk, eligibility.Evaluate(talk, sess.Email(), mine), nil
}

func (s *talkService) Join(ctx context.Context, sess *domain.Session, slug string) (*domain.JoinResult, error) {
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	done, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	defer done()

	talk, avail, err := s.prepare(ctx, sess, slug)
	if err != nil {
		return nil, err
	}
	if !avail.IsJoinable {
		reason := avail.BlockedReason
		if avail.AlreadyBooked {
			reason = eligibility.ReasonAlreadyBooked
		}
		return nil, &domain.BlockedError{Err: domain.ErrNotJoinable, Reason: reason}
	}

	res, err := s.remote.JoinTalk(ctx, slug, sess.ID)
	if err != nil {
		return nil, err
	}
	s.reducer(sess).Dispatch(ctx, booking.Add(talk.Minimal()))
	s.logger.InfoContext(ctx, "talk joined", slog.String("slug", slug), slog.String("user_id", sess.ID))
	return res, nil
}

func (s *talkService) Drop(ctx context.Context, sess *domain.Session, slug string) error {
	if sess == nil {
		return domain.ErrUnauthenticated
	}
	done, err := s.begin(sess)
	if err != nil {
		return err
	}
	defer done()

	talk, avail, err := s.prepare(ctx, sess, slug)
	if err != nil {
		return err
	}
	if !avail.IsCancellable {
		reason := ReasonNotBooked
		if avail.AlreadyBooked {
			reason = eligibility.ReasonNoSelfAssign
		}
		return &domain.BlockedError{Err: domain.ErrNotCancellable, Reason: reason}
	}

	if err := s.remote.DropTalk(ctx, slug, sess.ID); err != nil {
		return err
	}
	s.reducer(sess).Dispatch(ctx, booking.Remove(talk.Minimal()))
	s.logger.InfoContext(ctx, "talk dropped", slog.String("slug", slug), slog.String("user_id", sess.ID))
	return nil
}

func (s *talkService) MyTalks(ctx context.Context, sess *domain.Session) ([]domain.MinimalTalk, error) {
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.myTalks(ctx, sess)
}

// Calendar exports the session's booked talks. Talks missing from the
// catalog are exported with their slug as title.
func (s *talkService) Calendar(ctx context.Context, sess *domain.Session) ([]byte, error) {
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	mine, err := s.myTalks(ctx, sess)
	if err != nil {
		return nil, err
	}
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	talks := make([]*domain.Talk, 0, len(mine))
	for _, m := range mine {
		if t, ok := snap.TalkBySlug(m.Slug); ok {
			talks = append(talks, t)
			continue
		}
		talks = append(talks, &domain.Talk{ID: m.ID, Slug: m.Slug, Title: m.Slug, Start: m.Start, End: m.End})
	}
	name := ""
	if snap.Site != nil {
		name = snap.Site.SiteName
	}
	return s.exporter.Export(talks, name), nil
}

func (s *talkService) Warmup(ctx context.Context) ([]domain.WarmupStage, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.WarmupStage{}
	for _, stage := range snap.Stages {
		if stage.Live || len(stage.WarmupExercises) == 0 {
			continue
		}
		out = append(out, domain.WarmupStage{
			Name:        stage.Name,
			Slug:        stage.Slug,
			Description: stage.Description,
			Exercises:   stage.WarmupExercises,
		})
	}
	return out, nil
}
