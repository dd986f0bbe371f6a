package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"virtualconf/internal/booking"
	"virtualconf/internal/catalog"
	"virtualconf/internal/domain"
	"virtualconf/internal/eligibility"
)

func bookable(slug string, hour int, capacity domain.Capacity, emails ...string) *domain.Talk {
	t := &domain.Talk{
		ID:          "id-" + slug,
		Slug:        slug,
		Title:       "Talk " + slug,
		Start:       at(hour),
		End:         at(hour + 1),
		MaxCapacity: capacity,
		SelfAssign:  true,
	}
	for _, e := range emails {
		t.Participants = append(t.Participants, domain.Participant{Email: e})
	}
	return t
}

type talkFixture struct {
	svc      *talkService
	cms      *mockCMS
	exporter *fakeExporter
}

func newTalkFixture(snap *catalog.Snapshot) *talkFixture {
	cms := new(mockCMS)
	store := newStore()
	exporter := &fakeExporter{}
	if snap == nil {
		snap = &catalog.Snapshot{}
	}
	svc := NewTalkService(staticSnapshots{snap: snap}, cms, cms, store, NewPreferenceService(store, "UTC"), exporter, nil).(*talkService)
	svc.now = func() time.Time { return fixedNow }
	return &talkFixture{svc: svc, cms: cms, exporter: exporter}
}

func (f *talkFixture) state(t *testing.T, s *domain.Session) []string {
	t.Helper()
	talks, ok := f.svc.reducer(s).State(context.Background())
	require.True(t, ok)
	out := []string{}
	for _, talk := range talks {
		out = append(out, talk.Slug)
	}
	return out
}

func TestJoin_Unauthenticated(t *testing.T) {
	f := newTalkFixture(nil)

	_, err := f.svc.Join(context.Background(), nil, "a")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	require.ErrorIs(t, f.svc.Drop(context.Background(), nil, "a"), domain.ErrUnauthenticated)

	f.cms.AssertNotCalled(t, "GetTalkBySlug", mock.Anything, mock.Anything)
	f.cms.AssertNotCalled(t, "JoinTalk", mock.Anything, mock.Anything, mock.Anything)
	f.cms.AssertNotCalled(t, "DropTalk", mock.Anything, mock.Anything, mock.Anything)
}

func TestJoin_Success(t *testing.T) {
	ctx := context.Background()
	f := newTalkFixture(nil)
	ada := session("ada")
	talk := bookable("a", 10, domain.Seats(2))

	f.cms.On("GetTalkBySlug", mock.Anything, "a").Return(talk, nil)
	f.cms.On("MyTalks", mock.Anything, "ada").Return([]domain.MinimalTalk{}, nil).Once()
	f.cms.On("JoinTalk", mock.Anything, "a", "ada").Return(&domain.JoinResult{Points: 5}, nil).Once()

	res, err := f.svc.Join(ctx, ada, "a")
	require.NoError(t, err)
	assert.Equal(t, 5, res.Points)
	assert.Equal(t, []string{"a"}, f.state(t, ada))

	mine, err := f.svc.MyTalks(ctx, ada)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "id-a", mine[0].ID)

	_, busy := f.svc.inflight.Load(ada.SessionID)
	assert.False(t, busy)
	f.cms.AssertNumberOfCalls(t, "MyTalks", 1)
	f.cms.AssertExpectations(t)
}

func TestJoin_RemoteErrorLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newTalkFixture(nil)
	ada := session("ada")

	f.cms.On("GetTalkBySlug", mock.Anything, "a").Return(bookable("a", 10, domain.Unlimited()), nil)
	f.cms.On("MyTalks", mock.Anything, "ada").Return([]domain.MinimalTalk{}, nil)
	f.cms.On("JoinTalk", mock.Anything, "a", "ada").Return(nil, &domain.RemoteError{Op: "joinTalk", Message: "Talk is full"})

	_, err := f.svc.Join(ctx, ada, "a")
	re, ok := domain.IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, "Talk is full", re.Message)
	assert.Empty(t, f.state(t, ada))
}

func TestJoin_FullyBookedSkipsRemote(t *testing.T) {
	f := newTalkFixture(nil)
	ada := session("ada")

	f.cms.On("GetTalkBySlug", mock.Anything, "a").Return(bookable("a", 10, domain.Seats(1), "bob@example.com"), nil)
	f.cms.On("MyTalks", mock.Anything, "ada").Return([]domain.MinimalTalk{}, nil)

	_, err := f.svc.Join(context.Background(), ada, "a")
	require.ErrorIs(t, err, domain.ErrNotJoinable)
	var blocked *domain.BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, eligibility.ReasonFullyBooked, blocked.Reason)
	f.cms.AssertNotCalled(t, "JoinTalk", mock.Anything, mock.Anything, mock.Anything)
}

func TestJoin_SecondTalkInSameSlotIsBlocked(t *testing.T) {
	ctx := context.Background()
	f := newTalkFixture(nil)
	ada := session("ada")

	f.cms.On("GetTalkBySlug", mock.Anything, "a").Return(bookable("a", 10, domain.Unlimited()), nil)
	f.cms.On("GetTalkBySlug", mock.Anything, "b").Return(bookable("b", 10, domain.Unlimited()), nil)
	f.cms.On("MyTalks", mock.Anything, "ada").Return([]domain.MinimalTalk{}, nil)
	f.cms.On("JoinTalk", mock.Anything, "a", "ada").Return(&domain.JoinResult{}, nil)

	_, err := f.svc.Join(ctx, ada, "a")
	require.NoError(t, err)

	_, err = f.svc.Join(ctx, ada, "b")
	var blocked *domain.BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, eligibility.ReasonTimeslot, blocked.Reason)
	f.cms.AssertNumberOfCalls(t, "JoinTalk", 1)
}

func TestJoin_AlreadyBooked(t *testing.T) {
	f := newTalkFixture(nil)
	ada := session("ada")

	f.cms.On("GetTalkBySlug", mock.Anything, "a").Return(bookable("a", 10, domain.Unlimited(), ada.Username), nil)
	f.cms.On("MyTalks", mock.Anything, "ada").Return([]domain.MinimalTalk{}, nil)

	_, err := f.svc.Join(context.Background(), ada, "a")
	var blocked *domain.BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, eligibility.ReasonAlreadyBooked, blocked.Reason)
}

func TestJoin_ActionInProgress(t *testing.T) {
	f := newTalkFixture(nil)
	ada := session("ada")
	f.svc.inflight.Store(ada.SessionID, struct{}{})

	_, err := f.svc.Join(context.Background(), ada, "a")
	require.ErrorIs(t, err, domain.ErrActionInProgress)
	require.ErrorIs(t, f.svc.Drop(context.Background(), ada, "a"), domain.ErrActionInProgress)
	f.cms.AssertNotCalled(t, "GetTalkBySlug", mock.Anything, mock.Anything)
}

func TestDrop(t *testing.T) {
	ctx := context.Background()
	f := newTalkFixture(nil)
	ada := session("ada")
	talk := bookable("a", 10, domain.Unlimited(), ada.Username)
	f.svc.reducer(ada).Dispatch(ctx, booking.Set([]domain.MinimalTalk{talk.Minimal(), bookable("c", 12, domain.Unlimited()).Minimal()}))

	f.cms.On("GetTalkBySlug", mock.Anything, "a").Return(talk, nil)
	f.cms.On("DropTalk", mock.Anything, "a", "ada").Return(nil).Once()

	require.NoError(t, f.svc.Drop(ctx, ada, "a"))
	assert.Equal(t, []string{"c"}, f.state(t, ada))
	f.cms.AssertNotCalled(t, "MyTalks", mock.Anything, mock.Anything)
}

func TestDrop_Refused(t *testing.T) {
	ctx := context.Background()

	t.Run("not booked", func(t *testing.T) {
		f := newTalkFixture(nil)
		f.cms.On("GetTalkBySlug", mock.Anything, "a").Return(bookable("a", 10, domain.Unlimited()), nil)
		f.cms.On("MyTalks", mock.Anything, "ada").Return([]domain.MinimalTalk{}, nil)

		err := f.svc.Drop(ctx, session("ada"), "a")
		var blocked *domain.BlockedError
		require.ErrorAs(t, err, &blocked)
		assert.ErrorIs(t, err, domain.ErrNotCancellable)
		assert.Equal(t, ReasonNotBooked, blocked.Reason)
	})

	t.Run("assigned by organizers", func(t *testing.T) {
		f := newTalkFixture(nil)
		ada := session("ada")
		talk := bookable("a", 10, domain.Unlimited(), ada.Username)
		talk.SelfAssign = false
		f.cms.On("GetTalkBySlug", mock.Anything, "a").Return(talk, nil)
		f.cms.On("MyTalks", mock.Anything, "ada").Return([]domain.MinimalTalk{}, nil)

		err := f.svc.Drop(ctx, ada, "a")
		var blocked *domain.BlockedError
		require.ErrorAs(t, err, &blocked)
		assert.Equal(t, eligibility.ReasonNoSelfAssign, blocked.Reason)
		f.cms.AssertNotCalled(t, "DropTalk", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDrop_RemoteErrorLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newTalkFixture(nil)
	ada := session("ada")
	talk := bookable("a", 10, domain.Unlimited())
	f.svc.reducer(ada).Dispatch(ctx, booking.Set([]domain.MinimalTalk{talk.Minimal()}))

	f.cms.On("GetTalkBySlug", mock.Anything, "a").Return(talk, nil)
	f.cms.On("DropTalk", mock.Anything, "a", "ada").Return(&domain.RemoteError{Op: "dropTalk", Message: "nope"})

	err := f.svc.Drop(ctx, ada, "a")
	_, ok := domain.IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, f.state(t, ada))
}

func TestMyTalks_HydrationFailure(t *testing.T) {
	f := newTalkFixture(nil)
	f.cms.On("MyTalks", mock.Anything, "ada").Return(nil, &domain.RemoteError{Op: "myTalks"})

	_, err := f.svc.MyTalks(context.Background(), session("ada"))
	require.Error(t, err)

	_, err = f.svc.MyTalks(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func scheduleSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Stages: []*domain.Stage{
			{Name: "Main", Slug: "main", Schedule: []*domain.Talk{bookable("a", 10, domain.Seats(3))}},
			{Name: "Crystal Ball", Slug: domain.CategoryStageSlug, Schedule: []*domain.Talk{
				func() *domain.Talk {
					t := bookable("magic", 11, domain.Unlimited())
					t.Categories = []domain.Category{{Icon: "wand"}}
					return t
				}(),
			}},
			{Name: "Test", Slug: domain.TestStageSlug, Schedule: []*domain.Talk{bookable("dry-run", 9, domain.Unlimited())}},
		},
		Categories: []*domain.Category{{Name: "Magic", Icon: "wand"}, {Name: "Potions", Icon: "cauldron"}},
		Site:       &domain.SiteSetting{SiteName: "Conf"},
	}
}

func stageSlugs(v *domain.ScheduleView) []string {
	out := []string{}
	for _, s := range v.Stages {
		out = append(out, s.Slug)
	}
	return out
}

func TestSchedule_TestStageIsAdminOnly(t *testing.T) {
	ctx := context.Background()
	f := newTalkFixture(scheduleSnapshot())
	f.cms.On("MyTalks", mock.Anything, mock.Anything).Return([]domain.MinimalTalk{}, nil)

	anon, err := f.svc.Schedule(ctx, nil, domain.ScheduleQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"main", domain.CategoryStageSlug}, stageSlugs(anon))
	assert.Equal(t, domain.FilterAll, anon.Filter)
	assert.Equal(t, "UTC", anon.Timezone)

	member, err := f.svc.Schedule(ctx, session("ada"), domain.ScheduleQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"main", domain.CategoryStageSlug}, stageSlugs(member))

	admin := session("root")
	admin.IsAdmin = true
	all, err := f.svc.Schedule(ctx, admin, domain.ScheduleQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"main", domain.CategoryStageSlug, domain.TestStageSlug}, stageSlugs(all))
}

func TestSchedule_AvailabilityAndCategories(t *testing.T) {
	ctx := context.Background()
	f := newTalkFixture(scheduleSnapshot())

	view, err := f.svc.Schedule(ctx, nil, domain.ScheduleQuery{})
	require.NoError(t, err)
	main := view.Stages[0]
	assert.Equal(t, 3, main.Availability["a"].RemainingSeats)
	assert.True(t, main.Availability["a"].ShowRemainingSeats)
	require.Len(t, main.Dates, 1)
	assert.Nil(t, main.Categories)

	crystal := view.Stages[1]
	assert.Equal(t, []string{"wand", "cauldron"}, crystal.SelectedCategories)
	assert.Len(t, crystal.Categories, 2)
	require.Len(t, crystal.Dates, 1)

	filtered, err := f.svc.Schedule(ctx, nil, domain.ScheduleQuery{Stage: domain.CategoryStageSlug, Categories: []string{"cauldron"}})
	require.NoError(t, err)
	require.Len(t, filtered.Stages, 1)
	assert.Empty(t, filtered.Stages[0].Dates)
	assert.Equal(t, []string{"cauldron"}, filtered.Stages[0].SelectedCategories)
	f.cms.AssertNotCalled(t, "MyTalks", mock.Anything, mock.Anything)
}

func TestSchedule_UnknownStage(t *testing.T) {
	f := newTalkFixture(scheduleSnapshot())
	_, err := f.svc.Schedule(context.Background(), nil, domain.ScheduleQuery{Stage: "nowhere"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Schedule(context.Background(), nil, domain.ScheduleQuery{Stage: domain.TestStageSlug})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSchedule_MineUsesDisplayZone(t *testing.T) {
	ctx := context.Background()
	f := newTalkFixture(scheduleSnapshot())
	ada := session("ada")
	f.cms.On("MyTalks", mock.Anything, "ada").Return([]domain.MinimalTalk{bookable("a", 10, domain.Unlimited()).Minimal()}, nil)
	require.NoError(t, f.svc.prefs.SetTimezone(ctx, ada, "Asia/Tokyo"))

	view, err := f.svc.Schedule(ctx, ada, domain.ScheduleQuery{Filter: domain.FilterMine, Stage: "main"})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", view.Timezone)
	main := view.Stages[0]
	require.Len(t, main.Dates, 1)
	assert.Equal(t, "19:00", main.Dates[0].Slots[0].Time)
	assert.True(t, main.Availability["a"].AlreadyBooked)
}

func TestTalk(t *testing.T) {
	f := newTalkFixture(nil)
	f.svc.now = func() time.Time { return at(10).Add(30 * time.Minute) }
	talk := bookable("a", 10, domain.Seats(5), "bob@example.com")
	f.cms.On("GetTalkBySlug", mock.Anything, "a").Return(talk, nil)
	f.cms.On("GetTalkBySlug", mock.Anything, "gone").Return(nil, domain.ErrNotFound)

	got, err := f.svc.Talk(context.Background(), nil, "a")
	require.NoError(t, err)
	assert.True(t, got.IsLive)
	assert.Equal(t, "10:00 - 11:00", got.TimeRange)
	assert.Equal(t, 4, got.Availability.RemainingSeats)

	_, err = f.svc.Talk(context.Background(), nil, "gone")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalendar(t *testing.T) {
	ctx := context.Background()
	snap := &catalog.Snapshot{
		Talks: []*domain.Talk{bookable("a", 10, domain.Unlimited())},
		Site:  &domain.SiteSetting{SiteName: "Conf"},
	}
	f := newTalkFixture(snap)
	ada := session("ada")
	f.cms.On("MyTalks", mock.Anything, "ada").Return([]domain.MinimalTalk{
		snap.Talks[0].Minimal(),
		{ID: "g1", Slug: "ghost", Start: at(14), End: at(15)},
	}, nil)

	out, err := f.svc.Calendar(ctx, ada)
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCALENDAR", string(out))
	assert.Equal(t, "Conf", f.exporter.name)
	require.Len(t, f.exporter.talks, 2)
	assert.Equal(t, "Talk a", f.exporter.talks[0].Title)
	assert.Equal(t, "ghost", f.exporter.talks[1].Title)

	_, err = f.svc.Calendar(ctx, nil)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestWarmup(t *testing.T) {
	stretch := []domain.Exercise{{Name: "Stretch", Description: "Arms up"}}
	snap := &catalog.Snapshot{Stages: []*domain.Stage{
		{Name: "Main", Slug: "main", Live: true, WarmupExercises: stretch},
		{Name: "Lobby", Slug: "lobby", Description: "Before doors open", WarmupExercises: stretch},
		{Name: "Quiet", Slug: "quiet", WarmupExercises: []domain.Exercise{}},
	}}
	f := newTalkFixture(snap)

	got, err := f.svc.Warmup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.WarmupStage{
		{Name: "Lobby", Slug: "lobby", Description: "Before doors open", Exercises: stretch},
	}, got)

	view, err := f.svc.Schedule(context.Background(), nil, domain.ScheduleQuery{})
	require.NoError(t, err)
	require.Len(t, view.Stages, 3)
	assert.True(t, view.Stages[0].Live)
	assert.Equal(t, stretch, view.Stages[1].WarmupExercises)
}

func TestWarmup_CatalogUnavailable(t *testing.T) {
	svc := NewTalkService(staticSnapshots{err: errors.New("cms down")}, nil, nil, newStore(), nil, nil, nil)
	_, err := svc.Warmup(context.Background())
	require.Error(t, err)
}
