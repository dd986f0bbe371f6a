package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"virtualconf/internal/cache"
	"virtualconf/internal/catalog"
	"virtualconf/internal/domain"
)

type mockCMS struct {
	mock.Mock
}

func (m *mockCMS) ListStages(ctx context.Context) ([]*domain.Stage, error) {
	args := m.Called(ctx)
	stages, _ := args.Get(0).([]*domain.Stage)
	return stages, args.Error(1)
}

func (m *mockCMS) ListTalks(ctx context.Context) ([]*domain.Talk, error) {
	args := m.Called(ctx)
	talks, _ := args.Get(0).([]*domain.Talk)
	return talks, args.Error(1)
}

func (m *mockCMS) GetTalkBySlug(ctx context.Context, slug string) (*domain.Talk, error) {
	args := m.Called(ctx, slug)
	talk, _ := args.Get(0).(*domain.Talk)
	return talk, args.Error(1)
}

func (m *mockCMS) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]*domain.Category)
	return cats, args.Error(1)
}

func (m *mockCMS) FindParticipantByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(*domain.Participant)
	return p, args.Error(1)
}

func (m *mockCMS) ListParticipants(ctx context.Context) ([]*domain.Participant, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*domain.Participant)
	return ps, args.Error(1)
}

func (m *mockCMS) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	args := m.Called(ctx)
	ts, _ := args.Get(0).([]*domain.Team)
	return ts, args.Error(1)
}

func (m *mockCMS) ListChallenges(ctx context.Context) ([]*domain.Challenge, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]*domain.Challenge)
	return cs, args.Error(1)
}

func (m *mockCMS) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*domain.Product)
	return ps, args.Error(1)
}

func (m *mockCMS) ListSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	args := m.Called(ctx)
	ss, _ := args.Get(0).([]*domain.Speaker)
	return ss, args.Error(1)
}

func (m *mockCMS) GetSiteSetting(ctx context.Context) (*domain.SiteSetting, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.SiteSetting)
	return s, args.Error(1)
}

func (m *mockCMS) JoinTalk(ctx context.Context, slug, participantID string) (*domain.JoinResult, error) {
	args := m.Called(ctx, slug, participantID)
	r, _ := args.Get(0).(*domain.JoinResult)
	return r, args.Error(1)
}

func (m *mockCMS) DropTalk(ctx context.Context, slug, participantID string) error {
	return m.Called(ctx, slug, participantID).Error(0)
}

func (m *mockCMS) MyTalks(ctx context.Context, participantID string) ([]domain.MinimalTalk, error) {
	args := m.Called(ctx, participantID)
	ts, _ := args.Get(0).([]domain.MinimalTalk)
	return ts, args.Error(1)
}

func (m *mockCMS) ClaimPoints(ctx context.Context, code, participantName string) (*domain.ClaimResult, error) {
	args := m.Called(ctx, code, participantName)
	r, _ := args.Get(0).(*domain.ClaimResult)
	return r, args.Error(1)
}

// staticSnapshots serves a fixed catalog snapshot.
type staticSnapshots struct {
	snap *catalog.Snapshot
	err  error
}

func (s staticSnapshots) Snapshot(context.Context) (*catalog.Snapshot, error) {
	return s.snap, s.err
}

type fakeExporter struct {
	talks []*domain.Talk
	name  string
}

func (f *fakeExporter) Export(talks []*domain.Talk, name string) []byte {
	f.talks = talks
	f.name = name
	return []byte("BEGIN:VCALENDAR")
}

var fixedNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newStore() *cache.Store {
	return cache.New(cache.NewMemory(), cache.WithClock(func() time.Time { return fixedNow }))
}

func at(hour int) time.Time {
	return time.Date(2025, 3, 1, hour, 0, 0, 0, time.UTC)
}

func session(id string) *domain.Session {
	return &domain.Session{SessionID: "sess-" + id, ID: id, Username: id + "@example.com", Name: id}
}
