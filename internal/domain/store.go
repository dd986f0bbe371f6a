package domain

import "context"

// TalkStore reads stages, talks and categories from the document store.
type TalkStore interface {
	ListStages(ctx context.Context) ([]*Stage, error)
	ListTalks(ctx context.Context) ([]*Talk, error)
	GetTalkBySlug(ctx context.Context, slug string) (*Talk, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}

// ParticipantStore reads participants and teams from the document store.
type ParticipantStore interface {
	FindParticipantByEmail(ctx context.Context, email string) (*Participant, error)
	ListParticipants(ctx context.Context) ([]*Participant, error)
	ListTeams(ctx context.Context) ([]*Team, error)
}

// ContentStore reads the remaining published content.
type ContentStore interface {
	ListChallenges(ctx context.Context) ([]*Challenge, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	ListSpeakers(ctx context.Context) ([]*Speaker, error)
	GetSiteSetting(ctx context.Context) (*SiteSetting, error)
}

// RemoteFunctions are the server-side operations of the document store.
// Error tags come back as *RemoteError.
type RemoteFunctions interface {
	JoinTalk(ctx context.Context, slug, participantID string) (*JoinResult, error)
	DropTalk(ctx context.Context, slug, participantID string) error
	MyTalks(ctx context.Context, participantID string) ([]MinimalTalk, error)
	// ClaimPoints identifies the participant by display name, as the remote
	// function resolves it.
	ClaimPoints(ctx context.Context, code, participantName string) (*ClaimResult, error)
}

// LeaderboardService ranks participants and teams by points.
type LeaderboardService interface {
	Leaderboard(ctx context.Context, page PaginationParams) (*Leaderboard, error)
}

// ChallengeService lists challenges and claims their points.
type ChallengeService interface {
	List(ctx context.Context) ([]*Challenge, error)
	Claim(ctx context.Context, s *Session, code string) (*ClaimResult, error)
}

// ContentService serves the shop, speakers and site settings.
type ContentService interface {
	Products(ctx context.Context) ([]*Product, error)
	Speakers(ctx context.Context) ([]*Speaker, error)
	SiteSetting(ctx context.Context) (*SiteSetting, error)
}
