package services

import (
	"context"
	"fmt"
	"slices"

	"virtualconf/internal/domain"
)

type leaderboardService struct {
	participants domain.ParticipantStore
}

func NewLeaderboardService(participants domain.ParticipantStore) domain.LeaderboardService {
	return &leaderboardService{participants: participants}
}

func byPointsDesc(a, b domain.Participant) int { return b.Points - a.Points }

// Leaderboard ranks individuals 1..n by points and teams by the sum of
// their members' points. page selects a window of individuals; Total is
// the number of ranked individuals.
func (l *leaderboardService) Leaderboard(ctx context.Context, page domain.PaginationParams) (*domain.Leaderboard, error) {
	people, err := l.participants.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	teams, err := l.participants.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	ranked := make([]domain.Participant, 0, len(people))
	for _, p := range people {
		if p != nil {
			ranked = append(ranked, *p)
		}
	}
	slices.SortStableFunc(ranked, byPointsDesc)
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	board := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		if t == nil {
			continue
		}
		team := domain.Team{Name: t.Name, Members: slices.Clone(t.Members)}
		if team.Members == nil {
			team.Members = []domain.Participant{}
		}
		for _, m := range team.Members {
			team.Points += m.Points
		}
		board = append(board, team)
	}
	slices.SortStableFunc(board, func(a, b domain.Team) int { return b.Points - a.Points })

	start, end := page.Window(len(ranked))
	return &domain.Leaderboard{
		Individuals: ranked[start:end],
		Teams:       board,
		Total:       len(ranked),
	}, nil
}
