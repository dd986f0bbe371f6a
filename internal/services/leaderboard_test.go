package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"virtualconf/internal/domain"
)

func TestLeaderboard(t *testing.T) {
	cms := new(mockCMS)
	cms.On("ListParticipants", mock.Anything).Return([]*domain.Participant{
		{ID: "c", Points: 5},
		{ID: "a", Points: 10},
		{ID: "b", Points: 10},
		{ID: "d", Points: 1},
	}, nil)
	cms.On("ListTeams", mock.Anything).Return([]*domain.Team{
		{Name: "Owls", Members: []domain.Participant{{Points: 1}, {Points: 2}}},
		{Name: "Ravens", Members: []domain.Participant{{Points: 10}}},
		{Name: "Empty"},
	}, nil)
	svc := NewLeaderboardService(cms)

	board, err := svc.Leaderboard(context.Background(), domain.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, board.Individuals, 4)
	assert.Equal(t, 4, board.Total)
	for i, want := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, want, board.Individuals[i].ID)
		assert.Equal(t, i+1, board.Individuals[i].Rank)
	}
	require.Len(t, board.Teams, 3)
	assert.Equal(t, "Ravens", board.Teams[0].Name)
	assert.Equal(t, 10, board.Teams[0].Points)
	assert.Equal(t, 3, board.Teams[1].Points)
	assert.NotNil(t, board.Teams[2].Members)

	page, err := svc.Leaderboard(context.Background(), domain.PaginationParams{Page: 2, PageSize: 3})
	require.NoError(t, err)
	require.Len(t, page.Individuals, 1)
	assert.Equal(t, 4, page.Individuals[0].Rank)
	assert.Equal(t, 4, page.Total)
}

func TestLeaderboard_StoreError(t *testing.T) {
	cms := new(mockCMS)
	cms.On("ListParticipants", mock.Anything).Return(nil, errors.New("down"))

	_, err := NewLeaderboardService(cms).Leaderboard(context.Background(), domain.PaginationParams{})
	require.Error(t, err)
}
