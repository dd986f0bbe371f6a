package controllers

import (
	"log/slog"
	"net/http"

	h "virtualconf/internal/delivery/http/helpers"
	"virtualconf/internal/domain"
)

// LeaderboardResponse is a page of ranked individuals with every team.
type LeaderboardResponse struct {
	Individuals []domain.Participant `json:"individuals"`
	Teams       []domain.Team        `json:"teams"`
	Pagination  h.PaginationMeta     `json:"pagination"`
}

type LeaderboardController struct {
	Logger  *slog.Logger
	Service domain.LeaderboardService
}

func NewLeaderboardController(logger *slog.Logger, svc domain.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{Logger: logger, Service: svc}
}

// Leaderboard godoc
// @Summary Leaderboard
// @Tags leaderboard
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Individuals per page"
// @Success 200 {object} helpers.APIResponse "data contains individuals, teams and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /leaderboard [get]
func (c *LeaderboardController) Leaderboard(w http.ResponseWriter, r *http.Request) {
	page := h.ParsePagination(r)
	board, err := c.Service.Leaderboard(r.Context(), page)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, LeaderboardResponse{
		Individuals: board.Individuals,
		Teams:       board.Teams,
		Pagination:  h.NewPaginationMeta(page, board.Total),
	})
}
