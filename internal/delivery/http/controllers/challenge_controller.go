package controllers

import (
	"log/slog"
	"net/http"

	h "virtualconf/internal/delivery/http/helpers"
	"virtualconf/internal/delivery/http/middleware"
	"virtualconf/internal/domain"
)

type ChallengeController struct {
	Logger  *slog.Logger
	Service domain.ChallengeService
}

func NewChallengeController(logger *slog.Logger, svc domain.ChallengeService) *ChallengeController {
	return &ChallengeController{Logger: logger, Service: svc}
}

// List godoc
// @Summary Enabled challenges
// @Tags challenges
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the challenges"
// @Router /challenges [get]
func (c *ChallengeController) List(w http.ResponseWriter, r *http.Request) {
	challenges, err := c.Service.List(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, challenges)
}

// Claim godoc
// @Summary Claim a challenge code
// @Description Zero points means the code had already been claimed.
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Param code path string true "Challenge code"
// @Success 200 {object} helpers.APIResponse "data contains points awarded"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /challenges/{code}/claim [post]
func (c *ChallengeController) Claim(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromContext(r.Context())
	res, err := c.Service.Claim(r.Context(), s, r.PathValue("code"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, res)
}
