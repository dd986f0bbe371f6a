package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "virtualconf/internal/delivery/http/helpers"
	"virtualconf/internal/delivery/http/middleware"
	"virtualconf/internal/domain"
)

// TimezoneRequest is the request body for PUT /preferences/timezone
type TimezoneRequest struct {
	Timezone string `json:"timezone"`
}

// Validate implements Validator.
func (t TimezoneRequest) Validate() []string {
	if strings.TrimSpace(t.Timezone) == "" {
		return []string{"timezone is required"}
	}
	return nil
}

// TimezoneResponse is the current display timezone and the choices offered.
type TimezoneResponse struct {
	Timezone string   `json:"timezone"`
	Options  []string `json:"options"`
}

type PreferenceController struct {
	Logger  *slog.Logger
	Service domain.PreferenceService
}

func NewPreferenceController(logger *slog.Logger, svc domain.PreferenceService) *PreferenceController {
	return &PreferenceController{Logger: logger, Service: svc}
}

// GetTimezone godoc
// @Summary Display timezone
// @Tags preferences
// @Produce json
// @Param detected query string false "Timezone detected by the client"
// @Success 200 {object} helpers.APIResponse "data contains timezone and options"
// @Router /preferences/timezone [get]
func (c *PreferenceController) GetTimezone(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromContext(r.Context())
	h.WriteJSONSuccess(w, http.StatusOK, TimezoneResponse{
		Timezone: c.Service.Timezone(r.Context(), s),
		Options:  c.Service.TimezoneOptions(r.Context(), s, r.URL.Query().Get("detected")),
	})
}

// SetTimezone godoc
// @Summary Change the display timezone
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TimezoneRequest true "IANA timezone name"
// @Success 200 {object} helpers.APIResponse "data contains timezone and options"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /preferences/timezone [put]
func (c *PreferenceController) SetTimezone(w http.ResponseWriter, r *http.Request) {
	var req TimezoneRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	s, _ := middleware.SessionFromContext(r.Context())
	tz := strings.TrimSpace(req.Timezone)
	if err := c.Service.SetTimezone(r.Context(), s, tz); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, TimezoneResponse{
		Timezone: tz,
		Options:  c.Service.TimezoneOptions(r.Context(), s, ""),
	})
}
