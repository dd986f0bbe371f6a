package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "virtualconf/internal/delivery/http/helpers"
	"virtualconf/internal/delivery/http/middleware"
	"virtualconf/internal/domain"
)

type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.TalkService
}

func NewScheduleController(logger *slog.Logger, svc domain.TalkService) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Service: svc,
	}
}

// parseScheduleQuery reads filter, categories and stage. A missing
// categories parameter selects every category; an empty one selects none.
func parseScheduleQuery(r *http.Request) (domain.ScheduleQuery, bool) {
	q := r.URL.Query()
	out := domain.ScheduleQuery{Filter: domain.ScheduleFilter(q.Get("filter")), Stage: q.Get("stage")}
	switch out.Filter {
	case "", domain.FilterAll, domain.FilterMine:
	default:
		return out, false
	}
	if q.Has("categories") {
		out.Categories = []string{}
		for _, c := range strings.Split(q.Get("categories"), ",") {
			if c = strings.TrimSpace(c); c != "" {
				out.Categories = append(out.Categories, c)
			}
		}
	}
	return out, true
}

// Schedule godoc
// @Summary Grouped schedule
// @Description Stages with talks grouped by display date and start time, plus the viewer's availability per talk.
// @Tags schedule
// @Produce json
// @Param filter query string false "all or mine"
// @Param categories query string false "Comma separated category icons (crystal-ball stage)"
// @Param stage query string false "Stage slug"
// @Success 200 {object} helpers.APIResponse "data contains the schedule view"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /schedule [get]
func (c *ScheduleController) Schedule(w http.ResponseWriter, r *http.Request) {
	q, ok := parseScheduleQuery(r)
	if !ok {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "filter must be \"all\" or \"mine\"")
		return
	}
	s, _ := middleware.SessionFromContext(r.Context())
	view, err := c.Service.Schedule(r.Context(), s, q)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, view)
}

// Talk godoc
// @Summary Talk detail
// @Tags schedule
// @Produce json
// @Param slug path string true "Talk slug"
// @Success 200 {object} helpers.APIResponse "data contains the talk and availability"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /talks/{slug} [get]
func (c *ScheduleController) Talk(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromContext(r.Context())
	talk, err := c.Service.Talk(r.Context(), s, r.PathValue("slug"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, talk)
}

// Join godoc
// @Summary Join a talk
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Talk slug"
// @Success 200 {object} helpers.APIResponse "data contains points awarded"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /talks/{slug}/join [post]
func (c *ScheduleController) Join(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromContext(r.Context())
	res, err := c.Service.Join(r.Context(), s, r.PathValue("slug"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, res)
}

// Drop godoc
// @Summary Drop a talk
// @Tags schedule
// @Security BearerAuth
// @Param slug path string true "Talk slug"
// @Success 204
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /talks/{slug}/drop [post]
func (c *ScheduleController) Drop(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromContext(r.Context())
	if err := c.Service.Drop(r.Context(), s, r.PathValue("slug")); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MyTalks godoc
// @Summary Booked talks
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the booked talks"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /me/talks [get]
func (c *ScheduleController) MyTalks(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromContext(r.Context())
	talks, err := c.Service.MyTalks(r.Context(), s)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, talks)
}

// Calendar godoc
// @Summary Booked talks as iCalendar
// @Tags schedule
// @Produce text/calendar
// @Security BearerAuth
// @Success 200 {string} string "ICS document"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /me/talks.ics [get]
func (c *ScheduleController) Calendar(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromContext(r.Context())
	ics, err := c.Service.Calendar(r.Context(), s)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="my-talks.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(ics)
}

// Warmup godoc
// @Summary Stages warming up
// @Description Stages that are not live yet and carry warm-up exercises.
// @Tags schedule
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the warm-up stages"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /warmup [get]
func (c *ScheduleController) Warmup(w http.ResponseWriter, r *http.Request) {
	stages, err := c.Service.Warmup(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, stages)
}
