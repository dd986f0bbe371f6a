package controllers

import (
	"log/slog"
	"net/http"

	h "virtualconf/internal/delivery/http/helpers"
	"virtualconf/internal/delivery/http/middleware"
	"virtualconf/internal/domain"
)

type TicketController struct {
	Logger  *slog.Logger
	Tickets domain.TicketService
	Reports domain.ReportService
}

func NewTicketController(logger *slog.Logger, tickets domain.TicketService, reports domain.ReportService) *TicketController {
	return &TicketController{Logger: logger, Tickets: tickets, Reports: reports}
}

// Ticket godoc
// @Summary Shared ticket
// @Tags tickets
// @Produce json
// @Param username path string true "Participant email"
// @Success 200 {object} helpers.APIResponse "data contains the ticket"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tickets/{username} [get]
func (c *TicketController) Ticket(w http.ResponseWriter, r *http.Request) {
	ticket, err := c.Tickets.Ticket(r.Context(), r.PathValue("username"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ticket)
}

// Report godoc
// @Summary Participation report
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param sort query string false "team, location, -team or -location"
// @Success 200 {object} helpers.APIResponse "data contains the report"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/report [get]
func (c *TicketController) Report(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromContext(r.Context())
	report, err := c.Reports.Report(r.Context(), s, r.URL.Query().Get("sort"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, report)
}
