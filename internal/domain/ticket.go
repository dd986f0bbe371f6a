package domain

import "context"

// Ticket is the public view of a registration, shared by username.
// swagger:model Ticket
type Ticket struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	TicketNumber int    `json:"ticket_number"`
}

// TicketService looks up shared tickets.
type TicketService interface {
	Ticket(ctx context.Context, username string) (*Ticket, error)
}

// ReportRow is one participant's line of the participation report.
type ReportRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Count    int    `json:"count"`
	Team     string `json:"team"`
	Location string `json:"location,omitempty"`
}

// ParticipationReport counts the talks each participant has joined.
// Active is the number of participants with at least one talk.
// swagger:model ParticipationReport
type ParticipationReport struct {
	Total        int         `json:"total"`
	Active       int         `json:"active"`
	Participants []ReportRow `json:"participants"`
}

// ReportService builds the admin participation report. Sort is "", "team",
// "location", or either of those prefixed with "-" for descending order.
type ReportService interface {
	Report(ctx context.Context, s *Session, sort string) (*ParticipationReport, error)
}
