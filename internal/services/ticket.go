package services

import (
	"context"
	"strings"

	"virtualconf/internal/cache"
	"virtualconf/internal/domain"
)

type ticketService struct {
	store *cache.Store
}

// NewTicketService serves the tickets recorded at sign-in.
func NewTicketService(store *cache.Store) domain.TicketService {
	return &ticketService{store: store}
}

func (t *ticketService) Ticket(ctx context.Context, username string) (*domain.Ticket, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrNotFound
	}
	var ticket domain.Ticket
	if !t.store.Get(ctx, cache.TicketKey(username), &ticket) || ticket.TicketNumber == 0 {
		return nil, domain.ErrNotFound
	}
	if ticket.Name == "" {
		ticket.Name = ticket.Username
	}
	return &ticket, nil
}
