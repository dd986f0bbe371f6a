package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"virtualconf/internal/domain"
)

const noTeam = "No Team"

type reportService struct {
	participants domain.ParticipantStore
	talks        domain.TalkStore
	logger       *slog.Logger
}

func NewReportService(participants domain.ParticipantStore, talks domain.TalkStore, logger *slog.Logger) domain.ReportService {
	return &reportService{participants: participants, talks: talks, logger: orDiscard(logger)}
}

// Report counts, per participant, the published talks listing them. A
// participant listed twice on one talk counts once.
func (r *reportService) Report(ctx context.Context, s *domain.Session, sort string) (*domain.ParticipationReport, error) {
	if s == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !s.IsAdmin {
		return nil, domain.ErrForbidden
	}
	less, err := reportOrder(sort)
	if err != nil {
		return nil, err
	}

	people, err := r.participants.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	teams, err := r.participants.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	talks, err := r.talks.ListTalks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list talks: %w", err)
	}

	teamOf := map[string]string{}
	for _, t := range teams {
		if t == nil {
			continue
		}
		for _, m := range t.Members {
			if _, seen := teamOf[m.ID]; !seen {
				teamOf[m.ID] = t.Name
			}
		}
	}

	rows := make([]domain.ReportRow, 0, len(people))
	index := make(map[string]int, len(people))
	for _, p := range people {
		if p == nil {
			continue
		}
		team, ok := teamOf[p.ID]
		if !ok || team == "" {
			team = noTeam
		}
		index[p.ID] = len(rows)
		rows = append(rows, domain.ReportRow{ID: p.ID, Name: p.Name, Email: p.Email, Team: team, Location: p.Location})
	}

	for _, t := range talks {
		seen := map[string]bool{}
		for _, p := range t.Participants {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			i, ok := index[p.ID]
			if !ok {
				r.logger.DebugContext(ctx, "report: unknown participant", slog.String("participant_id", p.ID), slog.String("talk", t.Slug))
				continue
			}
			rows[i].Count++
		}
	}

	report := &domain.ParticipationReport{Total: len(rows), Participants: rows}
	for _, row := range rows {
		if row.Count > 0 {
			report.Active++
		}
	}
	if less != nil {
		slices.SortStableFunc(report.Participants, less)
	}
	return report, nil
}

func reportOrder(sort string) (func(a, b domain.ReportRow) int, error) {
	desc := strings.HasPrefix(sort, "-")
	var key func(domain.ReportRow) string
	switch strings.TrimPrefix(sort, "-") {
	case "":
		return nil, nil
	case "team":
		key = func(r domain.ReportRow) string { return r.Team }
	case "location":
		key = func(r domain.ReportRow) string { return r.Location }
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidInput, sort)
	}
	return func(a, b domain.ReportRow) int {
		if desc {
			return cmp.Compare(key(b), key(a))
		}
		return cmp.Compare(key(a), key(b))
	}, nil
}
