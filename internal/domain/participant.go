package domain

// Participant is an invited attendee. Email is the user-matching key.
// swagger:model Participant
type Participant struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Points   int    `json:"points"`
	Ticket   string `json:"ticket,omitempty"`
	Rank     int    `json:"rank,omitempty"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	Admin    bool   `json:"-"`
}

// Team is a group of participants whose points are summed on the leaderboard.
// swagger:model Team
type Team struct {
	Name    string        `json:"name"`
	Members []Participant `json:"members"`
	Points  int           `json:"points"`
}

// Leaderboard is the ranked view of individuals and teams.
type Leaderboard struct {
	Individuals []Participant `json:"individuals"`
	Teams       []Team        `json:"teams"`
	Total       int           `json:"total"`
}
