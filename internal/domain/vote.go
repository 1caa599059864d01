package domain

import "time"

// Vote represents a ranked prediction by one named participant for one
// tournament. At most one live vote may exist per (name, tournament) pair;
// resubmission replaces the previous record.
type Vote struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	First        string    `json:"first"`
	Second       string    `json:"second"`
	Third        string    `json:"third"`
	VoteAt       string    `json:"vote_at"` // formatted in the reference time zone
	TournamentID string    `json:"tournament_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// VoteRequest represents a ballot submission
type VoteRequest struct {
	Name   string `json:"name"`
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

// VoteResponse represents the response after a successful submission
type VoteResponse struct {
	VoteID       string `json:"vote_id"`
	TournamentID string `json:"tournament_id"`
	VoteAt       string `json:"vote_at"`
	Message      string `json:"message"`
}

// VotingStatus is the public eligibility snapshot served to the ballot page
type VotingStatus struct {
	IsTournamentDay  bool        `json:"is_tournament_day"`
	IsBeforeDeadline bool        `json:"is_before_deadline"`
	AcceptingVotes   bool        `json:"accepting_votes"`
	Tournament       *Tournament `json:"tournament,omitempty"`
	Deadline         string      `json:"deadline"`
}

// Prediction is one ledger entry with team IDs resolved to display names
type Prediction struct {
	Name   string `json:"name"`
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
	VoteAt string `json:"vote_at"`
}

// ResultsView is the gated results payload. Predictions is only populated
// once the deadline has passed on a tournament day.
type ResultsView struct {
	IsTournamentDay bool         `json:"is_tournament_day"`
	ResultsVisible  bool         `json:"results_visible"`
	Tournament      *Tournament  `json:"tournament,omitempty"`
	Message         string       `json:"message,omitempty"`
	Predictions     []Prediction `json:"predictions"`
}
