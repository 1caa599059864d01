package domain

// Tournament represents a scheduled tournament in the calendar
type Tournament struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	GameDate string `json:"game_date"` // YYYY-MM-DD in the reference time zone
}

// Eligibility is the voting-window snapshot for a single instant. It is
// recomputed on every request and never cached.
type Eligibility struct {
	IsTournamentDay  bool
	ActiveTournament *Tournament
	IsBeforeDeadline bool
}

// AcceptingVotes reports whether a submission is allowed right now
func (e Eligibility) AcceptingVotes() bool {
	return e.IsTournamentDay && e.IsBeforeDeadline
}
