package service

import (
	"fmt"
	"time"

	"github.com/ucan-lab/hado-ken/internal/domain"
)

const (
	// GameDateLayout is the calendar date format used by tournament records
	GameDateLayout = "2006-01-02"

	// VoteAtLayout is the vote timestamp format, matching the reference
	// time zone display format. Lexicographic order equals chronological
	// order, which the ledger's ascending sort relies on.
	VoteAtLayout = "2006/01/02 15:04:05"
)

// Deadline is the fixed daily submission cutoff in the reference time zone
type Deadline struct {
	Hour   int
	Minute int
	Second int
}

// ParseDeadline parses an HH:MM:SS string into a Deadline
func ParseDeadline(s string) (Deadline, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return Deadline{}, fmt.Errorf("invalid deadline %q: %w", s, err)
	}
	return Deadline{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// String formats the deadline as HH:MM
func (d Deadline) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// Before reports whether t's wall-clock time is strictly before the cutoff.
// Independent of the calendar date.
func (d Deadline) Before(t time.Time) bool {
	h, m, s := t.Clock()
	if h != d.Hour {
		return h < d.Hour
	}
	if m != d.Minute {
		return m < d.Minute
	}
	return s < d.Second
}

// EvaluateEligibility computes the voting window for a single instant. It is
// a pure function of (now, calendar snapshot) and must be called with now
// already shifted into the reference time zone.
//
// More than one tournament matching today is a configuration error; the
// calendar is expected to hold at most one entry per date.
func EvaluateEligibility(now time.Time, calendar []domain.Tournament, deadline Deadline) (domain.Eligibility, error) {
	today := now.Format(GameDateLayout)

	eligibility := domain.Eligibility{
		IsBeforeDeadline: deadline.Before(now),
	}

	matches := 0
	for i := range calendar {
		if calendar[i].GameDate == today {
			matches++
			eligibility.ActiveTournament = &calendar[i]
		}
	}

	if matches > 1 {
		return domain.Eligibility{}, domain.ErrAmbiguousSchedule
	}
	if matches == 1 {
		eligibility.IsTournamentDay = true
	} else {
		eligibility.ActiveTournament = nil
	}

	return eligibility, nil
}
