package domain

import "errors"

// Sentinel errors returned by the voting services. Handlers map these to
// HTTP responses with errors.Is.
var (
	// ErrNotAcceptingVotes is returned when a submission arrives outside the
	// eligible window (not a tournament day, or past the deadline).
	ErrNotAcceptingVotes = errors.New("not accepting votes")

	// ErrMissingName is returned when the participant name is empty after
	// trimming.
	ErrMissingName = errors.New("participant name is required")

	// ErrDuplicateSelection is returned when the three picks are not all
	// selected or not pairwise distinct.
	ErrDuplicateSelection = errors.New("first, second and third must be three distinct teams")

	// ErrAmbiguousSchedule is returned when more than one tournament is
	// scheduled for today. Treated as a configuration error rather than
	// silently picking one.
	ErrAmbiguousSchedule = errors.New("multiple tournaments scheduled for today")
)
