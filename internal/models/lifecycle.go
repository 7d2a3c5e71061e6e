package models

import "fmt"

// Application-status lifecycle for a JobMatch.
const (
	StatusNew          = "NEW"
	StatusInterested   = "INTERESTED"
	StatusApplied      = "APPLIED"
	StatusInterviewing = "INTERVIEWING"
	StatusOffer        = "OFFER"
	StatusRejected     = "REJECTED"
	StatusArchived     = "ARCHIVED"
)

// statusTransitions maps each status to the statuses it may move to.
// OFFER, REJECTED and ARCHIVED are terminal.
var statusTransitions = map[string][]string{
	StatusNew:          {StatusInterested, StatusApplied, StatusArchived},
	StatusInterested:   {StatusApplied, StatusArchived},
	StatusApplied:      {StatusInterviewing, StatusRejected, StatusArchived},
	StatusInterviewing: {StatusOffer, StatusRejected, StatusArchived},
	StatusOffer:        {},
	StatusRejected:     {},
	StatusArchived:     {},
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether a JobMatch may move from one status to
// another. Self-transitions are allowed (idempotent updates).
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition is CanTransition with a descriptive error.
func CheckTransition(from, to string) error {
	if !ValidStatus(to) {
		return fmt.Errorf("unknown status %q", to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("cannot move match from %s to %s", from, to)
	}
	return nil
}
