package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"new to interested", StatusNew, StatusInterested, true},
		{"new to applied", StatusNew, StatusApplied, true},
		{"new straight to interviewing", StatusNew, StatusInterviewing, false},
		{"applied to interviewing", StatusApplied, StatusInterviewing, true},
		{"interviewing to offer", StatusInterviewing, StatusOffer, true},
		{"interviewing to rejected", StatusInterviewing, StatusRejected, true},
		{"offer is terminal", StatusOffer, StatusArchived, false},
		{"rejected is terminal", StatusRejected, StatusApplied, false},
		{"archive from new", StatusNew, StatusArchived, true},
		{"archive from interviewing", StatusInterviewing, StatusArchived, true},
		{"unarchive forbidden", StatusArchived, StatusNew, false},
		{"self transition allowed", StatusApplied, StatusApplied, true},
		{"unknown target", StatusNew, "GHOSTED", false},
		{"unknown source", "GHOSTED", StatusNew, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCheckTransition(t *testing.T) {
	assert.NoError(t, CheckTransition(StatusNew, StatusApplied))

	err := CheckTransition(StatusOffer, StatusApplied)
	assert.ErrorContains(t, err, "cannot move match")

	err = CheckTransition(StatusNew, "bogus")
	assert.ErrorContains(t, err, "unknown status")
}
