package services

import (
	"testing"

	"github.com/jobsentry/jobsentry-api/internal/config"
	"github.com/jobsentry/jobsentry-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultMatchWeights() config.MatchWeights {
	return config.DefaultScoring().Match
}

func TestScorePreferenceHardFilters(t *testing.T) {
	w := defaultMatchWeights()
	posting := models.Posting{
		Title:           "Senior Go Engineer",
		Description:     "Backend services in Go and Kubernetes",
		Location:        "London",
		ContractType:    "permanent",
		ExperienceLevel: "senior",
		SalaryMin:       90000, SalaryMax: 110000, SalaryPeriod: "year",
	}

	tests := []struct {
		name string
		pref models.JobPreference
	}{
		{
			name: "contract type mismatch",
			pref: models.JobPreference{Keywords: []string{"go"}, ContractType: "contract"},
		},
		{
			name: "experience mismatch",
			pref: models.JobPreference{Keywords: []string{"go"}, ExperienceLevel: "entry"},
		},
		{
			name: "disjoint salary",
			pref: models.JobPreference{Keywords: []string{"go"},
				SalaryMin: 150000, SalaryMax: 200000, SalaryPeriod: "year"},
		},
		{
			name: "no keyword hits",
			pref: models.JobPreference{Keywords: []string{"haskell", "erlang"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := ScorePreference(&tt.pref, &posting, w)
			assert.False(t, ok)
		})
	}
}

func TestScorePreferenceScoring(t *testing.T) {
	w := defaultMatchWeights()
	posting := models.Posting{
		Title:           "Senior Go Engineer",
		Description:     "Backend services in Go and Kubernetes. Remote friendly.",
		Location:        "London",
		ContractType:    "permanent",
		ExperienceLevel: "senior",
		SalaryMin:       90000, SalaryMax: 110000, SalaryPeriod: "year",
	}

	pref := models.JobPreference{
		Keywords:        []string{"Go", "Kubernetes", "Terraform"},
		Location:        "London",
		ContractType:    "permanent",
		ExperienceLevel: "senior",
		SalaryMin:       80000, SalaryMax: 100000, SalaryPeriod: "year",
	}

	score, matched, ok := ScorePreference(&pref, &posting, w)
	require.True(t, ok)

	// 2 keyword hits + exact location + salary overlap + experience.
	want := 2*w.KeywordPoints + w.LocationExact + w.SalaryOverlap + w.ExperienceAgrees
	assert.Equal(t, want, score)
	assert.Equal(t, []string{"go", "kubernetes"}, matched)
}

func TestScorePreferenceKeywordCap(t *testing.T) {
	w := defaultMatchWeights()
	posting := models.Posting{
		Title:       "Platform Engineer",
		Description: "go docker kubernetes aws terraform grafana prometheus",
	}
	pref := models.JobPreference{
		Keywords: []string{"go", "docker", "kubernetes", "aws", "terraform", "grafana", "prometheus"},
	}

	score, matched, ok := ScorePreference(&pref, &posting, w)
	require.True(t, ok)
	assert.Len(t, matched, 7)
	assert.Equal(t, w.KeywordCap, score, "keyword points must cap")
}

func TestScorePreferenceKeywordBoundaries(t *testing.T) {
	w := defaultMatchWeights()

	// "go" must not match inside "google".
	posting := models.Posting{Title: "Ads Engineer", Description: "Work at Google on ads"}
	pref := models.JobPreference{Keywords: []string{"go"}}
	_, _, ok := ScorePreference(&pref, &posting, w)
	assert.False(t, ok)

	// Phrase keywords match as phrases.
	posting = models.Posting{Title: "Engineer", Description: "Experience with machine learning pipelines"}
	pref = models.JobPreference{Keywords: []string{"machine learning"}}
	_, matched, ok := ScorePreference(&pref, &posting, w)
	assert.True(t, ok)
	assert.Equal(t, []string{"machine learning"}, matched)
}

func TestScorePreferenceRemote(t *testing.T) {
	w := defaultMatchWeights()
	posting := models.Posting{Title: "Go Engineer", Description: "Go services", Location: "Remote (EU)"}
	pref := models.JobPreference{Keywords: []string{"go"}, Remote: true}

	score, _, ok := ScorePreference(&pref, &posting, w)
	require.True(t, ok)
	assert.Equal(t, w.KeywordPoints+w.LocationPartial, score)
}

func TestScorePreferenceMissingFieldsArePermissive(t *testing.T) {
	w := defaultMatchWeights()
	// Posting with nothing but a title: no contract, no salary, no level.
	posting := models.Posting{Title: "Go Developer"}
	pref := models.JobPreference{
		Keywords:        []string{"go"},
		ContractType:    "permanent",
		ExperienceLevel: "senior",
		SalaryMin:       80000, SalaryPeriod: "year",
	}

	score, _, ok := ScorePreference(&pref, &posting, w)
	require.True(t, ok, "undeclared posting fields must not hard-filter")
	assert.Equal(t, w.KeywordPoints, score)
}

func TestScorePreferenceOpenEndedSalaryMinimum(t *testing.T) {
	w := defaultMatchWeights()
	// "At least 80k/year" with no upper bound.
	pref := models.JobPreference{
		Keywords:  []string{"go"},
		SalaryMin: 80000, SalaryPeriod: "year",
	}

	posting := models.Posting{
		Title:     "Go Engineer",
		SalaryMin: 90000, SalaryMax: 110000, SalaryPeriod: "year",
	}
	score, _, ok := ScorePreference(&pref, &posting, w)
	require.True(t, ok, "a posting paying above the stated minimum must not be excluded")
	assert.Equal(t, w.KeywordPoints+w.SalaryOverlap, score)

	low := models.Posting{
		Title:     "Go Engineer",
		SalaryMin: 50000, SalaryMax: 70000, SalaryPeriod: "year",
	}
	_, _, ok = ScorePreference(&pref, &low, w)
	assert.False(t, ok, "a posting paying below the stated minimum still filters")
}

func TestScoreAgainstPreferencesOrdering(t *testing.T) {
	w := defaultMatchWeights()
	w.Threshold = 10

	posting := models.Posting{
		Title:       "Senior Go Engineer",
		Description: "Go and Kubernetes",
		Location:    "Berlin",
	}
	prefs := []models.JobPreference{
		{ID: 1, Keywords: []string{"go"}},                              // 15
		{ID: 2, Keywords: []string{"go", "kubernetes"}},                // 30
		{ID: 3, Keywords: []string{"go"}, Location: "Berlin"},          // 35
		{ID: 4, Keywords: []string{"cobol"}},                           // excluded
		{ID: 5, Keywords: []string{"go", "kubernetes"}, Location: "x"}, // 30, ties with 2
	}

	outcomes := ScoreAgainstPreferences(&posting, prefs, w)
	require.Len(t, outcomes, 4)

	assert.Equal(t, uint(3), outcomes[0].Preference.ID)
	// Equal scores: lower preference ID first.
	assert.Equal(t, uint(2), outcomes[1].Preference.ID)
	assert.Equal(t, uint(5), outcomes[2].Preference.ID)
	assert.Equal(t, uint(1), outcomes[3].Preference.ID)
}

func TestScoreAgainstPreferencesThreshold(t *testing.T) {
	w := defaultMatchWeights()
	w.Threshold = 50

	posting := models.Posting{Title: "Go Engineer", Description: "Go"}
	prefs := []models.JobPreference{{ID: 1, Keywords: []string{"go"}}}

	assert.Empty(t, ScoreAgainstPreferences(&posting, prefs, w))
}
