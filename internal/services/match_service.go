package services

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/jobsentry/jobsentry-api/internal/config"
	"github.com/jobsentry/jobsentry-api/internal/models"
	"github.com/jobsentry/jobsentry-api/internal/normalize"
	"gorm.io/gorm"
)

type MatchService struct {
	DB      *gorm.DB
	Weights config.MatchWeights
}

func NewMatchService(db *gorm.DB, weights config.MatchWeights) *MatchService {
	return &MatchService{DB: db, Weights: weights}
}

// MatchOutcome is one preference profile's score against a posting.
type MatchOutcome struct {
	Preference      models.JobPreference
	Score           int
	MatchedKeywords []string
}

// MatchPosting scores a stored posting against active preference
// profiles and persists a JobMatch row per profile over the threshold.
// preferenceID > 0 scopes the candidate set to that single profile.
// Returns the matches it created.
func (s *MatchService) MatchPosting(posting *models.Posting, preferenceID uint) ([]models.JobMatch, error) {
	query := s.DB.Where("active = ?", true)
	if preferenceID > 0 {
		query = query.Where("id = ?", preferenceID)
	}
	var prefs []models.JobPreference
	if err := query.Find(&prefs).Error; err != nil {
		return nil, fmt.Errorf("failed to load preference profiles: %w", err)
	}

	outcomes := ScoreAgainstPreferences(posting, prefs, s.Weights)

	var created []models.JobMatch
	for _, o := range outcomes {
		// One match per (preference, posting) pair; re-scraped postings
		// must not resurface as new matches.
		var count int64
		if err := s.DB.Model(&models.JobMatch{}).
			Where("preference_id = ? AND posting_id = ?", o.Preference.ID, posting.ID).
			Count(&count).Error; err != nil {
			return created, fmt.Errorf("failed to check existing match for preference %d: %w", o.Preference.ID, err)
		}
		if count > 0 {
			continue
		}

		match := models.JobMatch{
			UserID:          o.Preference.UserID,
			PreferenceID:    o.Preference.ID,
			PostingID:       posting.ID,
			Score:           o.Score,
			MatchedKeywords: o.MatchedKeywords,
			Status:          models.StatusNew,
		}
		if err := s.DB.Create(&match).Error; err != nil {
			return created, fmt.Errorf("failed to store match for preference %d: %w", o.Preference.ID, err)
		}
		created = append(created, match)
	}

	if len(created) > 0 {
		log.Printf("Matched posting %d (%s) to %d profile(s)", posting.ID, posting.Title, len(created))
	}
	return created, nil
}

// ScoreAgainstPreferences runs the pure scorer over every candidate
// profile and returns the outcomes at or above the threshold, sorted by
// score descending then preference ID ascending. Deterministic for a
// given input set.
func ScoreAgainstPreferences(posting *models.Posting, prefs []models.JobPreference, w config.MatchWeights) []MatchOutcome {
	var outcomes []MatchOutcome
	for _, pref := range prefs {
		score, matched, ok := ScorePreference(&pref, posting, w)
		if !ok || score < w.Threshold {
			continue
		}
		outcomes = append(outcomes, MatchOutcome{
			Preference:      pref,
			Score:           score,
			MatchedKeywords: matched,
		})
	}
	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].Score != outcomes[j].Score {
			return outcomes[i].Score > outcomes[j].Score
		}
		return outcomes[i].Preference.ID < outcomes[j].Preference.ID
	})
	return outcomes
}

// ScorePreference scores one posting against one profile.
//
// Hard filters (ok=false, no score):
//   - contract types declared on both sides and different
//   - experience levels declared on both sides and different
//   - salary ranges declared on both sides and disjoint
//
// Additive score, clamped to [0, 100]:
//   - KeywordPoints per profile keyword found in title+description,
//     capped at KeywordCap; zero keyword hits also excludes
//   - LocationExact / LocationPartial for location agreement
//   - SalaryOverlap when both sides declared a range and they intersect
//   - ExperienceAgrees when both sides declared the same level
func ScorePreference(pref *models.JobPreference, posting *models.Posting, w config.MatchWeights) (score int, matched []string, ok bool) {
	// --- HARD FILTERS ---
	if pref.ContractType != "" && posting.ContractType != "" && pref.ContractType != posting.ContractType {
		return 0, nil, false
	}
	if pref.ExperienceLevel != "" && posting.ExperienceLevel != "" && pref.ExperienceLevel != posting.ExperienceLevel {
		return 0, nil, false
	}
	salaryKnown := (pref.SalaryMin > 0 || pref.SalaryMax > 0) && (posting.SalaryMin > 0 || posting.SalaryMax > 0)
	salaryOverlaps := normalize.RangesOverlap(
		pref.SalaryMin, pref.SalaryMax, pref.SalaryPeriod,
		posting.SalaryMin, posting.SalaryMax, posting.SalaryPeriod,
	)
	if salaryKnown && !salaryOverlaps {
		return 0, nil, false
	}

	// --- KEYWORDS ---
	text := normalize.Text(posting.Title + " " + posting.Description)
	points := 0
	for _, kw := range pref.Keywords {
		folded := normalize.Fold(kw)
		if folded == "" {
			continue
		}
		if containsKeyword(text, folded) {
			matched = append(matched, folded)
			points += w.KeywordPoints
		}
	}
	if len(matched) == 0 {
		return 0, nil, false
	}
	if points > w.KeywordCap {
		points = w.KeywordCap
	}
	score = points

	// --- LOCATION ---
	prefLoc := normalize.Fold(pref.Location)
	postLoc := normalize.Fold(posting.Location)
	remote := strings.Contains(postLoc, "remote")
	switch {
	case prefLoc != "" && prefLoc == postLoc:
		score += w.LocationExact
	case prefLoc != "" && postLoc != "" && (strings.Contains(postLoc, prefLoc) || strings.Contains(prefLoc, postLoc)):
		score += w.LocationPartial
	case pref.Remote && remote:
		score += w.LocationPartial
	}

	// --- BONUSES ---
	if salaryKnown && salaryOverlaps {
		score += w.SalaryOverlap
	}
	if pref.ExperienceLevel != "" && pref.ExperienceLevel == posting.ExperienceLevel {
		score += w.ExperienceAgrees
	}

	if score > 100 {
		score = 100
	}
	sort.Strings(matched)
	return score, matched, true
}

// containsKeyword reports whether folded text contains a folded keyword.
// Multi-word keywords match as a phrase; single words match on token
// boundaries so "go" does not match "google".
func containsKeyword(text, keyword string) bool {
	if strings.ContainsRune(keyword, ' ') {
		return strings.Contains(text, keyword)
	}
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '/' || r == '(' || r == ')'
	}) {
		if strings.Trim(tok, ".:!?") == keyword {
			return true
		}
	}
	return false
}
