package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/jobsentry/jobsentry-api/internal/config"
	"github.com/jobsentry/jobsentry-api/internal/models"
	"github.com/jobsentry/jobsentry-api/internal/normalize"
	"github.com/jobsentry/jobsentry-api/internal/similarity"
	"gorm.io/gorm"
)

// fieldSim folds both sides before comparing, so casing, entities and
// diacritics never affect the score.
func fieldSim(a, b string) float64 {
	return similarity.FieldSimilarity(normalize.Text(a), normalize.Text(b))
}

// fuzzyWindow bounds how far back the fuzzy scan looks. Postings older
// than this are stale enough that a re-scrape counts as a fresh listing.
const fuzzyWindow = 30 * 24 * time.Hour

type DuplicateService struct {
	DB      *gorm.DB
	Weights config.DuplicateWeights
}

func NewDuplicateService(db *gorm.DB, weights config.DuplicateWeights) *DuplicateService {
	return &DuplicateService{
		DB:      db,
		Weights: weights,
	}
}

// DuplicateResult is the outcome of checking one incoming posting.
type DuplicateResult struct {
	IsDuplicate bool            `json:"is_duplicate"`
	Exact       bool            `json:"exact,omitempty"`
	Score       float64         `json:"score,omitempty"`
	Existing    *models.Posting `json:"-"`
}

// CheckPosting decides whether the incoming posting is already stored.
// Order: exact canonical-URL lookup (single indexed query), then a
// weighted fuzzy scan over recent postings.
func (s *DuplicateService) CheckPosting(p *models.Posting) (*DuplicateResult, error) {
	// --- STEP 1: EXACT URL ---
	if p.CanonicalURL != "" {
		var existing models.Posting
		err := s.DB.Where("canonical_url = ?", p.CanonicalURL).First(&existing).Error
		if err == nil {
			return &DuplicateResult{IsDuplicate: true, Exact: true, Score: 1.0, Existing: &existing}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("exact duplicate lookup failed: %w", err)
		}
	}

	// --- STEP 2: FUZZY SCAN ---
	var candidates []models.Posting
	cutoff := time.Now().Add(-fuzzyWindow)
	if err := s.DB.Where("created_at > ? OR last_seen_at > ?", cutoff, cutoff).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("fuzzy candidate query failed: %w", err)
	}

	best, score := BestCandidate(p, candidates, s.Weights)
	if best != nil && score >= s.Weights.Threshold {
		return &DuplicateResult{IsDuplicate: true, Score: score, Existing: best}, nil
	}
	return &DuplicateResult{IsDuplicate: false, Score: score}, nil
}

// Consolidate merges an incoming duplicate into the stored row: empty
// fields are filled from the newer scrape, the existing values win
// otherwise. The incoming posting is never stored as a second row.
func (s *DuplicateService) Consolidate(existing, incoming *models.Posting) error {
	if existing.Company == "" {
		existing.Company = incoming.Company
	}
	if existing.Location == "" {
		existing.Location = incoming.Location
	}
	if existing.Description == "" {
		existing.Description = incoming.Description
	}
	if existing.SalaryRaw == "" && incoming.SalaryRaw != "" {
		existing.SalaryRaw = incoming.SalaryRaw
		existing.SalaryMin = incoming.SalaryMin
		existing.SalaryMax = incoming.SalaryMax
		existing.SalaryPeriod = incoming.SalaryPeriod
	}
	if existing.ContractType == "" {
		existing.ContractType = incoming.ContractType
	}
	if existing.ExperienceLevel == "" {
		existing.ExperienceLevel = incoming.ExperienceLevel
	}
	existing.SourceCount++
	existing.LastSeenAt = time.Now()

	if err := s.DB.Save(existing).Error; err != nil {
		return fmt.Errorf("failed to consolidate posting %d: %w", existing.ID, err)
	}
	return nil
}

// ScorePostings computes the weighted fuzzy-duplicate score between two
// postings. Per-field similarity is the better of token overlap and
// Levenshtein ratio; the weighted mean is over title, company and
// location, with a small bonus when both URLs share a domain. Result is
// clamped to [0, 1].
func ScorePostings(a, b *models.Posting, w config.DuplicateWeights) float64 {
	titleSim := fieldSim(a.Title, b.Title)
	companySim := fieldSim(a.Company, b.Company)
	locationSim := fieldSim(a.Location, b.Location)

	total := w.TitleWeight + w.CompanyWeight + w.LocationWeight
	score := (titleSim*w.TitleWeight + companySim*w.CompanyWeight + locationSim*w.LocationWeight) / total

	domA, domB := normalize.Domain(a.URL), normalize.Domain(b.URL)
	if domA != "" && domA == domB {
		score += w.DomainBonus
	}

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// BestCandidate returns the candidate with the highest score against the
// incoming posting. Ties are broken deterministically: earlier CreatedAt
// wins, then lower ID.
func BestCandidate(incoming *models.Posting, candidates []models.Posting, w config.DuplicateWeights) (*models.Posting, float64) {
	var best *models.Posting
	bestScore := 0.0
	for i := range candidates {
		c := &candidates[i]
		score := ScorePostings(incoming, c, w)
		switch {
		case score > bestScore:
			best, bestScore = c, score
		case score == bestScore && best != nil:
			if c.CreatedAt.Before(best.CreatedAt) ||
				(c.CreatedAt.Equal(best.CreatedAt) && c.ID < best.ID) {
				best = c
			}
		}
	}
	return best, bestScore
}
