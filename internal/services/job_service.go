package services

import (
	"fmt"

	"github.com/jobsentry/jobsentry-api/internal/models"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

// MatchFilter narrows ListMatches. Zero values mean "no filter".
type MatchFilter struct {
	PreferenceID uint
	Status       string
	MinScore     int
}

func (s *JobService) ListMatches(userID uint, f MatchFilter) ([]models.JobMatch, error) {
	query := s.DB.Preload("Posting").Where("user_id = ?", userID)
	if f.PreferenceID > 0 {
		query = query.Where("preference_id = ?", f.PreferenceID)
	}
	if f.Status != "" {
		if !models.ValidStatus(f.Status) {
			return nil, fmt.Errorf("unknown status %q", f.Status)
		}
		query = query.Where("status = ?", f.Status)
	}
	if f.MinScore > 0 {
		query = query.Where("score >= ?", f.MinScore)
	}

	var matches []models.JobMatch
	if err := query.Order("score desc, id asc").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *JobService) GetMatch(userID, id uint) (*models.JobMatch, error) {
	var match models.JobMatch
	if err := s.DB.Preload("Posting").Where("user_id = ?", userID).First(&match, id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// UpdateStatus moves a match through the application lifecycle,
// rejecting transitions the lifecycle does not allow.
func (s *JobService) UpdateStatus(userID, id uint, status string) (*models.JobMatch, error) {
	match, err := s.GetMatch(userID, id)
	if err != nil {
		return nil, err
	}
	if err := models.CheckTransition(match.Status, status); err != nil {
		return nil, err
	}
	match.Status = status
	if err := s.DB.Save(match).Error; err != nil {
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	return match, nil
}

func (s *JobService) DeleteMatch(userID, id uint) error {
	result := s.DB.Where("user_id = ?", userID).Delete(&models.JobMatch{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
