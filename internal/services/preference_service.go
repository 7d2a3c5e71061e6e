package services

import (
	"fmt"

	"github.com/jobsentry/jobsentry-api/internal/dtos"
	"github.com/jobsentry/jobsentry-api/internal/models"
	"gorm.io/gorm"
)

type PreferenceService struct {
	DB *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{DB: db}
}

func (s *PreferenceService) CreatePreference(userID uint, req *dtos.PreferenceCreationRequest) (*models.JobPreference, error) {
	pref := &models.JobPreference{
		UserID:          userID,
		Name:            req.Name,
		Keywords:        req.Keywords,
		Location:        req.Location,
		Remote:          req.Remote,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		SalaryPeriod:    req.SalaryPeriod,
		ContractType:    req.ContractType,
		ExperienceLevel: req.ExperienceLevel,
		Active:          true,
	}
	if pref.SalaryMax > 0 && pref.SalaryMin > pref.SalaryMax {
		return nil, fmt.Errorf("salary_min (%d) exceeds salary_max (%d)", pref.SalaryMin, pref.SalaryMax)
	}
	if err := s.DB.Create(pref).Error; err != nil {
		return nil, fmt.Errorf("failed to create preference: %w", err)
	}
	return pref, nil
}

// GetPreference fetches one profile, scoped to its owner.
func (s *PreferenceService) GetPreference(userID, id uint) (*models.JobPreference, error) {
	var pref models.JobPreference
	if err := s.DB.Where("user_id = ?", userID).First(&pref, id).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func (s *PreferenceService) ListPreferences(userID uint) ([]models.JobPreference, error) {
	var prefs []models.JobPreference
	if err := s.DB.Where("user_id = ?", userID).Order("id asc").Find(&prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

// UpdatePreference applies only the fields present in the request.
func (s *PreferenceService) UpdatePreference(userID, id uint, req *dtos.PreferenceUpdateRequest) (*models.JobPreference, error) {
	pref, err := s.GetPreference(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pref.Name = *req.Name
	}
	if req.Keywords != nil {
		pref.Keywords = *req.Keywords
	}
	if req.Location != nil {
		pref.Location = *req.Location
	}
	if req.Remote != nil {
		pref.Remote = *req.Remote
	}
	if req.SalaryMin != nil {
		pref.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		pref.SalaryMax = *req.SalaryMax
	}
	if req.SalaryPeriod != nil {
		pref.SalaryPeriod = *req.SalaryPeriod
	}
	if req.ContractType != nil {
		pref.ContractType = *req.ContractType
	}
	if req.ExperienceLevel != nil {
		pref.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Active != nil {
		pref.Active = *req.Active
	}

	if pref.SalaryMax > 0 && pref.SalaryMin > pref.SalaryMax {
		return nil, fmt.Errorf("salary_min (%d) exceeds salary_max (%d)", pref.SalaryMin, pref.SalaryMax)
	}
	if len(pref.Keywords) == 0 {
		return nil, fmt.Errorf("preference needs at least one keyword")
	}

	if err := s.DB.Save(pref).Error; err != nil {
		return nil, fmt.Errorf("failed to update preference: %w", err)
	}
	return pref, nil
}

func (s *PreferenceService) DeletePreference(userID, id uint) error {
	result := s.DB.Where("user_id = ?", userID).Delete(&models.JobPreference{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
