package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/jobsentry/jobsentry-api/internal/dtos"
	"github.com/jobsentry/jobsentry-api/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// CreateUser registers an account and mints its API key. The key is
// returned once and never readable again through the API.
func (s *UserService) CreateUser(req *dtos.UserCreationRequest) (*models.User, string, error) {
	key, err := generateAPIKey()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate api key: %w", err)
	}

	user := &models.User{
		Email:          req.Email,
		APIKey:         key,
		EmailAlerts:    true,
		TelegramChatID: req.TelegramChatID,
	}
	if req.EmailAlerts != nil {
		user.EmailAlerts = *req.EmailAlerts
	}

	if err := s.DB.Create(user).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}
	return user, key, nil
}

func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByAPIKey backs the auth middleware.
func (s *UserService) GetUserByAPIKey(key string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("api_key = ?", key).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser soft-deletes the account and its preference profiles.
// Matches stay for bookkeeping but are orphaned behind the soft delete.
func (s *UserService) DeleteUser(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.JobPreference{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

func generateAPIKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "jsk_" + hex.EncodeToString(buf), nil
}
