package services

import (
	"log"
	"time"

	"github.com/jobsentry/jobsentry-api/internal/alerts"
	"github.com/jobsentry/jobsentry-api/internal/models"
	"gorm.io/gorm"
)

// AlertService sweeps for un-notified matches and pushes them to each
// user's configured channels. Either sender may be nil; the sweep
// skips channels that are not wired up.
type AlertService struct {
	DB             *gorm.DB
	Gmail          *alerts.GmailSender
	Telegram       *alerts.TelegramSender
	Interval       time.Duration
	AlertThreshold int

	done chan struct{}
}

func NewAlertService(db *gorm.DB, gmail *alerts.GmailSender, telegram *alerts.TelegramSender, interval time.Duration, threshold int) *AlertService {
	return &AlertService{
		DB:             db,
		Gmail:          gmail,
		Telegram:       telegram,
		Interval:       interval,
		AlertThreshold: threshold,
		done:           make(chan struct{}),
	}
}

// StartWatcher starts the background sweep loop.
func (s *AlertService) StartWatcher() {
	if s.Gmail == nil && s.Telegram == nil {
		log.Println("Alert watcher disabled: no delivery channel configured")
		return
	}

	ticker := time.NewTicker(s.Interval)

	// Run immediately on startup
	go s.Sweep()

	go func() {
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.done:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop halts the watcher loop.
func (s *AlertService) Stop() {
	close(s.done)
}

// Sweep finds NEW matches over the alert threshold that were never
// notified, groups them per user and delivers. Failed deliveries keep
// NotifiedAt null and are retried next cycle.
func (s *AlertService) Sweep() {
	var pending []models.JobMatch
	err := s.DB.Preload("Posting").
		Where("notified_at IS NULL AND status = ? AND score >= ?", models.StatusNew, s.AlertThreshold).
		Order("user_id asc, score desc").
		Find(&pending).Error
	if err != nil {
		log.Printf("Alert sweep query failed: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	log.Printf("Alert sweep: %d match(es) to deliver", len(pending))

	byUser := make(map[uint][]*models.JobMatch)
	for i := range pending {
		m := &pending[i]
		byUser[m.UserID] = append(byUser[m.UserID], m)
	}

	for userID, matches := range byUser {
		var user models.User
		if err := s.DB.First(&user, userID).Error; err != nil {
			log.Printf("Alert sweep: user %d not found, skipping %d match(es)", userID, len(matches))
			continue
		}
		s.deliverToUser(&user, matches)
	}
}

func (s *AlertService) deliverToUser(user *models.User, matches []*models.JobMatch) {
	delivered := false

	if s.Telegram != nil && user.TelegramChatID != 0 {
		ok := true
		for _, m := range matches {
			if err := s.Telegram.SendMatch(user.TelegramChatID, m); err != nil {
				log.Printf("Telegram alert to user %d failed: %v", user.ID, err)
				ok = false
				break
			}
		}
		delivered = delivered || ok
	}

	if s.Gmail != nil && user.EmailAlerts {
		if err := s.Gmail.SendMatches(user.Email, matches); err != nil {
			log.Printf("Email alert to user %d failed: %v", user.ID, err)
		} else {
			delivered = true
		}
	}

	if !delivered {
		return // retry next sweep
	}

	now := time.Now()
	for _, m := range matches {
		m.NotifiedAt = &now
		if err := s.DB.Model(m).Update("notified_at", now).Error; err != nil {
			log.Printf("Failed to mark match %d notified: %v", m.ID, err)
		}
	}
}
