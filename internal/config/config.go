// Load envs from .env
// Load scoring weights from YAML
// Validate config
// Provide default values

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	Port            string
	WebhookSecret   string
	RateLimitPerMin int
	RateLimitBurst  int

	// Database
	DatabaseURL string

	// N8N integration
	N8NWebhookURL string

	// Alerts
	AlertInterval  int // minutes between alert sweeps
	GmailEnabled   bool
	TelegramToken  string
	TelegramChatID int64

	// LLM extraction (optional)
	GeminiAPIKey string

	// Matching / dedup knobs
	Scoring ScoringConfig
}

// ScoringConfig holds the weights and thresholds for duplicate detection
// and preference matching. Defaults are tuned for job-board postings; a
// configs/scoring.yaml file can override them per deployment.
type ScoringConfig struct {
	Duplicate DuplicateWeights `yaml:"duplicate"`
	Match     MatchWeights     `yaml:"match"`
}

type DuplicateWeights struct {
	TitleWeight    float64 `yaml:"title_weight"`
	CompanyWeight  float64 `yaml:"company_weight"`
	LocationWeight float64 `yaml:"location_weight"`
	DomainBonus    float64 `yaml:"domain_bonus"`
	Threshold      float64 `yaml:"threshold"`
}

type MatchWeights struct {
	KeywordPoints    int `yaml:"keyword_points"`    // per matched keyword
	KeywordCap       int `yaml:"keyword_cap"`       // max points from keywords
	LocationExact    int `yaml:"location_exact"`    // exact location match
	LocationPartial  int `yaml:"location_partial"`  // contains / remote
	SalaryOverlap    int `yaml:"salary_overlap"`    // ranges overlap
	ExperienceAgrees int `yaml:"experience_agrees"` // levels agree
	Threshold        int `yaml:"threshold"`         // min score to store a match
	AlertThreshold   int `yaml:"alert_threshold"`   // min score to push an alert
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		WebhookSecret:   os.Getenv("WEBHOOK_SECRET"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		N8NWebhookURL:   os.Getenv("N8N_WEBHOOK_URL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 30),
		AlertInterval:   getEnvInt("ALERT_INTERVAL_MIN", 5),
		GmailEnabled:    os.Getenv("GMAIL_ALERTS_ENABLED") == "true",
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	cfg.Scoring = DefaultScoring()
	path := getEnv("SCORING_CONFIG", "configs/scoring.yaml")
	if err := cfg.Scoring.loadFile(path); err != nil {
		log.Printf("Warning: using default scoring config: %v", err)
	}
	if err := cfg.Scoring.Validate(); err != nil {
		log.Fatalf("Invalid scoring config: %v", err)
	}

	// Required fields
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.WebhookSecret == "" {
		log.Fatal("WEBHOOK_SECRET is required")
	}

	return cfg
}

// DefaultScoring returns the documented default weights.
func DefaultScoring() ScoringConfig {
	var s ScoringConfig
	s.Duplicate.TitleWeight = 0.5
	s.Duplicate.CompanyWeight = 0.3
	s.Duplicate.LocationWeight = 0.2
	s.Duplicate.DomainBonus = 0.05
	s.Duplicate.Threshold = 0.85
	s.Match.KeywordPoints = 15
	s.Match.KeywordCap = 60
	s.Match.LocationExact = 20
	s.Match.LocationPartial = 10
	s.Match.SalaryOverlap = 10
	s.Match.ExperienceAgrees = 10
	s.Match.Threshold = 40
	s.Match.AlertThreshold = 60
	return s
}

func (s *ScoringConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, s)
}

// Validate rejects weight sets the scorer cannot work with.
func (s *ScoringConfig) Validate() error {
	d := s.Duplicate
	sum := d.TitleWeight + d.CompanyWeight + d.LocationWeight
	if sum <= 0 {
		return fmt.Errorf("duplicate field weights must sum to a positive value, got %.2f", sum)
	}
	if d.Threshold <= 0 || d.Threshold > 1 {
		return fmt.Errorf("duplicate threshold must be in (0, 1], got %.2f", d.Threshold)
	}
	if s.Match.Threshold < 0 || s.Match.Threshold > 100 {
		return fmt.Errorf("match threshold must be in [0, 100], got %d", s.Match.Threshold)
	}
	if s.Match.AlertThreshold < s.Match.Threshold {
		return fmt.Errorf("alert threshold (%d) cannot be below match threshold (%d)",
			s.Match.AlertThreshold, s.Match.Threshold)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}
