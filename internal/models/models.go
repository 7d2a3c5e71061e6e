package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	APIKey string `gorm:"uniqueIndex;not null" json:"-"`

	// Alert delivery channels. Gmail uses the account in Email; Telegram
	// needs the chat ID the user registered with the bot.
	EmailAlerts    bool  `gorm:"default:true" json:"email_alerts"`
	TelegramChatID int64 `json:"telegram_chat_id"`

	// 'omitempty' prevents infinite loops when fetching a User -> Preferences -> ...
	Preferences []JobPreference `json:"preferences,omitempty"`
}

// JobPreference is a saved search profile: what the user wants scraped
// and what the matcher scores postings against.
type JobPreference struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign Key
	UserID uint `gorm:"index;not null" json:"user_id"`

	Name            string   `gorm:"not null" json:"name"`
	Keywords        []string `gorm:"serializer:json" json:"keywords"`
	Location        string   `json:"location"`
	Remote          bool     `json:"remote"`
	SalaryMin       int      `json:"salary_min"`
	SalaryMax       int      `json:"salary_max"`
	SalaryPeriod    string   `json:"salary_period"`    // "year" or "day"
	ContractType    string   `json:"contract_type"`    // permanent, contract, internship, ""
	ExperienceLevel string   `json:"experience_level"` // entry, mid, senior, ""
	Active          bool     `gorm:"default:true" json:"active"`
}

// Posting is a deduplicated scraped job posting. Duplicate detection
// guarantees at most one row per real-world posting; matches reference it.
type Posting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title        string `gorm:"not null" json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `gorm:"type:text" json:"description"`
	URL          string `json:"url"`
	CanonicalURL string `gorm:"uniqueIndex" json:"canonical_url"`
	Source       string `json:"source"` // scrape source, e.g. "linkedin", "indeed"

	SalaryRaw       string `json:"salary_raw"`
	SalaryMin       int    `json:"salary_min"`
	SalaryMax       int    `json:"salary_max"`
	SalaryPeriod    string `json:"salary_period"`
	ContractType    string `json:"contract_type"`
	ExperienceLevel string `json:"experience_level"`

	// Consolidation bookkeeping: how many scrapes resolved to this row
	// and when it was last seen by any source.
	SourceCount int       `gorm:"default:1" json:"source_count"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}

// JobMatch links a posting to the preference profile it scored against,
// carrying the application-status lifecycle.
type JobMatch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign Keys
	UserID       uint `gorm:"index;not null" json:"user_id"`
	PreferenceID uint `gorm:"index;not null" json:"preference_id"`
	PostingID    uint `gorm:"index;not null" json:"posting_id"`
	// Association: GORM needs Preload() to fill this
	Posting Posting `json:"posting"`

	Score           int        `json:"score"`
	MatchedKeywords []string   `gorm:"serializer:json" json:"matched_keywords"`
	Status          string     `gorm:"default:'NEW'" json:"status"`
	NotifiedAt      *time.Time `json:"notified_at"`
}

// ProcessedBatch records webhook batch IDs already ingested, so an N8N
// retry of the same delivery is a no-op.
type ProcessedBatch struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
}
