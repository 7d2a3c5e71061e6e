package dtos

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

type MatchStatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// ScrapedJob is one posting as N8N delivers it: raw strings, nothing
// normalized yet.
type ScrapedJob struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"required"`
	Source      string `json:"source"`

	// Optional Fields
	Salary          string `json:"salary"`
	ContractType    string `json:"contract_type"`
	ExperienceLevel string `json:"experience_level"`
}

// ScrapeResultsRequest is the N8N callback payload. PreferenceID scopes
// matching to a single profile; zero means match against every active
// profile.
type ScrapeResultsRequest struct {
	BatchID      string       `json:"batch_id" binding:"required"`
	PreferenceID uint         `json:"preference_id"`
	Jobs         []ScrapedJob `json:"jobs" binding:"required,dive"`
}

// ScrapeResultsResponse summarizes what the ingest pipeline did with a
// batch.
type ScrapeResultsResponse struct {
	BatchID    string `json:"batch_id"`
	Received   int    `json:"received"`
	Duplicates int    `json:"duplicates"`
	Stored     int    `json:"stored"`
	Matched    int    `json:"matched"`
	Skipped    int    `json:"skipped"`
}

type TriggerScrapeRequest struct {
	PreferenceID uint `json:"preference_id" binding:"required"`
}
