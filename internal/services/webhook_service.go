package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jobsentry/jobsentry-api/internal/dtos"
	"github.com/jobsentry/jobsentry-api/internal/models"
	"github.com/jobsentry/jobsentry-api/internal/normalize"
	"gorm.io/gorm"
)

// WebhookService ingests N8N scrape callbacks and triggers outbound
// scrape runs.
type WebhookService struct {
	DB            *gorm.DB
	Duplicates    *DuplicateService
	Matcher       *MatchService
	N8NWebhookURL string
	HTTPClient    *http.Client
}

func NewWebhookService(db *gorm.DB, dup *DuplicateService, matcher *MatchService, n8nURL string) *WebhookService {
	return &WebhookService{
		DB:            db,
		Duplicates:    dup,
		Matcher:       matcher,
		N8NWebhookURL: n8nURL,
		HTTPClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// IngestBatch runs each scraped posting through the pipeline:
// normalize -> duplicate check -> store -> match. Batches already seen
// (same BatchID) are acknowledged without reprocessing.
func (s *WebhookService) IngestBatch(req *dtos.ScrapeResultsRequest) (*dtos.ScrapeResultsResponse, error) {
	resp := &dtos.ScrapeResultsResponse{
		BatchID:  req.BatchID,
		Received: len(req.Jobs),
	}

	// Replay protection: N8N retries deliveries on timeouts. A failed
	// check must not read as "fresh batch".
	var count int64
	if err := s.DB.Model(&models.ProcessedBatch{}).Where("id = ?", req.BatchID).Count(&count).Error; err != nil {
		return resp, fmt.Errorf("failed to check batch %s: %w", req.BatchID, err)
	}
	if count > 0 {
		log.Printf("Batch %s already processed, acknowledging without work", req.BatchID)
		resp.Skipped = len(req.Jobs)
		return resp, nil
	}

	log.Printf("Ingesting batch %s: %d posting(s)", req.BatchID, len(req.Jobs))

	for i := range req.Jobs {
		if err := s.ingestOne(&req.Jobs[i], req.PreferenceID, resp); err != nil {
			// One bad posting must not sink the batch.
			log.Printf("Batch %s: posting %q skipped: %v", req.BatchID, req.Jobs[i].Title, err)
			resp.Skipped++
		}
	}

	if err := s.DB.Create(&models.ProcessedBatch{ID: req.BatchID}).Error; err != nil {
		return resp, fmt.Errorf("failed to record batch %s: %w", req.BatchID, err)
	}

	log.Printf("Batch %s done: %d stored, %d duplicates, %d matched, %d skipped",
		req.BatchID, resp.Stored, resp.Duplicates, resp.Matched, resp.Skipped)
	return resp, nil
}

func (s *WebhookService) ingestOne(raw *dtos.ScrapedJob, preferenceID uint, resp *dtos.ScrapeResultsResponse) error {
	posting := normalizeScraped(raw)

	// --- STEP 1: DUPLICATE CHECK ---
	dup, err := s.Duplicates.CheckPosting(posting)
	if err != nil {
		return err
	}
	if dup.IsDuplicate {
		resp.Duplicates++
		if err := s.Duplicates.Consolidate(dup.Existing, posting); err != nil {
			return err
		}
		// The consolidated row may still be new to this profile.
		posting = dup.Existing
	} else {
		// --- STEP 2: STORE ---
		if err := s.DB.Create(posting).Error; err != nil {
			return fmt.Errorf("failed to store posting: %w", err)
		}
		resp.Stored++
	}
	// --- STEP 3: MATCH ---
	matches, err := s.Matcher.MatchPosting(posting, preferenceID)
	if err != nil {
		return err
	}
	resp.Matched += len(matches)
	return nil
}

// normalizeScraped maps a raw scraped job onto a Posting with canonical
// comparison fields filled in.
func normalizeScraped(raw *dtos.ScrapedJob) *models.Posting {
	salary := normalize.ParseSalary(raw.Salary)
	return &models.Posting{
		Title:           normalize.CollapseSpaces(raw.Title),
		Company:         normalize.CollapseSpaces(raw.Company),
		Location:        normalize.CollapseSpaces(raw.Location),
		Description:     raw.Description,
		URL:             raw.URL,
		CanonicalURL:    normalize.CanonicalURL(raw.URL),
		Source:          raw.Source,
		SalaryRaw:       raw.Salary,
		SalaryMin:       salary.Min,
		SalaryMax:       salary.Max,
		SalaryPeriod:    salary.Period,
		ContractType:    normalize.ContractType(raw.ContractType),
		ExperienceLevel: normalize.ExperienceLevel(raw.ExperienceLevel),
		SourceCount:     1,
		LastSeenAt:      time.Now(),
	}
}

// TriggerScrape asks N8N to run a scrape for one preference profile.
// Fire-and-forget: the results come back later through IngestBatch.
func (s *WebhookService) TriggerScrape(ctx context.Context, pref *models.JobPreference) (string, error) {
	if s.N8NWebhookURL == "" {
		return "", fmt.Errorf("N8N_WEBHOOK_URL is not configured")
	}

	batchID := uuid.NewString()
	payload := map[string]any{
		"batch_id":      batchID,
		"preference_id": pref.ID,
		"keywords":      pref.Keywords,
		"location":      pref.Location,
		"remote":        pref.Remote,
		"contract_type": pref.ContractType,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.N8NWebhookURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to reach N8N: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 300 {
		return "", fmt.Errorf("N8N webhook returned %s", httpResp.Status)
	}

	log.Printf("Triggered scrape batch %s for preference %d", batchID, pref.ID)
	return batchID, nil
}
