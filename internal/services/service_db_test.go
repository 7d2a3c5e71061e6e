package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jobsentry/jobsentry-api/internal/dtos"
	"github.com/jobsentry/jobsentry-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.JobPreference{},
		&models.Posting{},
		&models.JobMatch{},
		&models.ProcessedBatch{},
	))
	return db
}

func seedUserWithPreference(t *testing.T, db *gorm.DB) *models.JobPreference {
	t.Helper()
	user := models.User{Email: "dev@example.com", APIKey: "jsk_test_key"}
	require.NoError(t, db.Create(&user).Error)
	pref := models.JobPreference{
		UserID:   user.ID,
		Name:     "go roles",
		Keywords: []string{"go"},
		Active:   true,
	}
	require.NoError(t, db.Create(&pref).Error)
	return &pref
}

func TestMatchPostingIdempotent(t *testing.T) {
	db := newTestDB(t)
	w := defaultMatchWeights()
	w.Threshold = 10
	matcher := NewMatchService(db, w)
	seedUserWithPreference(t, db)

	posting := models.Posting{Title: "Go Engineer", CanonicalURL: "boards.io/j/1", SourceCount: 1}
	require.NoError(t, db.Create(&posting).Error)

	created, err := matcher.MatchPosting(&posting, 0)
	require.NoError(t, err)
	require.Len(t, created, 1)

	// A re-scraped posting must not resurface as a new match.
	again, err := matcher.MatchPosting(&posting, 0)
	require.NoError(t, err)
	assert.Empty(t, again)

	var count int64
	require.NoError(t, db.Model(&models.JobMatch{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCheckPostingExactURL(t *testing.T) {
	db := newTestDB(t)
	dup := NewDuplicateService(db, defaultDupWeights())

	stored := models.Posting{
		Title:        "Go Engineer",
		Company:      "Acme",
		CanonicalURL: "boards.io/j/7",
		SourceCount:  1,
	}
	require.NoError(t, db.Create(&stored).Error)

	// Same canonical URL is a duplicate regardless of field drift.
	res, err := dup.CheckPosting(&models.Posting{
		Title:        "Completely Different Title",
		CanonicalURL: "boards.io/j/7",
	})
	require.NoError(t, err)
	assert.True(t, res.IsDuplicate)
	assert.True(t, res.Exact)
	require.NotNil(t, res.Existing)
	assert.Equal(t, stored.ID, res.Existing.ID)

	// A miss falls through to the fuzzy scan.
	res, err = dup.CheckPosting(&models.Posting{
		Title:        "Product Designer",
		Company:      "Globex",
		CanonicalURL: "boards.io/j/8",
	})
	require.NoError(t, err)
	assert.False(t, res.IsDuplicate)
}

func TestIngestBatchPipeline(t *testing.T) {
	db := newTestDB(t)
	w := defaultMatchWeights()
	w.Threshold = 10
	dup := NewDuplicateService(db, defaultDupWeights())
	hooks := NewWebhookService(db, dup, NewMatchService(db, w), "")
	seedUserWithPreference(t, db)

	req := &dtos.ScrapeResultsRequest{
		BatchID: "batch-1",
		Jobs: []dtos.ScrapedJob{
			{Title: "Go Engineer", Company: "Acme", URL: "https://www.boards.io/j/1?utm_source=x"},
			// Same posting behind a differently-tracked URL.
			{Title: "Go Engineer", Company: "Acme", URL: "http://boards.io/j/1/"},
		},
	}
	resp, err := hooks.IngestBatch(req)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Received)
	assert.Equal(t, 1, resp.Stored)
	assert.Equal(t, 1, resp.Duplicates)
	assert.Equal(t, 1, resp.Matched)

	var posting models.Posting
	require.NoError(t, db.Where("canonical_url = ?", "boards.io/j/1").First(&posting).Error)
	assert.Equal(t, 2, posting.SourceCount)

	// Replayed deliveries are acknowledged without work.
	replay, err := hooks.IngestBatch(req)
	require.NoError(t, err)
	assert.Equal(t, 2, replay.Skipped)
	assert.Zero(t, replay.Stored)
	assert.Zero(t, replay.Matched)
}

func TestIngestBatchReplayCheckFailure(t *testing.T) {
	db := newTestDB(t)
	dup := NewDuplicateService(db, defaultDupWeights())
	hooks := NewWebhookService(db, dup, NewMatchService(db, defaultMatchWeights()), "")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// An unreadable ProcessedBatch table must surface as an error, not
	// read as "fresh batch".
	_, err = hooks.IngestBatch(&dtos.ScrapeResultsRequest{BatchID: "batch-x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check batch")
}
