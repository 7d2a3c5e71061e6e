package services

import (
	"testing"

	"github.com/jobsentry/jobsentry-api/internal/dtos"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeScraped(t *testing.T) {
	raw := dtos.ScrapedJob{
		Title:           "  Senior   Go Engineer ",
		Company:         "Acme  Corp",
		Location:        " London ",
		Description:     "Build backend services.",
		URL:             "https://www.acme.io/jobs/42?utm_source=n8n",
		Source:          "acme-careers",
		Salary:          "£90k - £110k per annum",
		ContractType:    "Full-Time",
		ExperienceLevel: "Senior",
	}

	p := normalizeScraped(&raw)

	assert.Equal(t, "Senior Go Engineer", p.Title)
	assert.Equal(t, "Acme Corp", p.Company)
	assert.Equal(t, "London", p.Location)
	assert.Equal(t, "acme.io/jobs/42", p.CanonicalURL)
	assert.Equal(t, "https://www.acme.io/jobs/42?utm_source=n8n", p.URL, "original URL kept for display")
	assert.Equal(t, 90000, p.SalaryMin)
	assert.Equal(t, 110000, p.SalaryMax)
	assert.Equal(t, "year", p.SalaryPeriod)
	assert.Equal(t, "permanent", p.ContractType)
	assert.Equal(t, "senior", p.ExperienceLevel)
	assert.Equal(t, 1, p.SourceCount)
	assert.False(t, p.LastSeenAt.IsZero())
}

func TestNormalizeScrapedMinimal(t *testing.T) {
	raw := dtos.ScrapedJob{Title: "Go Developer", URL: "boards.io/j/1"}

	p := normalizeScraped(&raw)

	assert.Equal(t, "boards.io/j/1", p.CanonicalURL)
	assert.Zero(t, p.SalaryMin)
	assert.Empty(t, p.ContractType)
	assert.Empty(t, p.ExperienceLevel)
}
