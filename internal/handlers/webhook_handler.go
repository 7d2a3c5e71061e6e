package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobsentry/jobsentry-api/internal/dtos"
	"github.com/jobsentry/jobsentry-api/internal/services"
)

type WebhookHandler struct {
	WebhookService *services.WebhookService
}

func NewWebhookHandler(w *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{WebhookService: w}
}

// ScrapeResults is the N8N callback: a batch of scraped postings to run
// through normalize -> dedup -> match.
func (h *WebhookHandler) ScrapeResults(c *gin.Context) {
	var req dtos.ScrapeResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	resp, err := h.WebhookService.IngestBatch(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ingest failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
