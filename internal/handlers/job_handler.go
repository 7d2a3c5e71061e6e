package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobsentry/jobsentry-api/internal/dtos"
	"github.com/jobsentry/jobsentry-api/internal/services"
	"gorm.io/gorm"
)

type JobHandler struct {
	JobService *services.JobService
	LLMService *services.LLMService
}

func NewJobHandler(j *services.JobService, llm *services.LLMService) *JobHandler {
	return &JobHandler{
		JobService: j,
		LLMService: llm,
	}
}

// ListMatches supports ?preference_id=, ?status= and ?min_score= query
// filters.
func (h *JobHandler) ListMatches(c *gin.Context) {
	var filter services.MatchFilter
	if v := c.Query("preference_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preference_id"})
			return
		}
		filter.PreferenceID = uint(id)
	}
	filter.Status = c.Query("status")
	if v := c.Query("min_score"); v != "" {
		score, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_score"})
			return
		}
		filter.MinScore = score
	}

	matches, err := h.JobService.ListMatches(currentUser(c).ID, filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to list matches: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, matches)
}

func (h *JobHandler) GetMatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	match, err := h.JobService.GetMatch(currentUser(c).ID, id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Match not found"})
		return
	}
	c.JSON(http.StatusOK, match)
}

// UpdateStatus moves a match through the application lifecycle.
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dtos.MatchStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	match, err := h.JobService.UpdateStatus(currentUser(c).ID, id, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, match)
}

func (h *JobHandler) DeleteMatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.JobService.DeleteMatch(currentUser(c).ID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete match: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ExtractJob is the POST /jobs/extract endpoint: raw posting HTML in,
// structured job JSON out.
func (h *JobHandler) ExtractJob(c *gin.Context) {
	if h.LLMService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Extraction is not configured"})
		return
	}

	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	extractedJSON, err := h.LLMService.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Extraction failed: " + err.Error()})
		return
	}

	// json.RawMessage prevents Go from escaping the inner JSON string
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(extractedJSON),
	})
}
