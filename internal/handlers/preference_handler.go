package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobsentry/jobsentry-api/internal/dtos"
	"github.com/jobsentry/jobsentry-api/internal/services"
	"gorm.io/gorm"
)

type PreferenceHandler struct {
	PreferenceService *services.PreferenceService
	WebhookService    *services.WebhookService
}

func NewPreferenceHandler(p *services.PreferenceService, w *services.WebhookService) *PreferenceHandler {
	return &PreferenceHandler{
		PreferenceService: p,
		WebhookService:    w,
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (h *PreferenceHandler) Create(c *gin.Context) {
	var req dtos.PreferenceCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	pref, err := h.PreferenceService.CreatePreference(currentUser(c).ID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create preference: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pref)
}

func (h *PreferenceHandler) List(c *gin.Context) {
	prefs, err := h.PreferenceService.ListPreferences(currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list preferences: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *PreferenceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pref, err := h.PreferenceService.GetPreference(currentUser(c).ID, id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Preference not found"})
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *PreferenceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dtos.PreferenceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	pref, err := h.PreferenceService.UpdatePreference(currentUser(c).ID, id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Preference not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update preference: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *PreferenceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.PreferenceService.DeletePreference(currentUser(c).ID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Preference not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete preference: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// TriggerScrape asks N8N to run the profile's search now instead of
// waiting for its schedule.
func (h *PreferenceHandler) TriggerScrape(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pref, err := h.PreferenceService.GetPreference(currentUser(c).ID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preference not found"})
		return
	}

	batchID, err := h.WebhookService.TriggerScrape(c.Request.Context(), pref)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to trigger scrape: " + err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"batch_id": batchID})
}
