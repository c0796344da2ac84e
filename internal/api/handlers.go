package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/tracklit/internal/metrics"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/service"
)

type handlers struct {
	moods      *service.MoodService
	habits     *service.HabitService
	moodWindow int
}

type createMoodRequest struct {
	MoodValue *int   `json:"moodValue"`
	MoodLabel string `json:"moodLabel"`
	MoodEmoji string `json:"moodEmoji"`
	Notes     string `json:"notes"`
}

type createHabitRequest struct {
	Name string `json:"name"`
}

type toggleRequest struct {
	Date string `json:"date"`
}

func (h *handlers) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "tracklit API"})
}

func (h *handlers) createMood(c *gin.Context) {
	var req createMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.MoodValue == nil {
		badRequest(c, "moodValue is required")
		return
	}

	id, err := h.moods.Create(c.Request.Context(), models.MoodInput{
		MoodValue: *req.MoodValue,
		MoodLabel: req.MoodLabel,
		MoodEmoji: req.MoodEmoji,
		Notes:     req.Notes,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	metrics.RecordMoodCreated()
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Mood entry created"})
}

// windowParam reads ?days=N, falling back to the configured window
func (h *handlers) windowParam(c *gin.Context) (int, bool) {
	raw, ok := c.GetQuery("days")
	if !ok || raw == "" {
		return h.moodWindow, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, "days must be an integer")
		return 0, false
	}
	return days, true
}

func (h *handlers) listMoods(c *gin.Context) {
	days, ok := h.windowParam(c)
	if !ok {
		return
	}

	moods, err := h.moods.List(c.Request.Context(), days)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, moods)
}

func (h *handlers) moodSummary(c *gin.Context) {
	days, ok := h.windowParam(c)
	if !ok {
		return
	}

	summary, err := h.moods.Summarize(c.Request.Context(), days)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handlers) createHabit(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	id, err := h.habits.Create(c.Request.Context(), req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Habit created"})
}

func (h *handlers) listHabits(c *gin.Context) {
	habits, err := h.habits.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func habitIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid habit id")
		return 0, false
	}
	return id, true
}

func (h *handlers) deleteHabit(c *gin.Context) {
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	if err := h.habits.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted"})
}

func (h *handlers) toggleHabit(c *gin.Context) {
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	// The body is optional; an empty one toggles today
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.habits.Toggle(c.Request.Context(), id, req.Date)
	if err != nil {
		abortWithError(c, err)
		return
	}

	metrics.RecordToggle(result.Completed)
	c.JSON(http.StatusOK, gin.H{
		"message":   "Habit completion toggled",
		"completed": result.Completed,
		"date":      result.Date,
	})
}
