package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/metrics"
	"github.com/julianstephens/tracklit/internal/service"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options wires the router to its services
type Options struct {
	Moods       *service.MoodService
	Habits      *service.HabitService
	Store       Pinger
	CORSOrigins []string
	// MoodWindowDays is used when GET /api/moods has no days parameter
	MoodWindowDays int
}

// NewRouter builds the HTTP handler for the tracking API
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger())
	r.Use(metrics.Middleware())
	r.Use(cors(opts.CORSOrigins))

	h := &handlers{
		moods:      opts.Moods,
		habits:     opts.Habits,
		moodWindow: opts.MoodWindowDays,
	}

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)
	r.HEAD("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/healthz", health)
	r.HEAD("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), constants.ReadinessPingTimeout)
		defer cancel()

		if opts.Store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_not_ready"})
			return
		}
		if err := opts.Store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group(constants.APIPrefix)
	{
		api.GET("/", h.root)

		api.POST("/moods", h.createMood)
		api.GET("/moods", h.listMoods)
		api.GET("/moods/summary", h.moodSummary)

		api.POST("/habits", h.createHabit)
		api.GET("/habits", h.listHabits)
		api.DELETE("/habits/:id", h.deleteHabit)
		api.POST("/habits/:id/toggle", h.toggleHabit)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
