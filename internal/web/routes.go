// Package web serves the activity library over HTTP.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sstent/trackedit/internal/database"
	"github.com/sstent/trackedit/internal/sync"
)

// Syncer runs an inbox import.
type Syncer interface {
	Sync(ctx context.Context) error
}

type WebHandler struct {
	db     database.Database
	syncer Syncer
}

func NewWebHandler(db database.Database, syncer Syncer) *WebHandler {
	return &WebHandler{
		db:     db,
		syncer: syncer,
	}
}

// NewRouter returns a gin engine with the handler's routes registered.
func NewRouter(h *WebHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	h.RegisterRoutes(router)
	return router
}

func (h *WebHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/", h.Index)
	router.GET("/activities", h.ActivityList)
	router.GET("/activities/:id", h.ActivityDetail)
	router.GET("/activities/:id/points", h.ActivityPoints)
	router.POST("/sync", h.Sync)
}

func (h *WebHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *WebHandler) Index(c *gin.Context) {
	stats, err := h.db.GetStats()
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ActivityList pages through the activities, newest first. The type,
// from and to query parameters narrow the list.
func (h *WebHandler) ActivityList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	filters := database.ActivityFilters{
		ActivityType: c.Query("type"),
		SortBy:       c.Query("sort"),
		SortOrder:    c.Query("order"),
		Limit:        limit,
		Offset:       offset,
	}
	for param, dst := range map[string]**time.Time{"from": &filters.DateFrom, "to": &filters.DateTo} {
		v := c.Query(param)
		if v == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param + " date, expected YYYY-MM-DD"})
			return
		}
		*dst = &t
	}

	activities, err := h.db.FilterActivities(filters)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if activities == nil {
		activities = []database.Activity{}
	}

	c.JSON(http.StatusOK, activities)
}

func (h *WebHandler) activityID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *WebHandler) ActivityDetail(c *gin.Context) {
	id, ok := h.activityID(c)
	if !ok {
		return
	}

	activity, err := h.db.GetActivity(id)
	if errors.Is(err, database.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (h *WebHandler) ActivityPoints(c *gin.Context) {
	id, ok := h.activityID(c)
	if !ok {
		return
	}

	if _, err := h.db.GetActivity(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	points, err := h.db.GetTrackPoints(id)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if points == nil {
		points = []database.TrackPoint{}
	}

	c.JSON(http.StatusOK, points)
}

func (h *WebHandler) Sync(c *gin.Context) {
	err := h.syncer.Sync(c.Request.Context())
	if errors.Is(err, sync.ErrSyncInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
