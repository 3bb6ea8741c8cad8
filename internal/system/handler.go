package system

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfoliohub/internal/projects"
	"portfoliohub/internal/social"
	"portfoliohub/internal/videos"
	"portfoliohub/pkg/models"
)

type Handler struct {
	DB       *sql.DB
	Projects *projects.Repo
	Syncer   *projects.Syncer
	Videos   *videos.Repo
	Social   *social.Repo
}

func NewHandler(db *sql.DB, projectsRepo *projects.Repo, syncer *projects.Syncer, videosRepo *videos.Repo, socialRepo *social.Repo) *Handler {
	return &Handler{
		DB:       db,
		Projects: projectsRepo,
		Syncer:   syncer,
		Videos:   videosRepo,
		Social:   socialRepo,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	rg.GET("/health", h.health)              // GET /system/health
	rg.GET("/stats", h.stats)                // GET /system/stats
	rg.POST("/sync-all", adminMW, h.syncAll) // POST /system/sync-all
}

func (h *Handler) health(c *gin.Context) {
	if err := h.DB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) stats(c *gin.Context) {
	ctx := c.Request.Context()

	totalProjects, featuredProjects, err := h.Projects.Counts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch system statistics"})
		return
	}
	totalVideos, featuredVideos, err := h.Videos.Counts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch system statistics"})
		return
	}
	socialLinks, err := h.Social.CountActive(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch system statistics"})
		return
	}

	var lastSync any
	if t := h.Syncer.LastSyncedAt(ctx); t != nil {
		lastSync = t.UTC()
	}

	c.JSON(http.StatusOK, gin.H{
		"database": gin.H{
			"projects":          totalProjects,
			"featured_projects": featuredProjects,
			"videos":            totalVideos,
			"featured_videos":   featuredVideos,
			"social_links":      socialLinks,
		},
		"cache": gin.H{
			"projects_last_sync":   lastSync,
			"projects_cache_fresh": h.Syncer.IsFresh(ctx, 0),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// syncAll refreshes every external data source and reports one
// aggregated outcome. Partial success is still success: the sync is a
// best-effort cache refresh, not a transaction.
func (h *Handler) syncAll(c *gin.Context) {
	ctx := c.Request.Context()
	errs := []string{}

	projectsRes := h.Syncer.SyncNow(ctx)
	errs = append(errs, projectsRes.Errors...)

	videosRes := videos.Sync(ctx, h.Videos)
	errs = append(errs, videosRes.Errors...)

	synced := projectsRes.ProjectsSynced + videosRes.VideosSynced
	msg := fmt.Sprintf("sync completed: %d projects, %d videos",
		projectsRes.ProjectsSynced, videosRes.VideosSynced)
	if len(errs) > 0 {
		msg += fmt.Sprintf(" (with %d errors)", len(errs))
	}

	c.JSON(http.StatusOK, models.SyncResult{
		Success:        synced > 0,
		Message:        msg,
		ProjectsSynced: projectsRes.ProjectsSynced,
		VideosSynced:   videosRes.VideosSynced,
		Errors:         errs,
	})
}
