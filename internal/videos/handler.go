package videos

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfoliohub/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	rg.GET("", h.list)                // GET /videos
	rg.GET("/featured", h.featured)   // GET /videos/featured
	rg.POST("/sync", adminMW, h.sync) // POST /videos/sync
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch videos"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) featured(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch featured videos"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) sync(c *gin.Context) {
	c.JSON(http.StatusOK, Sync(c.Request.Context(), h.Repo))
}

// Sync stamps and merges the mock video set. Same degrade-to-zero
// contract as the project sync: storage failure becomes a zero-count
// result, never a 5xx.
func Sync(ctx context.Context, repo *Repo) models.SyncResult {
	vids := MockVideos()
	now := time.Now().UTC()
	for i := range vids {
		vids[i].CachedAt = now
	}

	count, err := repo.BulkUpsert(ctx, vids)
	if err != nil {
		log.Printf("[videos] upsert failed: %v", err)
		return models.SyncResult{
			Success: false,
			Message: "failed to store videos",
			Errors:  []string{err.Error()},
		}
	}

	return models.SyncResult{
		Success:      true,
		Message:      fmt.Sprintf("successfully synced %d videos", count),
		VideosSynced: count,
		Errors:       []string{},
	}
}
