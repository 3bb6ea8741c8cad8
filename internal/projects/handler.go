package projects

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Repo   *Repo
	Syncer *Syncer
}

func NewHandler(repo *Repo, syncer *Syncer) *Handler {
	return &Handler{Repo: repo, Syncer: syncer}
}

// RegisterRoutes wires the project endpoints. adminMW guards the
// manual sync trigger; reads are public.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	rg.GET("", h.list)                  // GET /projects
	rg.GET("/featured", h.featured)     // GET /projects/featured
	rg.GET("/stats", h.stats)           // GET /projects/stats
	rg.POST("/sync", adminMW, h.sync)   // POST /projects/sync
}

func (h *Handler) list(c *gin.Context) {
	// freshness-gated background sync; the read below never waits on it
	h.Syncer.SyncIfStale(c.Request.Context(), 0)

	items, err := h.Repo.List(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) featured(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch featured projects"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) sync(c *gin.Context) {
	// always a structured outcome, never a 5xx: a failed sync is a
	// reportable condition, not a server fault
	res := h.Syncer.SyncNow(c.Request.Context())
	c.JSON(http.StatusOK, res)
}

func (h *Handler) stats(c *gin.Context) {
	total, featured, err := h.Repo.Counts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch project statistics"})
		return
	}

	var lastSync any
	if t := h.Syncer.LastSyncedAt(c.Request.Context()); t != nil {
		lastSync = t.UTC()
	}

	c.JSON(http.StatusOK, gin.H{
		"total_projects":    total,
		"featured_projects": featured,
		"last_sync":         lastSync,
		"cache_fresh":       h.Syncer.IsFresh(c.Request.Context(), 0),
	})
}
