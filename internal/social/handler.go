package social

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfoliohub/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	rg.GET("", h.list)                 // GET /social-links
	rg.POST("", adminMW, h.create)     // POST /social-links
	rg.PUT("/:id", adminMW, h.update)  // PUT /social-links/:id
}

func (h *Handler) list(c *gin.Context) {
	links, err := h.Repo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch social links"})
		return
	}
	c.JSON(http.StatusOK, links)
}

type createReq struct {
	Platform string `json:"platform"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	Position int    `json:"position"`
	IsActive *bool  `json:"is_active"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	req.Platform = strings.TrimSpace(req.Platform)
	req.URL = strings.TrimSpace(req.URL)
	if req.Platform == "" || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "platform and url required"})
		return
	}
	if req.Name == "" {
		req.Name = req.Platform
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	l := models.SocialLink{
		ID:        uuid.NewString(),
		Platform:  req.Platform,
		Name:      req.Name,
		URL:       req.URL,
		Icon:      req.Icon,
		Position:  req.Position,
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.Repo.Create(c.Request.Context(), l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create social link"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": l.ID})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch social link"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "social link not found"})
		return
	}

	var upd models.SocialLinkUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if upd.Platform != nil {
		existing.Platform = *upd.Platform
	}
	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.URL != nil {
		existing.URL = *upd.URL
	}
	if upd.Icon != nil {
		existing.Icon = *upd.Icon
	}
	if upd.Position != nil {
		existing.Position = *upd.Position
	}
	if upd.IsActive != nil {
		existing.IsActive = *upd.IsActive
	}

	ok, err := h.Repo.Update(c.Request.Context(), *existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update social link"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "social link not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "social link updated"})
}
