package profile

import (
	"net/http"

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
	rg.GET("", h.get)           // GET /profile
	rg.PUT("", adminMW, h.update) // PUT /profile
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.Repo.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	existing, err := h.Repo.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	// only provided fields change
	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.Title != nil {
		existing.Title = *upd.Title
	}
	if upd.Bio != nil {
		existing.Bio = *upd.Bio
	}
	if upd.Location != nil {
		existing.Location = *upd.Location
	}
	if upd.Specialties != nil {
		existing.Specialties = *upd.Specialties
	}
	if upd.Tools != nil {
		existing.Tools = *upd.Tools
	}
	if upd.GithubUsername != nil {
		existing.GithubUsername = *upd.GithubUsername
	}
	if upd.YoutubeChannelID != nil {
		existing.YoutubeChannelID = *upd.YoutubeChannelID
	}

	if err := h.Repo.Update(c.Request.Context(), *existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "profile updated"})
}
