package videos

import (
	"time"

	"github.com/google/uuid"

	"portfoliohub/pkg/models"
)

// MockVideos returns the placeholder video set used until a real
// YouTube Data API integration lands. Keyed by youtube_id, so
// re-syncing overwrites rather than duplicates.
// TODO: replace with YouTube Data API v3 once a channel key is provisioned.
func MockVideos() []models.Video {
	now := time.Now().UTC()
	return []models.Video{
		{
			ID:          uuid.NewString(),
			YoutubeID:   "dQw4w9WgXcQ",
			Title:       "Building AI-Powered Applications",
			Description: "Deep dive into creating intelligent software solutions",
			Thumbnail:   "https://images.unsplash.com/photo-1555949963-aa79dcee981c?w=600&h=400&fit=crop",
			PublishedAt: now,
			ViewCount:   25000,
			Duration:    "15:32",
			IsFeatured:  true,
		},
		{
			ID:          uuid.NewString(),
			YoutubeID:   "dQw4w9WgXcQ2",
			Title:       "Future of Cybersecurity",
			Description: "Exploring emerging threats and defense mechanisms",
			Thumbnail:   "https://images.unsplash.com/photo-1563206767-5b18f218e8de?w=600&h=400&fit=crop",
			PublishedAt: now,
			ViewCount:   18000,
			Duration:    "22:45",
			IsFeatured:  true,
		},
		{
			ID:          uuid.NewString(),
			YoutubeID:   "dQw4w9WgXcQ3",
			Title:       "Quantum Computing Explained",
			Description: "Making quantum concepts accessible to developers",
			Thumbnail:   "https://images.unsplash.com/photo-1635070041078-e363dbe005cb?w=600&h=400&fit=crop",
			PublishedAt: now,
			ViewCount:   32000,
			Duration:    "18:20",
			IsFeatured:  true,
		},
	}
}
