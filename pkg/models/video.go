package models

import "time"

// Video is a cached YouTube video entry. YoutubeID is the natural
// key used for upserts.
type Video struct {
	ID          string    `json:"id"`
	YoutubeID   string    `json:"youtube_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	PublishedAt time.Time `json:"published_at"`
	ViewCount   int       `json:"view_count"`
	Duration    string    `json:"duration"`
	IsFeatured  bool      `json:"is_featured"`
	CachedAt    time.Time `json:"cached_at"`
}
