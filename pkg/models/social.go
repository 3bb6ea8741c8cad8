package models

import "time"

// SocialLink is one entry in the footer/social section.
// Position controls display order, lowest first.
type SocialLink struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Icon      string    `json:"icon"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SocialLinkUpdate carries a partial social link update.
type SocialLinkUpdate struct {
	Platform *string `json:"platform"`
	Name     *string `json:"name"`
	URL      *string `json:"url"`
	Icon     *string `json:"icon"`
	Position *int    `json:"position"`
	IsActive *bool   `json:"is_active"`
}
