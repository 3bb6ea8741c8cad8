package models

import "time"

// Profile is the single owner profile served by the API.
type Profile struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Title            string    `json:"title"`
	Bio              string    `json:"bio"`
	Location         string    `json:"location"`
	Specialties      []string  `json:"specialties"`
	Tools            []string  `json:"tools"`
	GithubUsername   string    `json:"github_username"`
	YoutubeChannelID string    `json:"youtube_channel_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProfileUpdate carries a partial profile update. Nil fields are
// left untouched.
type ProfileUpdate struct {
	Name             *string   `json:"name"`
	Title            *string   `json:"title"`
	Bio              *string   `json:"bio"`
	Location         *string   `json:"location"`
	Specialties      *[]string `json:"specialties"`
	Tools            *[]string `json:"tools"`
	GithubUsername   *string   `json:"github_username"`
	YoutubeChannelID *string   `json:"youtube_channel_id"`
}
