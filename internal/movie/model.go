package movie

import (
	"time"

	"github.com/google/uuid"
)

// Status is the release state shown in the listing UI.
type Status string

const (
	StatusNowShowing Status = "now"
	StatusComingSoon Status = "soon"
)

type Movie struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration"`
	Genres          []string  `json:"genre"`
	Rating          float64   `json:"rating"`
	PosterURL       string    `json:"posterUrl,omitempty"`
	BannerURL       string    `json:"bannerUrl,omitempty"`
	TrailerURL      string    `json:"trailerUrl,omitempty"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Filter narrows the catalog listing. Zero values mean "no constraint".
type Filter struct {
	Genres    []string
	MinRating float64
	HasRating bool
	Title     string
}
