package showtime

import (
	"time"

	"github.com/google/uuid"
)

type Showtime struct {
	ID        uuid.UUID     `json:"id"`
	MovieID   uuid.UUID     `json:"movieId"`
	Movie     *MovieSummary `json:"movie,omitempty"`
	Hall      string        `json:"hall"`
	Date      time.Time     `json:"date"`
	StartTime string        `json:"startTime"`
	Price     float64       `json:"price"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// MovieSummary is the slice of the movie the listing view needs.
type MovieSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}
