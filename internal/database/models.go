package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persistence model for user accounts.
// The unique index on email is the backstop for the application-level
// duplicate check; concurrent registrations race on the pre-check but
// cannot both commit.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Role         string    `bun:"role,notnull,default:'customer'"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Movie is the persistence model for catalog entries.
type Movie struct {
	bun.BaseModel `bun:"table:movies,alias:m"`

	ID              uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Title           string    `bun:"title,notnull"`
	Description     string    `bun:"description,notnull"`
	DurationMinutes int       `bun:"duration_minutes,notnull"`
	Genres          []string  `bun:"genres,array"`
	Rating          float64   `bun:"rating"`
	PosterURL       string    `bun:"poster_url"`
	BannerURL       string    `bun:"banner_url"`
	TrailerURL      string    `bun:"trailer_url"`
	Status          string    `bun:"status,notnull,default:'soon'"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Showtime is the persistence model for screenings of a movie.
type Showtime struct {
	bun.BaseModel `bun:"table:showtimes,alias:s"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	MovieID   uuid.UUID `bun:"movie_id,notnull,type:uuid"`
	Movie     *Movie    `bun:"rel:belongs-to,join:movie_id=id"`
	Hall      string    `bun:"hall,notnull"`
	Date      time.Time `bun:"date,notnull"`
	StartTime string    `bun:"start_time,notnull"`
	Price     float64   `bun:"price,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
