package movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/cinehub/booking-api/internal/database"
)

var ErrNotFound = errors.New("movie not found")

// Repository handles movie catalog persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new movie
func (r *Repository) Create(ctx context.Context, m *Movie) (*Movie, error) {
	dbMovie := mapModelToDBMovie(m)

	_, err := r.db.NewInsert().
		Model(dbMovie).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	return mapDBMovieToModel(dbMovie), nil
}

// List returns movies matching the filter
func (r *Repository) List(ctx context.Context, filter Filter) ([]*Movie, error) {
	var dbMovies []*database.Movie

	q := r.db.NewSelect().
		Model(&dbMovies).
		Order("created_at DESC")

	if len(filter.Genres) > 0 {
		// any-of match on the genres array
		q = q.Where("genres && ?", pgdialect.Array(filter.Genres))
	}
	if filter.HasRating {
		q = q.Where("rating >= ?", filter.MinRating)
	}
	if filter.Title != "" {
		q = q.Where("title ILIKE ?", "%"+filter.Title+"%")
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	movies := make([]*Movie, 0, len(dbMovies))
	for _, dbMovie := range dbMovies {
		movies = append(movies, mapDBMovieToModel(dbMovie))
	}

	return movies, nil
}

// GetByID retrieves a movie by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	dbMovie := new(database.Movie)
	err := r.db.NewSelect().
		Model(dbMovie).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return mapDBMovieToModel(dbMovie), nil
}

// Update replaces the mutable fields of a movie
func (r *Repository) Update(ctx context.Context, id uuid.UUID, m *Movie) (*Movie, error) {
	dbMovie := mapModelToDBMovie(m)
	dbMovie.ID = id

	result, err := r.db.NewUpdate().
		Model(dbMovie).
		Set("title = ?", dbMovie.Title).
		Set("description = ?", dbMovie.Description).
		Set("duration_minutes = ?", dbMovie.DurationMinutes).
		Set("genres = ?", pgdialect.Array(dbMovie.Genres)).
		Set("rating = ?", dbMovie.Rating).
		Set("poster_url = ?", dbMovie.PosterURL).
		Set("banner_url = ?", dbMovie.BannerURL).
		Set("trailer_url = ?", dbMovie.TrailerURL).
		Set("status = ?", dbMovie.Status).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBMovieToModel(dbMovie), nil
}

// Delete removes a movie
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Movie)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func mapModelToDBMovie(m *Movie) *database.Movie {
	return &database.Movie{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		Genres:          m.Genres,
		Rating:          m.Rating,
		PosterURL:       m.PosterURL,
		BannerURL:       m.BannerURL,
		TrailerURL:      m.TrailerURL,
		Status:          string(m.Status),
	}
}

func mapDBMovieToModel(dbm *database.Movie) *Movie {
	return &Movie{
		ID:              dbm.ID,
		Title:           dbm.Title,
		Description:     dbm.Description,
		DurationMinutes: dbm.DurationMinutes,
		Genres:          dbm.Genres,
		Rating:          dbm.Rating,
		PosterURL:       dbm.PosterURL,
		BannerURL:       dbm.BannerURL,
		TrailerURL:      dbm.TrailerURL,
		Status:          Status(dbm.Status),
		CreatedAt:       dbm.CreatedAt,
		UpdatedAt:       dbm.UpdatedAt,
	}
}
