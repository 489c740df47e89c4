package showtime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/cinehub/booking-api/internal/database"
)

var ErrNotFound = errors.New("showtime not found")

// Repository handles showtime persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new showtime
func (r *Repository) Create(ctx context.Context, s *Showtime) (*Showtime, error) {
	dbShowtime := &database.Showtime{
		MovieID:   s.MovieID,
		Hall:      s.Hall,
		Date:      s.Date,
		StartTime: s.StartTime,
		Price:     s.Price,
	}

	_, err := r.db.NewInsert().
		Model(dbShowtime).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create showtime: %w", err)
	}

	return mapDBShowtimeToModel(dbShowtime), nil
}

// List returns all showtimes with their movie summary
func (r *Repository) List(ctx context.Context) ([]*Showtime, error) {
	var dbShowtimes []*database.Showtime
	err := r.db.NewSelect().
		Model(&dbShowtimes).
		Relation("Movie").
		Order("s.date ASC", "s.start_time ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list showtimes: %w", err)
	}

	showtimes := make([]*Showtime, 0, len(dbShowtimes))
	for _, dbShowtime := range dbShowtimes {
		showtimes = append(showtimes, mapDBShowtimeToModel(dbShowtime))
	}

	return showtimes, nil
}

// ListByMovie returns all showtimes for one movie
func (r *Repository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]*Showtime, error) {
	var dbShowtimes []*database.Showtime
	err := r.db.NewSelect().
		Model(&dbShowtimes).
		Where("movie_id = ?", movieID).
		Order("date ASC", "start_time ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list showtimes by movie: %w", err)
	}

	showtimes := make([]*Showtime, 0, len(dbShowtimes))
	for _, dbShowtime := range dbShowtimes {
		showtimes = append(showtimes, mapDBShowtimeToModel(dbShowtime))
	}

	return showtimes, nil
}

// GetByID retrieves a showtime by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	dbShowtime := new(database.Showtime)
	err := r.db.NewSelect().
		Model(dbShowtime).
		Where("s.id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get showtime: %w", err)
	}

	return mapDBShowtimeToModel(dbShowtime), nil
}

// Update replaces the mutable fields of a showtime
func (r *Repository) Update(ctx context.Context, id uuid.UUID, s *Showtime) (*Showtime, error) {
	dbShowtime := &database.Showtime{}

	result, err := r.db.NewUpdate().
		Model(dbShowtime).
		Set("movie_id = ?", s.MovieID).
		Set("hall = ?", s.Hall).
		Set("date = ?", s.Date).
		Set("start_time = ?", s.StartTime).
		Set("price = ?", s.Price).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to update showtime: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBShowtimeToModel(dbShowtime), nil
}

// Delete removes a showtime
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Showtime)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete showtime: %w", err)
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

func mapDBShowtimeToModel(dbs *database.Showtime) *Showtime {
	s := &Showtime{
		ID:        dbs.ID,
		MovieID:   dbs.MovieID,
		Hall:      dbs.Hall,
		Date:      dbs.Date,
		StartTime: dbs.StartTime,
		Price:     dbs.Price,
		CreatedAt: dbs.CreatedAt,
		UpdatedAt: dbs.UpdatedAt,
	}

	if dbs.Movie != nil {
		s.Movie = &MovieSummary{
			ID:    dbs.Movie.ID,
			Title: dbs.Movie.Title,
		}
	}

	return s
}
