package movie

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cinehub/booking-api/internal/httputil"
	"github.com/cinehub/booking-api/internal/logging"
)

// Handler contains HTTP handlers for the movie catalog
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// MovieRequest represents the create/update request body
type MovieRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration"`
	Genres          []string `json:"genre"`
	Rating          float64  `json:"rating"`
	PosterURL       string   `json:"posterUrl"`
	BannerURL       string   `json:"bannerUrl"`
	TrailerURL      string   `json:"trailerUrl"`
	Status          string   `json:"status"`
}

func (req *MovieRequest) validate() error {
	if req.Title == "" {
		return errors.New("title is required")
	}
	if req.Description == "" {
		return errors.New("description is required")
	}
	if req.DurationMinutes <= 0 {
		return errors.New("duration must be a positive number")
	}
	if len(req.Genres) == 0 {
		return errors.New("genre is required")
	}
	if req.Rating < 0 || req.Rating > 10 {
		return errors.New("rating must be 0-10")
	}
	if req.Status == "" {
		req.Status = string(StatusComingSoon)
	}
	if Status(req.Status) != StatusNowShowing && Status(req.Status) != StatusComingSoon {
		return errors.New("status must be now or soon")
	}
	return nil
}

func (req *MovieRequest) toModel() *Movie {
	return &Movie{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Genres:          req.Genres,
		Rating:          req.Rating,
		PosterURL:       req.PosterURL,
		BannerURL:       req.BannerURL,
		TrailerURL:      req.TrailerURL,
		Status:          Status(req.Status),
	}
}

// List returns movies, optionally narrowed by genre, rating and title
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Param        genre  query []string false "Genre (repeatable, any-of)"
// @Param        rating query number   false "Minimum rating"
// @Param        title  query string   false "Title substring, case-insensitive"
// @Success      200 {array} Movie
// @Router       /api/movies [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	movies, err := h.repo.List(r.Context(), parseFilter(r.URL.Query()))
	if err != nil {
		logger.Error("movie listing failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, movies, http.StatusOK)
}

// Get returns a single movie
// @Summary      Get movie
// @Tags         movies
// @Produce      json
// @Param        id path string true "Movie ID"
// @Success      200 {object} Movie
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/movies/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Movie not found", http.StatusNotFound)
		return
	}

	m, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Movie not found", http.StatusNotFound)
			return
		}
		logger.Error("movie fetch failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, m, http.StatusOK)
}

// Create adds a movie to the catalog (admin)
// @Summary      Create movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body MovieRequest true "Movie fields"
// @Success      201 {object} Movie
// @Failure      400 {object} httputil.ErrorResponse
// @Router       /api/movies [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid movie data", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(r.Context(), req.toModel())
	if err != nil {
		logger.Error("movie creation failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	logger.Info("movie created", "movie_id", created.ID, "title", created.Title)

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// Update replaces a movie's fields (admin)
// @Summary      Update movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Movie ID"
// @Param        request body MovieRequest true "Movie fields"
// @Success      200 {object} Movie
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/movies/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Movie not found", http.StatusNotFound)
		return
	}

	var req MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid update data", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.repo.Update(r.Context(), id, req.toModel())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Movie not found", http.StatusNotFound)
			return
		}
		logger.Error("movie update failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete removes a movie (admin)
// @Summary      Delete movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Movie ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/movies/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Movie not found", http.StatusNotFound)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Movie not found", http.StatusNotFound)
			return
		}
		logger.Error("movie deletion failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, map[string]string{"message": "Movie deleted successfully"}, http.StatusOK)
}

// parseFilter builds a listing filter from query parameters.
// A repeated genre parameter matches movies carrying any of the values.
func parseFilter(query url.Values) Filter {
	filter := Filter{
		Genres: query["genre"],
		Title:  query.Get("title"),
	}

	if raw := query.Get("rating"); raw != "" {
		if rating, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinRating = rating
			filter.HasRating = true
		}
	}

	return filter
}
