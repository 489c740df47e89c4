package showtime

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cinehub/booking-api/internal/httputil"
	"github.com/cinehub/booking-api/internal/logging"
)

// Handler contains HTTP handlers for showtimes
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

// ShowtimeRequest represents the create/update request body
type ShowtimeRequest struct {
	MovieID   uuid.UUID `json:"movieId"`
	Hall      string    `json:"hall"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	Price     float64   `json:"price"`
}

func (req *ShowtimeRequest) validate() error {
	if req.MovieID == uuid.Nil {
		return errors.New("movieId is required")
	}
	if req.Hall == "" {
		return errors.New("hall is required")
	}
	if req.Date.IsZero() {
		return errors.New("date is required")
	}
	if req.StartTime == "" {
		return errors.New("startTime is required")
	}
	if req.Price <= 0 {
		return errors.New("price must be a positive number")
	}
	return nil
}

// DataResponse wraps a showtime payload in the success envelope
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// StatusResponse is returned by delete
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondData(w http.ResponseWriter, data any, statusCode int) {
	httputil.RespondJSON(w, DataResponse{Success: true, Data: data}, statusCode)
}

// Create adds a showtime (admin)
// @Summary      Create showtime
// @Tags         showtimes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ShowtimeRequest true "Showtime fields"
// @Success      201 {object} DataResponse
// @Router       /api/showtimes [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(r.Context(), &Showtime{
		MovieID:   req.MovieID,
		Hall:      req.Hall,
		Date:      req.Date,
		StartTime: req.StartTime,
		Price:     req.Price,
	})
	if err != nil {
		logger.Error("showtime creation failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	logger.Info("showtime created", "showtime_id", created.ID, "movie_id", created.MovieID)

	respondData(w, created, http.StatusCreated)
}

// List returns all showtimes
// @Summary      List showtimes
// @Tags         showtimes
// @Produce      json
// @Success      200 {object} DataResponse
// @Router       /api/showtimes [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	showtimes, err := h.repo.List(r.Context())
	if err != nil {
		logger.Error("showtime listing failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	respondData(w, showtimes, http.StatusOK)
}

// ListByMovie returns showtimes for one movie
// @Summary      List showtimes for a movie
// @Tags         showtimes
// @Produce      json
// @Param        movieId path string true "Movie ID"
// @Success      200 {object} DataResponse
// @Router       /api/showtimes/movie/{movieId} [get]
func (h *Handler) ListByMovie(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	movieID, err := uuid.Parse(chi.URLParam(r, "movieId"))
	if err != nil {
		httputil.RespondError(w, "Movie not found", http.StatusNotFound)
		return
	}

	showtimes, err := h.repo.ListByMovie(r.Context(), movieID)
	if err != nil {
		logger.Error("showtime listing failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	respondData(w, showtimes, http.StatusOK)
}

// Get returns a single showtime
// @Summary      Get showtime
// @Tags         showtimes
// @Produce      json
// @Param        id path string true "Showtime ID"
// @Success      200 {object} DataResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/showtimes/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Showtime not found", http.StatusNotFound)
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Showtime not found", http.StatusNotFound)
			return
		}
		logger.Error("showtime fetch failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	respondData(w, s, http.StatusOK)
}

// Update replaces a showtime's fields (admin)
// @Summary      Update showtime
// @Tags         showtimes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Showtime ID"
// @Param        request body ShowtimeRequest true "Showtime fields"
// @Success      200 {object} DataResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/showtimes/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Showtime not found", http.StatusNotFound)
		return
	}

	var req ShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.repo.Update(r.Context(), id, &Showtime{
		MovieID:   req.MovieID,
		Hall:      req.Hall,
		Date:      req.Date,
		StartTime: req.StartTime,
		Price:     req.Price,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Showtime not found", http.StatusNotFound)
			return
		}
		logger.Error("showtime update failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	respondData(w, updated, http.StatusOK)
}

// Delete removes a showtime (admin)
// @Summary      Delete showtime
// @Tags         showtimes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Showtime ID"
// @Success      200 {object} StatusResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/showtimes/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Showtime not found", http.StatusNotFound)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Showtime not found", http.StatusNotFound)
			return
		}
		logger.Error("showtime deletion failed", "error", err.Error())
		httputil.RespondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, StatusResponse{Success: true, Message: "Showtime removed"}, http.StatusOK)
}
