package movie

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() MovieRequest {
	return MovieRequest{
		Title:           "Interstellar",
		Description:     "A team travels through a wormhole in space.",
		DurationMinutes: 169,
		Genres:          []string{"Sci-Fi", "Drama"},
		Rating:          8.7,
		Status:          "now",
	}
}

func TestMovieRequestValidate(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.validate())

	cases := []struct {
		name   string
		mutate func(*MovieRequest)
		want   string
	}{
		{"missing title", func(r *MovieRequest) { r.Title = "" }, "title is required"},
		{"missing description", func(r *MovieRequest) { r.Description = "" }, "description is required"},
		{"zero duration", func(r *MovieRequest) { r.DurationMinutes = 0 }, "duration must be a positive number"},
		{"negative duration", func(r *MovieRequest) { r.DurationMinutes = -5 }, "duration must be a positive number"},
		{"no genres", func(r *MovieRequest) { r.Genres = nil }, "genre is required"},
		{"rating too high", func(r *MovieRequest) { r.Rating = 10.5 }, "rating must be 0-10"},
		{"negative rating", func(r *MovieRequest) { r.Rating = -1 }, "rating must be 0-10"},
		{"unknown status", func(r *MovieRequest) { r.Status = "archived" }, "status must be now or soon"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := req.validate()
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestMovieRequestValidate_DefaultStatus(t *testing.T) {
	req := validRequest()
	req.Status = ""

	require.NoError(t, req.validate())
	assert.Equal(t, string(StatusComingSoon), req.Status)
}

func TestParseFilter(t *testing.T) {
	filter := parseFilter(url.Values{})
	assert.Empty(t, filter.Genres)
	assert.Empty(t, filter.Title)
	assert.False(t, filter.HasRating)

	filter = parseFilter(url.Values{
		"genre":  []string{"Action", "Comedy"},
		"rating": []string{"7.5"},
		"title":  []string{"inter"},
	})
	assert.Equal(t, []string{"Action", "Comedy"}, filter.Genres)
	assert.Equal(t, "inter", filter.Title)
	assert.True(t, filter.HasRating)
	assert.Equal(t, 7.5, filter.MinRating)

	// Unparsable rating is ignored rather than rejected
	filter = parseFilter(url.Values{"rating": []string{"high"}})
	assert.False(t, filter.HasRating)
}
