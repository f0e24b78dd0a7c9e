package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/cinetrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOMDbServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.NotEmpty(t, r.URL.Query().Get("t"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestFetchByTitle(t *testing.T) {
	srv := newOMDbServer(t, `{
		"Title": "Inception",
		"Year": "2010",
		"Runtime": "148 min",
		"Genre": "Action, Adventure, Sci-Fi",
		"Poster": "https://m.media-amazon.com/images/inception.jpg",
		"imdbRating": "8.8",
		"Response": "True"
	}`)

	client := NewOMDbClient(srv.URL, "test-key")

	movie, err := client.FetchByTitle(context.Background(), "Inception")
	require.NoError(t, err)

	want := &domain.Movie{
		Title:       "Inception",
		Genre:       "Action, Adventure, Sci-Fi",
		Duration:    148,
		ReleaseDate: time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC),
		PosterUrl:   "https://m.media-amazon.com/images/inception.jpg",
		ImdbRating:  8.8,
	}

	if diff := cmp.Diff(want, movie); diff != "" {
		t.Errorf("movie mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchByTitleMissingFields(t *testing.T) {
	srv := newOMDbServer(t, `{
		"Title": "Obscure Short",
		"Year": "2005–2007",
		"Runtime": "N/A",
		"Genre": "N/A",
		"Poster": "N/A",
		"imdbRating": "N/A",
		"Response": "True"
	}`)

	movie, err := NewOMDbClient(srv.URL, "test-key").FetchByTitle(context.Background(), "Obscure Short")
	require.NoError(t, err)

	assert.Equal(t, PlaceholderPoster, movie.PosterUrl)
	assert.Zero(t, movie.ImdbRating)
	assert.Zero(t, movie.Duration)
	assert.Empty(t, movie.Genre)
	assert.Equal(t, 2005, movie.ReleaseDate.Year())
}

func TestFetchByTitleNotFound(t *testing.T) {
	srv := newOMDbServer(t, `{"Response": "False", "Error": "Movie not found!"}`)

	_, err := NewOMDbClient(srv.URL, "test-key").FetchByTitle(context.Background(), "Nope")

	assert.ErrorIs(t, err, domain.ErrMovieNotInCatalog)
}

func TestFetchByTitleWithoutKey(t *testing.T) {
	_, err := NewOMDbClient("", "").FetchByTitle(context.Background(), "Inception")

	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestFetchByTitleUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewOMDbClient(srv.URL, "test-key").FetchByTitle(context.Background(), "Inception")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrMovieNotInCatalog)
}

func TestParseYear(t *testing.T) {
	tests := map[string]int{
		"1999":      1999,
		"2005–2007": 2005,
		"":          2000,
		"N/A":       2000,
	}

	for in, want := range tests {
		if got := parseYear(in).Year(); got != want {
			t.Errorf("parseYear(%q) = %d, want %d", in, got, want)
		}
	}
}
