// Package catalog fetches movie metadata from the OMDb API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/metinatakli/cinetrack/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "https://www.omdbapi.com/"

	// PlaceholderPoster is stored for titles OMDb has no poster for.
	PlaceholderPoster = "https://upload.wikimedia.org/wikipedia/commons/a/ac/No_image_available.svg"

	notAvailable = "N/A"
)

var yearPattern = regexp.MustCompile(`^\d{4}`)

type OMDbClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewOMDbClient(baseURL, apiKey string) *OMDbClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &OMDbClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type omdbMovie struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Genre      string `json:"Genre"`
	Runtime    string `json:"Runtime"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
}

// FetchByTitle looks a movie up by its exact title. ErrMovieNotInCatalog is
// returned when OMDb does not know the title.
func (c *OMDbClient) FetchByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	if c.apiKey == "" {
		return nil, domain.ErrCatalogUnavailable
	}

	query := url.Values{}
	query.Set("t", title)
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb responded with status %d", resp.StatusCode)
	}

	var body omdbMovie
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode omdb response: %w", err)
	}

	if body.Response != "True" {
		return nil, fmt.Errorf("%w: %s", domain.ErrMovieNotInCatalog, title)
	}

	return body.toDomain(), nil
}

func (m omdbMovie) toDomain() *domain.Movie {
	movie := &domain.Movie{
		Title:       m.Title,
		Genre:       m.Genre,
		Duration:    parseRuntime(m.Runtime),
		ReleaseDate: parseYear(m.Year),
		PosterUrl:   m.Poster,
		ImdbRating:  parseRating(m.ImdbRating),
	}

	if movie.PosterUrl == "" || movie.PosterUrl == notAvailable {
		movie.PosterUrl = PlaceholderPoster
	}

	if movie.Genre == notAvailable {
		movie.Genre = ""
	}

	return movie
}

// parseRuntime turns "136 min" into 136. Unknown runtimes yield 0.
func parseRuntime(runtime string) int {
	fields := strings.Fields(runtime)
	if len(fields) == 0 {
		return 0
	}

	minutes, err := strconv.Atoi(fields[0])
	if err != nil || minutes < 0 {
		return 0
	}

	return minutes
}

func parseRating(rating string) float64 {
	if rating == "" || rating == notAvailable {
		return 0
	}

	value, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		return 0
	}

	return value
}

// parseYear maps "2010" or a series range such as "2005–2007" to January 1st of
// the first year, defaulting to 2000.
func parseYear(year string) time.Time {
	y := 2000

	if match := yearPattern.FindString(year); match != "" {
		y, _ = strconv.Atoi(match)
	}

	return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
}
