// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/gustus/internal/models"
)

// maxErrorBodySize limits how much of an error response body is read.
const maxErrorBodySize = 64 * 1024

// dateFormat is the service's date representation.
const dateFormat = "2006-01-02"

// Config holds the metadata-service client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.themoviedb.org/3".
	BaseURL string

	// APIKey authenticates every request.
	APIKey string

	// Timeout is the per-request HTTP timeout. A hung call blocks the
	// run until this fires; there is no other cancellation beyond the
	// caller's context.
	Timeout time.Duration

	// RequestInterval is the fixed delay between consecutive calls, the
	// only throttling applied. There is no retry or backoff.
	RequestInterval time.Duration
}

// DefaultConfig returns the canonical client configuration, minus the
// API key which has no sensible default.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "https://api.themoviedb.org/3",
		Timeout:         15 * time.Second,
		RequestInterval: 250 * time.Millisecond,
	}
}

// APIError is a non-success response from the metadata service.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("metadata service %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// MetadataClient is the lookup capability the analysis run depends on.
// Implemented by Client and by the circuit breaker wrapper; tests use an
// in-memory fake.
type MetadataClient interface {
	// FindByExternalID resolves an external (IMDb-style) identifier to a
	// public rating. Returns (nil, nil) when the service knows no movie
	// for the identifier.
	FindByExternalID(ctx context.Context, externalID string) (*FindResult, error)

	// Discover returns movies matching the filter, in service order.
	Discover(ctx context.Context, filter DiscoverFilter) ([]models.CandidateMovie, error)

	// SearchPerson resolves a person name to the service's person ID.
	// The bool is false when no person matched.
	SearchPerson(ctx context.Context, name string) (int, bool, error)

	// PersonMovieCredits returns the person's filmography, crew and cast
	// combined, deduplicated by movie ID.
	PersonMovieCredits(ctx context.Context, personID int) ([]models.CandidateMovie, error)
}

// Client talks to the metadata service over HTTP. Safe for concurrent use;
// the shared limiter serializes the effective request rate.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// compile-time interface check
var _ MetadataClient = (*Client)(nil)

// NewClient creates a metadata-service client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("metadata service base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("metadata service API key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.RequestInterval <= 0 {
		cfg.RequestInterval = DefaultConfig().RequestInterval
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(cfg.RequestInterval), 1),
		logger:  logger.With().Str("component", "tmdb").Logger(),
	}, nil
}

// FindByExternalID resolves an external identifier via /find.
func (c *Client) FindByExternalID(ctx context.Context, externalID string) (*FindResult, error) {
	if externalID == "" {
		return nil, fmt.Errorf("external ID is required")
	}

	params := url.Values{}
	params.Set("external_source", "imdb_id")

	var resp findResponse
	if err := c.get(ctx, "/find/"+url.PathEscape(externalID), params, &resp); err != nil {
		return nil, err
	}
	if len(resp.MovieResults) == 0 {
		return nil, nil
	}

	m := resp.MovieResults[0]
	return &FindResult{
		TMDBID:       m.ID,
		Title:        m.Title,
		ReleaseDate:  m.ReleaseDate,
		PublicRating: m.VoteAverage,
	}, nil
}

// Discover queries /discover/movie with the given filter.
func (c *Client) Discover(ctx context.Context, filter DiscoverFilter) ([]models.CandidateMovie, error) {
	params := url.Values{}
	if filter.Genre != "" {
		id, ok := genreIDs[filter.Genre]
		if !ok {
			c.logger.Debug().Str("genre", filter.Genre).Msg("unknown genre, discover yields nothing")
			return nil, nil
		}
		params.Set("with_genres", strconv.Itoa(id))
	}
	if filter.SortBy != "" {
		params.Set("sort_by", filter.SortBy)
	}
	if !filter.ReleasedAfter.IsZero() {
		params.Set("primary_release_date.gte", filter.ReleasedAfter.Format(dateFormat))
	}
	if !filter.ReleasedBefore.IsZero() {
		params.Set("primary_release_date.lte", filter.ReleasedBefore.Format(dateFormat))
	}
	if filter.MinVotes > 0 {
		params.Set("vote_count.gte", strconv.Itoa(filter.MinVotes))
	}

	var resp discoverResponse
	if err := c.get(ctx, "/discover/movie", params, &resp); err != nil {
		return nil, err
	}

	candidates := make([]models.CandidateMovie, 0, len(resp.Results))
	for i := range resp.Results {
		candidates = append(candidates, resp.Results[i].toCandidate())
	}
	return candidates, nil
}

// SearchPerson resolves a person name via /search/person. The first match
// wins, mirroring the service's own relevance order.
func (c *Client) SearchPerson(ctx context.Context, name string) (int, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("person name is required")
	}

	params := url.Values{}
	params.Set("query", name)

	var resp personSearchResponse
	if err := c.get(ctx, "/search/person", params, &resp); err != nil {
		return 0, false, err
	}
	if len(resp.Results) == 0 {
		return 0, false, nil
	}
	return resp.Results[0].ID, true, nil
}

// PersonMovieCredits fetches /person/{id}/movie_credits, merging crew and
// cast entries and deduplicating by movie ID.
func (c *Client) PersonMovieCredits(ctx context.Context, personID int) ([]models.CandidateMovie, error) {
	var resp creditsResponse
	if err := c.get(ctx, fmt.Sprintf("/person/%d/movie_credits", personID), nil, &resp); err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(resp.Crew)+len(resp.Cast))
	var candidates []models.CandidateMovie
	for _, group := range [][]movieResult{resp.Crew, resp.Cast} {
		for i := range group {
			m := &group[i]
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			candidates = append(candidates, m.toCandidate())
		}
	}
	return candidates, nil
}

// get performs one rate-limited GET and decodes the JSON response.
// The limiter wait is the only throttling; a non-2xx status is returned
// as *APIError without retry.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is unactionable

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// readBodyForError reads a bounded prefix of an error response body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(unreadable body)")
	}
	return body
}
