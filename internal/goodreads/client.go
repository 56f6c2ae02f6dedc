// Package goodreads wraps the Goodreads review_counts endpoint.
//
// Response shapes based on https://www.goodreads.com/api/index#book.review_counts
package goodreads

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://www.goodreads.com"

// ReviewCounts is the per-ISBN aggregate Goodreads reports for a book.
type ReviewCounts struct {
	ID               int64  `json:"id"`
	ISBN             string `json:"isbn"`
	ISBN13           string `json:"isbn13"`
	RatingsCount     int64  `json:"ratings_count"`
	ReviewsCount     int64  `json:"reviews_count"`
	TextReviewsCount int64  `json:"text_reviews_count"`
	WorkRatingsCount int64  `json:"work_ratings_count"`
	AverageRating    string `json:"average_rating"`
}

type reviewCountsResponse struct {
	Books []ReviewCounts `json:"books"`
}

// Client calls the Goodreads API. A zero API key disables lookups;
// callers get ErrDisabled and are expected to degrade.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	log        zerolog.Logger
}

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = fmt.Errorf("goodreads: no API key configured")

// ErrNotFound is returned when Goodreads has no data for the ISBN.
var ErrNotFound = fmt.Errorf("goodreads: isbn not found")

// New returns a Client with a bounded request timeout.
func New(baseURL, key string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		key:        key,
		log:        log,
	}
}

// ReviewCounts fetches the review-count aggregate for a single ISBN.
func (c *Client) ReviewCounts(ctx context.Context, isbn string) (ReviewCounts, error) {
	if c.key == "" {
		return ReviewCounts{}, ErrDisabled
	}

	q := url.Values{}
	q.Set("key", c.key)
	q.Set("isbns", isbn)
	reqURL := c.baseURL + "/book/review_counts.json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ReviewCounts{}, fmt.Errorf("goodreads: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ReviewCounts{}, fmt.Errorf("goodreads: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ReviewCounts{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return ReviewCounts{}, fmt.Errorf("goodreads: status %d", resp.StatusCode)
	}

	var payload reviewCountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ReviewCounts{}, fmt.Errorf("goodreads: decode response: %w", err)
	}
	if len(payload.Books) == 0 {
		return ReviewCounts{}, ErrNotFound
	}

	c.log.Debug().Str("isbn", isbn).Int64("ratings", payload.Books[0].RatingsCount).
		Msg("goodreads review counts fetched")
	return payload.Books[0], nil
}
