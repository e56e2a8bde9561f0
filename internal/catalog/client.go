// Package catalog implements the external book catalog client. It queries
// the Google Books volumes endpoint by free-text search and normalizes the
// heterogeneous result shapes into the canonical Book record.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sieke13/bookshelf/internal/common"
	"github.com/sieke13/bookshelf/internal/models"
)

const DefaultBaseURL = "https://www.googleapis.com/books/v1"

// Client performs read-only searches against the catalog source.
// An API key is optional; the volumes endpoint accepts keyless queries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the catalog endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithAPIKey attaches a key=... query parameter to every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// volume mirrors the subset of the Google Books response we read.
type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title      string   `json:"title"`
		Authors    []string `json:"authors"`
		Descr      string   `json:"description"`
		ImageLinks struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
		InfoLink            string `json:"infoLink"`
		CanonicalVolumeLink string `json:"canonicalVolumeLink"`
	} `json:"volumeInfo"`
}

type volumesResponse struct {
	Items []volume `json:"items"`
}

// Search queries the catalog by free-text query and returns normalized books.
// A non-success status or a network failure yields ErrorUpstreamUnavailable;
// callers treat it as recoverable and re-issue the user action.
func (c *Client) Search(ctx context.Context, query string) ([]models.Book, error) {
	q := url.Values{}
	q.Set("q", query)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	endpoint := fmt.Sprintf("%s/volumes?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: catalog returned %s", common.ErrorUpstreamUnavailable, resp.Status)
	}

	var vr volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("%w: decoding catalog response: %v", common.ErrorUpstreamUnavailable, err)
	}

	books := make([]models.Book, 0, len(vr.Items))
	for _, v := range vr.Items {
		books = append(books, normalize(v))
	}
	return books, nil
}

// normalize maps one catalog volume to a Book, applying the defaulting rules
// from the wire contract: placeholder author entry, empty-string optionals,
// thumbnail image, infoLink with canonicalVolumeLink fallback.
func normalize(v volume) models.Book {
	link := v.VolumeInfo.InfoLink
	if link == "" {
		link = v.VolumeInfo.CanonicalVolumeLink
	}

	b := models.Book{
		BookID:      v.ID,
		Title:       v.VolumeInfo.Title,
		Authors:     v.VolumeInfo.Authors,
		Description: v.VolumeInfo.Descr,
		Image:       v.VolumeInfo.ImageLinks.Thumbnail,
		Link:        link,
	}
	b.Normalize()
	return b
}
