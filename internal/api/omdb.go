package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/cinesearch/internal/models"
)

const (
	DefaultBaseURL    = "https://www.omdbapi.com/"
	DefaultTimeout    = 15 * time.Second
	omdbUserAgent     = "cinesearch/1.0"
	maxAttempts       = 3
	defaultRetryDelay = 500 * time.Millisecond
	maxErrorBody      = 64 << 10
)

// ErrTransport marks network, HTTP status and decoding failures
var ErrTransport = errors.New("omdb request failed")

// APIError is a logical failure reported by OMDb itself ("Response": "False").
// Message is the API's Error field verbatim and may be empty.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "omdb: request rejected"
	}
	return "omdb: " + e.Message
}

// OMDbClient handles OMDb API requests
type OMDbClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *log.Logger
	retryDelay time.Duration
}

// Option customizes an OMDbClient
type Option func(*OMDbClient)

// WithBaseURL points the client at another endpoint (tests, proxies)
func WithBaseURL(baseURL string) Option {
	return func(c *OMDbClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout sets the per-request HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(c *OMDbClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetryDelay sets the base back-off between retried requests
func WithRetryDelay(d time.Duration) Option {
	return func(c *OMDbClient) {
		c.retryDelay = d
	}
}

// NewOMDbClient creates a new OMDb API client. logger may be nil.
func NewOMDbClient(apiKey string, logger *log.Logger, opts ...Option) *OMDbClient {
	c := &OMDbClient{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		logger:     logger,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse mirrors the OMDb search payload; totalResults is a string
type searchResponse struct {
	Response     string                `json:"Response"`
	Search       []models.MovieSummary `json:"Search"`
	TotalResults string                `json:"totalResults"`
	Error        string                `json:"Error"`
}

type detailResponse struct {
	models.MovieDetail
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Search fetches one page of movies matching term. page is 1-based.
func (c *OMDbClient) Search(ctx context.Context, term string, page int) (*models.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term is empty")
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", term)
	params.Set("page", strconv.Itoa(page))

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if !strings.EqualFold(resp.Response, "True") {
		return nil, &APIError{Message: resp.Error}
	}

	total, err := strconv.Atoi(strings.TrimSpace(resp.TotalResults))
	if err != nil {
		if c.logger != nil {
			c.logger.Debug("Unparseable totalResults", "value", resp.TotalResults, "term", term)
		}
		total = len(resp.Search)
	}

	if c.logger != nil {
		c.logger.Info("Search page fetched", "term", term, "page", page, "results", len(resp.Search), "total", total)
	}

	return &models.SearchResult{
		Term:         term,
		Page:         page,
		TotalResults: total,
		Movies:       resp.Search,
	}, nil
}

// Detail fetches the full record for an IMDb id, including the long plot
func (c *OMDbClient) Detail(ctx context.Context, imdbID string) (*models.MovieDetail, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, fmt.Errorf("movie id is empty")
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var resp detailResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if !strings.EqualFold(resp.Response, "True") {
		return nil, &APIError{Message: resp.Error}
	}

	if c.logger != nil {
		c.logger.Info("Detail fetched", "id", imdbID, "title", resp.Title)
	}

	detail := resp.MovieDetail
	if detail.IMDbID == "" {
		detail.IMDbID = imdbID
	}
	return &detail, nil
}

// get performs the GET and decodes the JSON body into out.
// Transport errors and 5xx answers are retried; everything else is final.
func (c *OMDbClient) get(ctx context.Context, params url.Values, out any) error {
	reqURL := c.baseURL + "?" + params.Encode()

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("%w: failed to create request: %w", ErrTransport, err))
			}
			req.Header.Set("User-Agent", omdbUserAgent)
			req.Header.Set("Accept", "application/json")

			if c.logger != nil {
				c.logger.Debug("GET", "params", redact(params))
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				if ctx.Err() != nil {
					return retry.Unrecoverable(fmt.Errorf("%w: %w", ErrTransport, err))
				}
				return fmt.Errorf("%w: %w", ErrTransport, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("%w: OMDb returned status %d", ErrTransport, resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				// OMDb answers bad keys with 401 and a regular error payload
				body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
				var payload struct {
					Error string `json:"Error"`
				}
				if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
					return retry.Unrecoverable(&APIError{Message: payload.Error})
				}
				return retry.Unrecoverable(fmt.Errorf("%w: OMDb returned status %d", ErrTransport, resp.StatusCode))
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("%w: failed to decode response: %w", ErrTransport, err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if c.logger != nil {
				c.logger.Warn("OMDb request failed, retrying", "attempt", n+1, "maxAttempts", maxAttempts, "error", err)
			}
		}),
	)
}

// redact hides the api key when request parameters are logged
func redact(params url.Values) string {
	clean := url.Values{}
	for k, v := range params {
		if k == "apikey" {
			clean.Set(k, "***")
			continue
		}
		clean[k] = v
	}
	return clean.Encode()
}
