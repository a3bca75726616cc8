package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the English Wikipedia API endpoint.
const DefaultBaseURL = "https://en.wikipedia.org/w/api.php"

// Config configures a Client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client

	// Retry intervals for transient failures. MaxElapsedTime bounds the
	// total time spent on one logical request.
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration

	Logger logrus.FieldLogger
}

// DefaultConfig returns the standard client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  30 * time.Second,
	}
}

// Client queries the MediaWiki API. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	cfg     Config
	logger  logrus.FieldLogger
}

// NewClient constructs a client from cfg, filling zero fields with
// defaults.
func NewClient(cfg Config) *Client {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = defaults.InitialInterval
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = defaults.MaxInterval
	}
	if cfg.MaxElapsedTime == 0 {
		cfg.MaxElapsedTime = defaults.MaxElapsedTime
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    cfg.HTTPClient,
		cfg:     cfg,
		logger:  logger,
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages []struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Search returns the titles of up to n articles matching query, best
// match first.
func (c *Client) Search(ctx context.Context, query string, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("lookup: result count must be at least 1, got %d", n)
	}

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"format":   {"json"},
		"srprop":   {""},
		"srwhat":   {"text"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(n)},
	}

	var decoded searchResponse
	if err := c.get(ctx, "search", params, &decoded); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(decoded.Query.Search))
	for _, hit := range decoded.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// Lookup fetches the first sentences of the article with the given title.
func (c *Client) Lookup(ctx context.Context, title string, sentences int) (string, error) {
	if sentences < 1 {
		return "", fmt.Errorf("lookup: sentence count must be at least 1, got %d", sentences)
	}

	params := url.Values{
		"action":        {"query"},
		"prop":          {"extracts"},
		"exlimit":       {"1"},
		"explaintext":   {"1"},
		"formatversion": {"2"},
		"format":        {"json"},
		"titles":        {title},
		"exsentences":   {strconv.Itoa(sentences)},
	}

	var decoded extractResponse
	if err := c.get(ctx, "lookup", params, &decoded); err != nil {
		return "", err
	}
	if len(decoded.Query.Pages) == 0 {
		return "", &ResponseError{Op: "lookup", Err: fmt.Errorf("no pages in response")}
	}
	return decoded.Query.Pages[0].Extract, nil
}

// SearchAndLookup searches for query and returns the opening sentences of
// the best matching article.
func (c *Client) SearchAndLookup(ctx context.Context, query string, sentences int) (string, error) {
	titles, err := c.Search(ctx, query, 1)
	if err != nil {
		return "", err
	}
	if len(titles) == 0 {
		return "", fmt.Errorf("%w for %q", ErrNoResults, query)
	}
	return c.Lookup(ctx, titles[0], sentences)
}

// SearchAll runs a search for every query concurrently and returns the
// titles keyed by query. The first failure cancels the remaining
// searches.
func (c *Client) SearchAll(ctx context.Context, queries []string, n int) (map[string][]string, error) {
	results := make([][]string, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			titles, err := c.Search(ctx, query, n)
			if err != nil {
				return err
			}
			results[i] = titles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byQuery := make(map[string][]string, len(queries))
	for i, query := range queries {
		byQuery[query] = results[i]
	}
	return byQuery, nil
}

// get performs one API request with retries and decodes the JSON body
// into out.
func (c *Client) get(ctx context.Context, op string, params url.Values, out any) error {
	requestURL := c.baseURL + "?" + params.Encode()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialInterval
	b.MaxInterval = c.cfg.MaxInterval
	b.MaxElapsedTime = c.cfg.MaxElapsedTime

	attempt := 0
	operation := func() error {
		attempt++
		err := c.doRequest(ctx, requestURL, out)
		if err == nil {
			return nil
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Temporary() {
			return backoff.Permanent(err)
		}
		var respErr *ResponseError
		if errors.As(err, &respErr) {
			return backoff.Permanent(err)
		}

		c.logger.WithFields(logrus.Fields{
			"op":      op,
			"attempt": attempt,
		}).WithError(err).Warn("lookup request failed, retrying")
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("lookup: %s: %w", op, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ResponseError{Op: "decode", Err: err}
	}
	return nil
}
