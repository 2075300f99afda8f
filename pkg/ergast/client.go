package ergast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"lazyf1/pkg/model"
)

const (
	DefaultBaseURL = "https://api.jolpi.ca/ergast/f1"

	userAgent = "lazyf1/1.0"

	// the provider caps list endpoints, one season of results fits well below
	resultsLimit = 100
)

// Config collects the knobs for a Client.
type Config struct {
	BaseURL           string
	CacheDir          string
	ScheduleTTL       time.Duration
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client fetches season schedules and race results from an
// Ergast-compatible API, with a courtesy rate limit and an on-disk
// response cache.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	cache       *responseCache
	scheduleTTL time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 3
	}
	var cache *responseCache
	if cfg.CacheDir != "" {
		var err error
		cache, err = newResponseCache(cfg.CacheDir)
		if err != nil {
			return nil, errors.Wrap(err, "creating response cache dir")
		}
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cache:       cache,
		scheduleTTL: cfg.ScheduleTTL,
	}, nil
}

// Schedule returns the season's rounds in schedule order.
func (c *Client) Schedule(ctx context.Context, year int) ([]model.Event, error) {
	key := fmt.Sprintf("schedule_%d.json", year)

	if body, ok := c.cached(key, c.scheduleTTL); ok {
		if events, err := parseSchedule(body); err == nil {
			return events, nil
		}
		// corrupt cache entry, refetch
	}

	url := fmt.Sprintf("%s/%d.json", c.baseURL, year)
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching schedule for %d", year)
	}
	events, err := parseSchedule(body)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding schedule for %d", year)
	}
	c.store(key, body)
	return events, nil
}

// RaceResults returns the classification rows for one round, in the order
// the provider lists them.
func (c *Client) RaceResults(ctx context.Context, year, round int) ([]model.RaceResult, error) {
	key := fmt.Sprintf("results_%d_%02d.json", year, round)

	// results never change once published, cached entries never expire
	if body, ok := c.cached(key, 0); ok {
		if results, err := parseResults(body); err == nil {
			return results, nil
		}
	}

	url := fmt.Sprintf("%s/%d/%d/results.json?limit=%d", c.baseURL, year, round, resultsLimit)
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching results for %d round %d", year, round)
	}
	results, err := parseResults(body)
	if err != nil {
		// an empty payload means the provider has not published the round
		// yet; caching it would hide the results forever once they land
		return nil, errors.Wrapf(err, "decoding results for %d round %d", year, round)
	}
	c.store(key, body)
	return results, nil
}

func parseSchedule(body []byte) ([]model.Event, error) {
	var payload scheduleResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	events := make([]model.Event, 0, len(payload.MRData.RaceTable.Races))
	for _, race := range payload.MRData.RaceTable.Races {
		events = append(events, race.toEvent())
	}
	return events, nil
}

func parseResults(body []byte) ([]model.RaceResult, error) {
	var payload resultsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	races := payload.MRData.RaceTable.Races
	if len(races) == 0 {
		return nil, errors.New("no results published")
	}
	race := races[0]
	results := make([]model.RaceResult, 0, len(race.Results))
	for _, row := range race.Results {
		r := row.toResult()
		r.RaceName = race.RaceName
		results = append(results, r)
	}
	return results, nil
}

func (c *Client) cached(key string, ttl time.Duration) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.get(key, ttl)
}

func (c *Client) store(key string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.put(key, body); err != nil {
		log.Printf("Error caching response %s: %s", key, err.Error())
	}
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %s (%s)", resp.Status, url)
	}

	return io.ReadAll(resp.Body)
}
