package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mahendraputra/idx-radar/internal/config"
	"github.com/mahendraputra/idx-radar/internal/models"
	"github.com/mahendraputra/idx-radar/pkg/logger"
)

// Client downloads the trading and sector CSVs from the object store.
// Both feeds are public, read-only URLs; one download per reload.
type Client struct {
	httpClient *http.Client
	primaryURL string
	sectorURL  string
}

// NewClient creates a feed client from configuration.
func NewClient(cfg config.FeedConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		primaryURL: cfg.PrimaryURL,
		sectorURL:  cfg.SectorURL,
	}
}

// FetchRecords downloads and parses the primary trading feed.
func (c *Client) FetchRecords(ctx context.Context) ([]models.TradingRecord, error) {
	start := time.Now()

	resp, err := c.get(ctx, c.primaryURL)
	if err != nil {
		return nil, fmt.Errorf("fetching primary feed: %w", err)
	}
	defer resp.Body.Close()

	records, err := ParseRecords(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing primary feed: %w", err)
	}

	logger.FeedFetchDuration.WithLabelValues("primary").Observe(time.Since(start).Seconds())
	logger.Info("Fetched primary feed",
		logger.Int("rows", len(records)),
		logger.Duration("elapsed", time.Since(start)),
	)

	return records, nil
}

// FetchSectors downloads and parses the sector mapping feed. An
// unconfigured URL yields an empty mapping without error; the caller
// decides how to treat a configured-but-failing feed.
func (c *Client) FetchSectors(ctx context.Context) (map[string]string, error) {
	if c.sectorURL == "" {
		return map[string]string{}, nil
	}

	start := time.Now()

	resp, err := c.get(ctx, c.sectorURL)
	if err != nil {
		return nil, fmt.Errorf("fetching sector feed: %w", err)
	}
	defer resp.Body.Close()

	sectors, err := ParseSectors(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing sector feed: %w", err)
	}

	logger.FeedFetchDuration.WithLabelValues("sector").Observe(time.Since(start).Seconds())
	logger.Info("Fetched sector feed",
		logger.Int("stocks", len(sectors)),
		logger.Duration("elapsed", time.Since(start)),
	)

	return sectors, nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFeedUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d", models.ErrFeedUnavailable, resp.StatusCode)
	}

	return resp, nil
}
