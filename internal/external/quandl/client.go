package quandl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/quantline/eodsync/pkg/config"
	"github.com/quantline/eodsync/pkg/httputil"
	"github.com/quantline/eodsync/pkg/logger"
)

// Client downloads the vendor's end-of-day bulk database: a single
// zipped CSV covering every symbol the vendor tracks.
type Client struct {
	httpClient *httputil.Client
	cfg        config.VendorConfig
	logger     *logger.Logger
}

// NewClient creates a vendor client. Requests are rate limited per the
// vendor's API terms.
func NewClient(cfg config.VendorConfig, log *logger.Logger) *Client {
	httpClient := httputil.NewWithTimeout(log, cfg.DownloadTimeout).
		WithRateLimit(cfg.RateLimit).
		WithRetry(3, 0)

	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     log.WithField("module", "quandl"),
	}
}

// DownloadBulk fetches the complete EOD database zip into dir and
// returns the path of the downloaded file. The caller owns the file.
func (c *Client) DownloadBulk(ctx context.Context, dir string) (string, error) {
	url := fmt.Sprintf("%s/databases/EOD/data?download_type=complete&api_key=%s",
		c.cfg.BaseURL, c.cfg.APIKey)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("download bulk EOD file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download bulk EOD file: unexpected status %d", resp.StatusCode)
	}

	path := filepath.Join(dir, "eod_bulk.zip")
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"path":  path,
		"bytes": written,
	}).Info("Downloaded bulk EOD file")

	return path, nil
}

// Fetch downloads the bulk file into a temporary directory and returns
// a feed over it. Remove the directory when done with the feed.
func (c *Client) Fetch(ctx context.Context) (*BulkFeed, string, error) {
	dir, err := os.MkdirTemp("", "eodsync-")
	if err != nil {
		return nil, "", fmt.Errorf("create temp dir: %w", err)
	}

	path, err := c.DownloadBulk(ctx, dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, "", err
	}

	return NewBulkFeed(path, c.logger), dir, nil
}
