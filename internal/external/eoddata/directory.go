package eoddata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/quantline/eodsync/pkg/config"
	"github.com/quantline/eodsync/pkg/httputil"
	"github.com/quantline/eodsync/pkg/logger"
)

// Listing is one row of an exchange's symbol directory.
type Listing struct {
	Symbol string
	Name   string
}

// Client scrapes an exchange's listing directory page. Used to seed and
// refresh the local securities registry between import runs.
type Client struct {
	httpClient *httputil.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a directory client.
func NewClient(cfg config.DirectoryConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httputil.New(log),
		baseURL:    cfg.BaseURL,
		logger:     log.WithField("module", "eoddata"),
	}
}

// FetchListings fetches and parses the symbol directory for one
// exchange code (e.g. "NYSE").
func (c *Client) FetchListings(ctx context.Context, exchangeCode string) ([]Listing, error) {
	url := fmt.Sprintf("%s/%s.htm", c.baseURL, exchangeCode)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch listing page: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read listing page: %w", err)
	}

	listings, err := parseListings(string(body))
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"exchange": exchangeCode,
		"count":    len(listings),
	}).Debug("Fetched listings")

	return listings, nil
}

// parseListings extracts symbol/name pairs from the directory page's
// quotes table.
func parseListings(html string) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	var listings []Listing
	doc.Find("table.quotes tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return // header or spacer row
		}

		symbol := strings.TrimSpace(cells.Eq(0).Text())
		name := strings.TrimSpace(cells.Eq(1).Text())
		if symbol == "" {
			return
		}

		listings = append(listings, Listing{Symbol: symbol, Name: name})
	})

	return listings, nil
}
