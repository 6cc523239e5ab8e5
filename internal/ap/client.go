package ap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/sa-express-news/2018-primaries-server/internal/lookup"
	"github.com/sa-express-news/2018-primaries-server/internal/metrics"
	"github.com/sa-express-news/2018-primaries-server/internal/models"
	"github.com/sa-express-news/2018-primaries-server/internal/source"
)

const sourceName = "associated_press"

// FetchResult is one page of AP data, grouped into primaries, plus the
// cursor URL for the next poll.
type FetchResult struct {
	Primaries []models.Primary
	Ignored   []RawRace
	NextURL   string
}

// Client polls the AP elections API. Each fetch consumes the cursor URL it
// is handed and reports the next one, so successive polls walk the feed's
// change stream instead of re-downloading everything.
type Client struct {
	httpClient *source.RateLimitedHTTPClient
	apiKey     string
	tables     *lookup.Tables
	logger     *logrus.Logger
}

// NewClient creates a new AP API client
func NewClient(httpClient *source.RateLimitedHTTPClient, apiKey string, tables *lookup.Tables, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		tables:     tables,
		logger:     logger,
	}
}

// Fetch retrieves one page of results from the given cursor URL and groups
// it into primaries. Any failure aborts the cycle; no partial result is
// returned.
func (c *Client) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, source.NewError(sourceName, source.ErrCodeNetworkError, "failed to fetch results page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, source.NewError(sourceName, source.ErrCodeAuthenticationFailed, "invalid API key", nil)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, source.NewError(sourceName, source.ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var page APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, source.NewError(sourceName, source.ErrCodeInvalidData, "failed to parse response", err)
	}

	grouped, err := GroupPrimaries(page.Races, c.tables)
	if err != nil {
		return nil, source.NewError(sourceName, source.ErrCodeInvalidData, "failed to group races", err)
	}

	metrics.IgnoredRacesLastCycle.Set(float64(len(grouped.Ignored)))
	if len(grouped.Ignored) > 0 {
		c.logger.WithFields(logrus.Fields{
			"ignored": len(grouped.Ignored),
			"grouped": len(grouped.Primaries),
		}).Debug("Filtered AP races outside the allow-list")
	}

	return &FetchResult{
		Primaries: grouped.Primaries,
		Ignored:   grouped.Ignored,
		NextURL:   c.NextURL(page.NextRequest),
	}, nil
}

// NextURL forms the next cursor URL by appending the API key to the
// nextrequest token the feed reports.
func (c *Client) NextURL(nextRequest string) string {
	if nextRequest == "" {
		return ""
	}
	return fmt.Sprintf("%s&apikey=%s", nextRequest, c.apiKey)
}
