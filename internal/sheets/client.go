package sheets

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	sheetsapi "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"github.com/sa-express-news/2018-primaries-server/internal/lookup"
	"github.com/sa-express-news/2018-primaries-server/internal/models"
	"github.com/sa-express-news/2018-primaries-server/internal/source"
)

const sourceName = "google_sheets"

// Credentials holds the OAuth pieces needed for read-only spreadsheet
// access. The refresh token is minted once out of band; the client trades it
// for access tokens on its own.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Client reads election rows from one spreadsheet range.
type Client struct {
	service       *sheetsapi.Service
	spreadsheetID string
	readRange     string
	tables        *lookup.Tables
	logger        *logrus.Logger
}

// NewClient creates a Sheets API client for the given spreadsheet and range
// (formatted "{Sheet Name}!A2:N").
func NewClient(ctx context.Context, creds Credentials, spreadsheetID, readRange string, tables *lookup.Tables, logger *logrus.Logger) (*Client, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{sheetsapi.SpreadsheetsReadonlyScope},
	}

	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, source.NewError(sourceName, source.ErrCodeAuthenticationFailed, "failed to build sheets service", err)
	}

	return &Client{
		service:       svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		tables:        tables,
		logger:        logger,
	}, nil
}

// FetchRows retrieves the configured range as string cells, row-major.
func (c *Client) FetchRows(ctx context.Context) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return nil, source.NewError(sourceName, source.ErrCodeNetworkError, "failed to fetch spreadsheet range", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, rawRow := range resp.Values {
		row := make([]string, 0, len(rawRow))
		for _, cell := range rawRow {
			s, _ := cell.(string)
			row = append(row, s)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchPrimaries retrieves the sheet and groups its rows into primaries.
func (c *Client) FetchPrimaries(ctx context.Context) ([]models.Primary, error) {
	rows, err := c.FetchRows(ctx)
	if err != nil {
		return nil, err
	}

	primaries := BuildPrimaries(rows, c.tables)
	c.logger.WithFields(logrus.Fields{
		"rows":      len(rows),
		"primaries": len(primaries),
	}).Debug("Built primaries from spreadsheet rows")

	return primaries, nil
}
