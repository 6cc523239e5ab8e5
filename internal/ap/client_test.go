package ap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-express-news/2018-primaries-server/internal/metrics"
	"github.com/sa-express-news/2018-primaries-server/internal/source"
)

const apiPage = `{
	"electionDate": "2018-03-06",
	"timestamp": "2018-03-06T20:00:00Z",
	"nextrequest": "https://api.ap.org/v2/elections/2018-03-06?minDateTime=2018-03-06T20:00:00Z",
	"races": [
		{
			"raceID": "44010",
			"officeName": "Governor",
			"party": "Dem",
			"reportingUnits": [
				{
					"level": "state",
					"precinctsReportingPct": 12.5,
					"candidates": [
						{"first": "Lupe", "last": "Valdez", "voteCount": 4200},
						{"first": "Andrew", "last": "White", "voteCount": 3100}
					]
				}
			]
		},
		{
			"raceID": "99999",
			"officeName": "Dog Catcher",
			"party": "GOP",
			"reportingUnits": [{"level": "state", "candidates": []}]
		}
	]
}`

func newTestClient(t *testing.T) *Client {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	httpClient := source.NewRateLimitedHTTPClient(source.HTTPClientConfig{
		Timeout:           5 * time.Second,
		MaxRetries:        0,
		RateLimit:         100,
		CircuitBreakerMax: 5,
	}, logger)
	return NewClient(httpClient, "test-key", testTables(), logger)
}

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, apiPage)
	}))
	defer server.Close()

	client := newTestClient(t)
	result, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	require.Len(t, result.Primaries, 1)
	governor := result.Primaries[0]
	assert.Equal(t, "Governor", governor.Title)
	require.Len(t, governor.Races, 1)
	assert.Equal(t, 4200, governor.Races[0].Candidates[0].Votes)

	require.Len(t, result.Ignored, 1, "race outside the allow-list is partitioned, not dropped silently")
	assert.Equal(t, "Dog Catcher", result.Ignored[0].OfficeName)

	assert.Equal(t,
		"https://api.ap.org/v2/elections/2018-03-06?minDateTime=2018-03-06T20:00:00Z&apikey=test-key",
		result.NextURL, "cursor advances with the API key reattached")

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.IgnoredRacesLastCycle),
		"the ignored partition is reported on the gauge")
}

func TestClientFetchResetsIgnoredGauge(t *testing.T) {
	metrics.IgnoredRacesLastCycle.Set(7)

	page := `{"nextrequest": "", "races": [
		{"raceID": "44010", "officeName": "Governor", "party": "Dem",
		 "reportingUnits": [{"level": "state", "candidates": []}]}
	]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, page)
	}))
	defer server.Close()

	client := newTestClient(t)
	_, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.IgnoredRacesLastCycle),
		"a clean page clears a stale count from the previous cycle")
}

func TestClientFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t)
	_, err := client.Fetch(context.Background(), server.URL)

	require.Error(t, err)
	var srcErr source.Error
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, sourceName, srcErr.Source)
}

func TestClientFetchAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t)
	_, err := client.Fetch(context.Background(), server.URL)

	require.Error(t, err)
	var srcErr source.Error
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, source.ErrCodeAuthenticationFailed, srcErr.Code)
}

func TestClientNextURLEmptyCursor(t *testing.T) {
	client := newTestClient(t)
	assert.Equal(t, "", client.NextURL(""), "feed end produces no cursor rather than a dangling apikey")
}
