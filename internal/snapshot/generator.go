// Package snapshot orchestrates one fetch cycle: both sources are polled
// concurrently, their primaries concatenated, and the result reconciled
// against the previous snapshot. A cycle either produces a complete new
// snapshot or fails whole; there is no partial update.
package snapshot

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sa-express-news/2018-primaries-server/internal/ap"
	"github.com/sa-express-news/2018-primaries-server/internal/merge"
	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

// APSource is the polling-source boundary: one page of grouped primaries
// plus the cursor for the next poll.
type APSource interface {
	Fetch(ctx context.Context, url string) (*ap.FetchResult, error)
}

// SheetSource is the spreadsheet boundary.
type SheetSource interface {
	FetchPrimaries(ctx context.Context) ([]models.Primary, error)
}

// Generator produces successive snapshots from the two sources.
type Generator struct {
	apSource    APSource
	sheetSource SheetSource
	logger      *logrus.Logger
}

// NewGenerator creates a new snapshot generator
func NewGenerator(apSource APSource, sheetSource SheetSource, logger *logrus.Logger) *Generator {
	return &Generator{
		apSource:    apSource,
		sheetSource: sheetSource,
		logger:      logger,
	}
}

// Generate fetches both sources, concatenates AP primaries ahead of
// spreadsheet primaries, and merges the result against the previous
// snapshot keyed by title. The AP pagination cursor advances to whatever
// the feed reported. Any fetch failure aborts the cycle and the previous
// snapshot remains the last known-good state.
func (g *Generator) Generate(ctx context.Context, previous models.Snapshot) (models.Snapshot, error) {
	var (
		apResult       *ap.FetchResult
		sheetPrimaries []models.Primary
	)

	// The two fetches share no data; reconciliation is the join point.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		result, err := g.apSource.Fetch(groupCtx, previous.NextAPRequestURL)
		if err != nil {
			return err
		}
		apResult = result
		return nil
	})
	group.Go(func() error {
		primaries, err := g.sheetSource.FetchPrimaries(groupCtx)
		if err != nil {
			return err
		}
		sheetPrimaries = primaries
		return nil
	})

	if err := group.Wait(); err != nil {
		return models.Snapshot{}, err
	}

	fresh := make([]models.Primary, 0, len(apResult.Primaries)+len(sheetPrimaries))
	fresh = append(fresh, apResult.Primaries...)
	fresh = append(fresh, sheetPrimaries...)

	next := models.Snapshot{
		Primaries:        merge.Primaries(previous.Primaries, fresh),
		NextAPRequestURL: apResult.NextURL,
	}

	g.logger.WithFields(logrus.Fields{
		"ap_primaries":    len(apResult.Primaries),
		"ap_ignored":      len(apResult.Ignored),
		"sheet_primaries": len(sheetPrimaries),
		"total":           len(next.Primaries),
	}).Info("Generated snapshot")

	return next, nil
}
