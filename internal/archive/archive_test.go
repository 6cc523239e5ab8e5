package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func snapshotWith(title string, votes int) models.Snapshot {
	return models.Snapshot{
		Primaries: []models.Primary{
			{
				Title: title,
				Races: []models.Race{
					{Title: title, Candidates: []models.Candidate{{Name: "Someone", Votes: votes}}},
				},
			},
		},
	}
}

func TestSaveAndLatest(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, snapshotWith("Governor", 10)))
	require.NoError(t, a.Save(ctx, snapshotWith("Governor", 500)))

	latest, err := a.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500, latest.Snapshot.Primaries[0].TotalVotes())
	assert.False(t, latest.CapturedAt.IsZero())

	count, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLatestEmptyArchive(t *testing.T) {
	a := openTestArchive(t)

	_, err := a.Latest(context.Background())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRecentNewestFirst(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	for votes := 1; votes <= 3; votes++ {
		require.NoError(t, a.Save(ctx, snapshotWith("Governor", votes)))
	}

	entries, err := a.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].Snapshot.Primaries[0].TotalVotes())
	assert.Equal(t, 2, entries[1].Snapshot.Primaries[0].TotalVotes())
}

func TestPing(t *testing.T) {
	a := openTestArchive(t)
	assert.NoError(t, a.Ping(context.Background()))
}
