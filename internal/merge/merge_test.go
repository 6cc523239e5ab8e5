package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

func primary(title string, votes int) models.Primary {
	return models.Primary{
		Title: title,
		Races: []models.Race{
			{Title: title, Candidates: []models.Candidate{{Name: "Someone", Votes: votes}}},
		},
	}
}

func titles(primaries []models.Primary) []string {
	out := make([]string, len(primaries))
	for i, p := range primaries {
		out[i] = p.Title
	}
	return out
}

func TestKeyedReplacesMatchingKeys(t *testing.T) {
	prev := []models.Primary{primary("A", 0), primary("B", 0)}
	next := []models.Primary{primary("B", 500)}

	merged := Primaries(prev, next)

	require.Len(t, merged, 2)
	assert.Equal(t, []string{"A", "B"}, titles(merged))
	assert.Equal(t, 0, merged[0].TotalVotes(), "unmatched old entry preserved unchanged")
	assert.Equal(t, 500, merged[1].TotalVotes(), "matched key carries the new value")
}

func TestKeyedKeepsAllNewEntries(t *testing.T) {
	prev := []models.Primary{primary("Governor", 10)}
	next := []models.Primary{primary("U.S. Senate", 20), primary("Governor", 30)}

	merged := Primaries(prev, next)

	require.Len(t, merged, 2)
	// Surviving old entries come first, then the entirety of the new list
	// in its own order.
	assert.Equal(t, []string{"U.S. Senate", "Governor"}, titles(merged))
	assert.Equal(t, 30, merged[1].TotalVotes())
}

func TestKeyedEmptyInputs(t *testing.T) {
	next := []models.Primary{primary("A", 1)}

	assert.Equal(t, titles(next), titles(Primaries(nil, next)))
	assert.Equal(t, []string{"A"}, titles(Primaries(next, nil)))
	assert.Empty(t, Primaries(nil, nil))
}

func TestKeyedSizeInvariant(t *testing.T) {
	prev := []models.Primary{primary("A", 1), primary("B", 2), primary("C", 3)}
	next := []models.Primary{primary("B", 20), primary("D", 40)}

	merged := Primaries(prev, next)

	// |old keys not in new| + |new| = 2 + 2
	assert.Len(t, merged, 4)
	assert.Equal(t, []string{"A", "C", "B", "D"}, titles(merged))
}

func TestKeyedRemergeIsNoop(t *testing.T) {
	prev := []models.Primary{primary("A", 1), primary("B", 2)}
	next := []models.Primary{primary("B", 20), primary("C", 30)}

	once := Primaries(prev, next)
	twice := Primaries(once, next)

	assert.Equal(t, once, twice)
}

func TestKeyedGenericOverOtherTypes(t *testing.T) {
	type entry struct {
		Key   string
		Value int
	}
	prev := []entry{{"x", 1}, {"y", 2}}
	next := []entry{{"y", 9}}

	merged := Keyed(prev, next, func(e entry) string { return e.Key })

	assert.Equal(t, []entry{{"x", 1}, {"y", 9}}, merged)
}
