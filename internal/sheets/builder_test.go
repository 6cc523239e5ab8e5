package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-express-news/2018-primaries-server/internal/lookup"
	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

func testTables() *lookup.Tables {
	return lookup.New(nil, map[string]int{
		"Bexar County District Attorney": 9,
		"District Clerk":                 10,
	})
}

func TestIsPrimaryRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{"valid democratic row", []string{"District Clerk", "FALSE", "Jane Smith", "500"}, true},
		{"valid republican row", []string{"District Clerk", "true", "John Smith", "0"}, true},
		{"too short", []string{"District Clerk", "FALSE", "Jane Smith"}, false},
		{"empty title", []string{"", "FALSE", "Jane Smith", "500"}, false},
		{"empty party flag", []string{"District Clerk", "", "Jane Smith", "500"}, false},
		{"empty first candidate", []string{"District Clerk", "FALSE", "", "500"}, false},
		{"empty first vote cell", []string{"District Clerk", "FALSE", "Jane Smith", ""}, false},
		{"party flag not boolean", []string{"District Clerk", "maybe", "Jane Smith", "500"}, false},
		{"empty row", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPrimaryRow(tt.row))
		})
	}
}

func TestBuildCandidates(t *testing.T) {
	got := BuildCandidates([]string{"Jane Smith", "500", "John Smith", "200"})

	assert.Equal(t, []models.Candidate{
		{Name: "Jane Smith", Votes: 500},
		{Name: "John Smith", Votes: 200},
	}, got)
}

func TestBuildCandidatesSkipsEmptyNames(t *testing.T) {
	got := BuildCandidates([]string{"Jane Smith", "500", "", "999", "John Smith", "200"})

	require.Len(t, got, 2, "pairs with empty name cells are excluded")
	assert.Equal(t, "Jane Smith", got[0].Name)
	assert.Equal(t, "John Smith", got[1].Name)
}

func TestBuildCandidatesUnparseableVotes(t *testing.T) {
	got := BuildCandidates([]string{"Jane Smith", "n/a", "John Smith", ""})

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Votes)
	assert.Equal(t, 0, got[1].Votes)
}

func TestBuildCandidatesOddTrailingCell(t *testing.T) {
	got := BuildCandidates([]string{"Jane Smith", "500", "Dangling Name"})

	require.Len(t, got, 1, "a name with no vote cell is not a pair")
	assert.Equal(t, "Jane Smith", got[0].Name)
}

func TestBuildRace(t *testing.T) {
	race := BuildRace([]string{"Bexar County DA", "FALSE", "Jane Smith", "500", "John Smith", "200"})

	assert.Equal(t, "Bexar County DA", race.Title)
	assert.False(t, race.IsRepublican)
	assert.Empty(t, race.Source, "spreadsheet races carry no source label")
	assert.Nil(t, race.PercentPrecinctsReporting)
	assert.Equal(t, []models.Candidate{
		{Name: "Jane Smith", Votes: 500},
		{Name: "John Smith", Votes: 200},
	}, race.Candidates)
}

func TestBuildPrimariesGroupsByTitle(t *testing.T) {
	rows := [][]string{
		{"Bexar County District Attorney", "FALSE", "Joe Gonzales", "100"},
		{"District Clerk", "FALSE", "Mary Angie Garcia", "50"},
		{"Bexar County District Attorney", "TRUE", "Tylden Shaeffer", "80"},
	}

	primaries := BuildPrimaries(rows, testTables())

	require.Len(t, primaries, 2)
	da := primaries[0]
	assert.Equal(t, "Bexar County District Attorney", da.Title)
	assert.Equal(t, 9, da.ID)
	require.Len(t, da.Races, 2)
	assert.False(t, da.Races[0].IsRepublican)
	assert.True(t, da.Races[1].IsRepublican)

	clerk := primaries[1]
	assert.Equal(t, 10, clerk.ID)
	require.Len(t, clerk.Races, 1)
}

func TestBuildPrimariesFiltersMalformedRows(t *testing.T) {
	rows := [][]string{
		{"District Clerk", "FALSE", "Mary Angie Garcia", "50"},
		{"Notes to self", "do not publish"},
		{"", "", "", ""},
		{"District Clerk", "banana", "Ghost Entry", "1"},
	}

	primaries := BuildPrimaries(rows, testTables())

	require.Len(t, primaries, 1)
	require.Len(t, primaries[0].Races, 1, "malformed rows never reach the builder")
}

func TestBuildPrimariesUnknownTitleDefaultsIDZero(t *testing.T) {
	rows := [][]string{{"Brand New Office", "FALSE", "Jane Smith", "1"}}

	primaries := BuildPrimaries(rows, testTables())

	require.Len(t, primaries, 1)
	assert.Equal(t, 0, primaries[0].ID)
}
