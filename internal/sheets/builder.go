// Package sheets fetches and normalizes the manually maintained local-race
// results out of a Google spreadsheet. Rows follow the newsroom convention
// [title, isRepublican, candidate, votes, candidate, votes, ...]; anything
// that doesn't is filtered out before grouping.
package sheets

import (
	"strconv"
	"strings"

	"github.com/sa-express-news/2018-primaries-server/internal/lookup"
	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

// IsPrimaryRow reports whether a raw spreadsheet row matches the expected
// shape: at least a title, a party flag, and one candidate/votes pair, with
// the party flag spelling "true" or "false". It only checks the first pair;
// the candidate builder skips garbage trailing cells on its own.
func IsPrimaryRow(row []string) bool {
	if len(row) < 4 {
		return false
	}
	for _, cell := range row[:4] {
		if cell == "" {
			return false
		}
	}
	switch strings.ToLower(row[1]) {
	case "true", "false":
		return true
	}
	return false
}

// BuildCandidates interprets cells as (name, votes) pairs. Pairs with an
// empty name cell are dropped; that is how ragged rows with stray trailing
// cells degrade. Unparseable vote counts default to 0.
func BuildCandidates(cells []string) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(cells)/2)
	for i := 0; i+1 < len(cells); i += 2 {
		if cells[i] == "" {
			continue
		}
		votes, err := strconv.Atoi(strings.TrimSpace(cells[i+1]))
		if err != nil {
			votes = 0
		}
		candidates = append(candidates, models.Candidate{
			Name:  cells[i],
			Votes: votes,
		})
	}
	return candidates
}

// BuildRace converts one row into a race. The title is the row's first cell
// verbatim, the party flag its second, and everything from the third cell on
// is candidate pairs.
func BuildRace(row []string) models.Race {
	return models.Race{
		Title:        row[0],
		IsRepublican: strings.EqualFold(row[1], "true"),
		Candidates:   BuildCandidates(row[2:]),
	}
}

// BuildPrimaries filters rows through the classifier, then groups the
// survivors into primaries by their literal title cell, in first-seen order.
// The stable primary ID is resolved from the title table, defaulting to 0
// for titles the table does not know.
func BuildPrimaries(rows [][]string, tables *lookup.Tables) []models.Primary {
	primaries := make([]models.Primary, 0)
	byTitle := make(map[string]int)

	for _, row := range rows {
		if !IsPrimaryRow(row) {
			continue
		}

		race := BuildRace(row)
		if i, seen := byTitle[race.Title]; seen {
			primaries[i].Races = append(primaries[i].Races, race)
			continue
		}

		byTitle[race.Title] = len(primaries)
		primaries = append(primaries, models.Primary{
			Title: race.Title,
			ID:    tables.IDForPrimary(race.Title),
			Races: []models.Race{race},
		})
	}

	return primaries
}
