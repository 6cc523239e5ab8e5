package ap

import (
	"strconv"

	"github.com/sa-express-news/2018-primaries-server/internal/lookup"
	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

// GroupResult is the outcome of grouping one page of AP races into
// primaries. Ignored holds the races excluded by the allow-list, kept so
// callers and tests can observe what was filtered instead of losing it
// silently.
type GroupResult struct {
	Primaries []models.Primary
	Ignored   []RawRace
}

// GroupPrimaries folds AP races into primaries keyed by the canonical title
// from the race-ID lookup table. Races whose ID is absent from the table are
// partitioned into Ignored; races sharing a title accumulate onto the same
// primary in first-seen order. The primary's stable ID is resolved from the
// title table at grouping time.
func GroupPrimaries(races []RawRace, tables *lookup.Tables) (GroupResult, error) {
	result := GroupResult{}
	byTitle := make(map[string]int) // title -> index into result.Primaries

	for _, raw := range races {
		raceID, err := strconv.Atoi(raw.RaceID)
		if err != nil {
			// Non-numeric race IDs can't be on the allow-list.
			result.Ignored = append(result.Ignored, raw)
			continue
		}

		title, ok := tables.TitleForRace(raceID)
		if !ok {
			result.Ignored = append(result.Ignored, raw)
			continue
		}

		race, err := NormalizeRace(&raw)
		if err != nil {
			return GroupResult{}, err
		}

		if i, seen := byTitle[title]; seen {
			result.Primaries[i].Races = append(result.Primaries[i].Races, race)
			continue
		}

		byTitle[title] = len(result.Primaries)
		result.Primaries = append(result.Primaries, models.Primary{
			Title: title,
			ID:    tables.IDForPrimary(title),
			Races: []models.Race{race},
		})
	}

	return result, nil
}
