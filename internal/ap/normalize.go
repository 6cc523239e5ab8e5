package ap

import (
	"fmt"
	"strings"

	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

// NormalizeCandidates converts AP candidates to the unified model, one output
// per input in ballot order. Malformed individual records degrade to
// defaults; a missing vote count is 0, and the winner/runoff flags are set
// only for the exact marker codes, never both.
func NormalizeCandidates(raw []RawCandidate) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(raw))
	for _, rc := range raw {
		candidate := models.Candidate{
			Name:  rc.First + " " + rc.Last,
			Votes: rc.VoteCount,
		}
		if rc.Incumbent {
			candidate.Incumbent = true
		}
		switch rc.Winner {
		case winnerCodeWinner:
			candidate.Winner = true
		case winnerCodeRunoff:
			candidate.Runoff = true
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// NormalizeRace converts one AP race to the unified model using only its
// first reporting unit. The feed orders units state first, and state-level
// aggregates are the only ones we publish, so county and precinct units are
// discarded. A race with no reporting units violates that precondition and
// fails the whole fetch cycle.
func NormalizeRace(raw *RawRace) (models.Race, error) {
	if len(raw.ReportingUnits) == 0 {
		return models.Race{}, fmt.Errorf("race %s (%s): %w", raw.RaceID, raw.OfficeName, models.ErrMissingReportingUnit)
	}

	unit := raw.ReportingUnits[0]
	pct := unit.PrecinctsReportingPct

	title := raw.OfficeName
	if raw.SeatName != "" {
		title = raw.OfficeName + " - " + raw.SeatName
	}

	return models.Race{
		IsRepublican:              strings.EqualFold(raw.Party, gopPartyCode),
		Title:                     title,
		Candidates:                NormalizeCandidates(unit.Candidates),
		Source:                    models.SourceAssociatedPress,
		PercentPrecinctsReporting: &pct,
	}, nil
}
