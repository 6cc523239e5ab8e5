package ap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

func TestNormalizeCandidatesVotes(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawCandidate
		wantVotes int
	}{
		{"numeric vote count kept", RawCandidate{First: "Beto", Last: "O'Rourke", VoteCount: 12345}, 12345},
		{"absent vote count defaults to zero", RawCandidate{First: "Ted", Last: "Cruz"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCandidates([]RawCandidate{tt.raw})
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantVotes, got[0].Votes)
		})
	}
}

func TestNormalizeCandidatesWinnerCodes(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantWinner bool
		wantRunoff bool
	}{
		{"X marks a winner", "X", true, false},
		{"R marks a runoff", "R", false, true},
		{"no code sets neither", "", false, false},
		{"unknown code sets neither", "Q", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCandidates([]RawCandidate{{First: "Kim", Last: "Olson", Winner: tt.code}})
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantWinner, got[0].Winner)
			assert.Equal(t, tt.wantRunoff, got[0].Runoff)
		})
	}
}

func TestNormalizeCandidatesNameAndIncumbent(t *testing.T) {
	got := NormalizeCandidates([]RawCandidate{
		{First: "Greg", Last: "Abbott", Incumbent: true, VoteCount: 90},
		{First: "Andrew", Last: "White", VoteCount: 10},
	})

	require.Len(t, got, 2, "one output per input, nothing dropped")
	assert.Equal(t, "Greg Abbott", got[0].Name)
	assert.True(t, got[0].Incumbent)
	assert.Equal(t, "Andrew White", got[1].Name)
	assert.False(t, got[1].Incumbent)
}

func TestNormalizeRace(t *testing.T) {
	raw := RawRace{
		RaceID:     "44175",
		OfficeName: "U.S. House",
		SeatName:   "District 9",
		Party:      "GOP",
		ReportingUnits: []RawReportingUnit{
			{
				Level:                 "state",
				PrecinctsReportingPct: 0,
				Candidates:            []RawCandidate{{First: "Kim", Last: "Olson", VoteCount: 0, Winner: "X"}},
			},
		},
	}

	race, err := NormalizeRace(&raw)
	require.NoError(t, err)

	assert.True(t, race.IsRepublican)
	assert.Equal(t, "U.S. House - District 9", race.Title)
	assert.Equal(t, models.SourceAssociatedPress, race.Source)
	require.NotNil(t, race.PercentPrecinctsReporting)
	assert.Equal(t, 0.0, *race.PercentPrecinctsReporting)
	require.Len(t, race.Candidates, 1)
	assert.Equal(t, models.Candidate{Name: "Kim Olson", Votes: 0, Winner: true}, race.Candidates[0])
}

func TestNormalizeRaceUsesOnlyFirstReportingUnit(t *testing.T) {
	raw := RawRace{
		RaceID:     "44010",
		OfficeName: "Governor",
		Party:      "Dem",
		ReportingUnits: []RawReportingUnit{
			{Level: "state", PrecinctsReportingPct: 42.5, Candidates: []RawCandidate{{First: "Lupe", Last: "Valdez", VoteCount: 100}}},
			{Level: "county", PrecinctsReportingPct: 99, Candidates: []RawCandidate{{First: "Should", Last: "Not Appear", VoteCount: 1}}},
		},
	}

	race, err := NormalizeRace(&raw)
	require.NoError(t, err)

	assert.False(t, race.IsRepublican)
	assert.Equal(t, "Governor", race.Title, "no seat name, office name stands alone")
	assert.Equal(t, 42.5, *race.PercentPrecinctsReporting)
	require.Len(t, race.Candidates, 1)
	assert.Equal(t, "Lupe Valdez", race.Candidates[0].Name)
}

func TestNormalizeRaceMissingReportingUnits(t *testing.T) {
	raw := RawRace{RaceID: "44010", OfficeName: "Governor", Party: "Dem"}

	_, err := NormalizeRace(&raw)

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrMissingReportingUnit))
}
