// Package ap fetches and normalizes primary results from the Associated
// Press elections API. The raw wire shapes are decoded into explicit structs
// at the fetch boundary; nothing loosely typed travels past this package.
package ap

// APIResponse is one page of the AP elections API. The nextrequest field is
// the pagination cursor for the following poll.
type APIResponse struct {
	ElectionDate string    `json:"electionDate"`
	Timestamp    string    `json:"timestamp"`
	Races        []RawRace `json:"races"`
	NextRequest  string    `json:"nextrequest"`
}

// RawRace is one race as the AP reports it. Numeric identifiers come through
// as strings and are parsed during normalization.
type RawRace struct {
	RaceID         string             `json:"raceID"`
	RaceType       string             `json:"raceType"`
	RaceTypeID     string             `json:"raceTypeID"`
	OfficeID       string             `json:"officeID"`
	OfficeName     string             `json:"officeName"`
	SeatName       string             `json:"seatName,omitempty"`
	Party          string             `json:"party"`
	NumRunoff      int                `json:"numRunoff,omitempty"`
	National       bool               `json:"national,omitempty"`
	Uncontested    bool               `json:"uncontested,omitempty"`
	ReportingUnits []RawReportingUnit `json:"reportingUnits"`
}

// RawReportingUnit is one geographic aggregation level of a race. The feed
// lists the state-level unit first, followed by county and precinct units.
type RawReportingUnit struct {
	StatePostal           string         `json:"statePostal"`
	StateName             string         `json:"stateName"`
	Level                 string         `json:"level"`
	LastUpdated           string         `json:"lastUpdated"`
	PrecinctsReporting    int            `json:"precinctsReporting"`
	PrecinctsTotal        int            `json:"precinctsTotal"`
	PrecinctsReportingPct float64        `json:"precinctsReportingPct"`
	Candidates            []RawCandidate `json:"candidates"`
}

// RawCandidate is one candidate inside a reporting unit. Winner is a marker
// code, not a boolean: "X" declares a winner, "R" a runoff berth.
type RawCandidate struct {
	First       string `json:"first"`
	Last        string `json:"last"`
	Party       string `json:"party"`
	CandidateID string `json:"candidateID"`
	PolID       string `json:"polID"`
	BallotOrder int    `json:"ballotOrder"`
	PolNum      string `json:"polNum"`
	VoteCount   int    `json:"voteCount,omitempty"`
	Winner      string `json:"winner,omitempty"`
	Incumbent   bool   `json:"incumbent,omitempty"`
}

// Winner marker codes used by the AP feed.
const (
	winnerCodeWinner = "X"
	winnerCodeRunoff = "R"
)

// gopPartyCode is the AP party token for Republican races.
const gopPartyCode = "gop"
