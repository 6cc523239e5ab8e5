// Package models defines the unified election data model shared by every
// source pipeline: a Primary holds one Race per party, a Race holds its
// Candidates in ballot order. All three are immutable value records rebuilt
// from scratch on every fetch cycle.
package models

// SourceAssociatedPress labels races whose numbers came from the AP feed.
// Spreadsheet races carry no source label.
const SourceAssociatedPress = "Associated Press"

// Candidate represents one person running in a race. The optional status
// flags are serialized only when true, matching the wire format subscribers
// already consume.
type Candidate struct {
	Name      string `json:"name"`
	Votes     int    `json:"votes"`
	Incumbent bool   `json:"incumbent,omitempty"`
	Winner    bool   `json:"winner,omitempty"`
	Runoff    bool   `json:"runoff,omitempty"`
}

// Race represents one party's contest for an office within a primary.
// PercentPrecinctsReporting is a pointer because only the Associated Press
// feed reports it; spreadsheet races omit the field entirely.
type Race struct {
	IsRepublican              bool        `json:"isRepublican"`
	Title                     string      `json:"title"`
	Candidates                []Candidate `json:"candidates"`
	Source                    string      `json:"source,omitempty"`
	SourceURL                 string      `json:"source_url,omitempty"`
	PercentPrecinctsReporting *float64    `json:"percentPrecinctsReporting,omitempty"`
}

// Primary represents one electoral contest for a single office. Title is the
// merge key: two primaries with equal titles are the same logical entity
// across fetch cycles and across sources.
type Primary struct {
	Title string `json:"title"`
	ID    int    `json:"id"`
	Races []Race `json:"races"`
}

// TotalVotes sums the vote counts of every candidate across all races.
func (p *Primary) TotalVotes() int {
	total := 0
	for _, r := range p.Races {
		for _, c := range r.Candidates {
			total += c.Votes
		}
	}
	return total
}
