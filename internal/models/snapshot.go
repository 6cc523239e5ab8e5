package models

// Snapshot is one complete, reconciled view of every primary the server
// knows about. It is the unit handed to subscribers: the JSON shape is
// exactly {"primaries": [...]}. NextAPRequestURL is the pagination cursor
// for the next Associated Press poll and never leaves the process.
type Snapshot struct {
	Primaries        []Primary `json:"primaries"`
	NextAPRequestURL string    `json:"-"`
}

// FindPrimary returns the primary with the given title, or nil.
func (s *Snapshot) FindPrimary(title string) *Primary {
	for i := range s.Primaries {
		if s.Primaries[i].Title == title {
			return &s.Primaries[i]
		}
	}
	return nil
}
