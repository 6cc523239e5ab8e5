// Package lookup holds the curated identity tables that tie the two data
// sources together: the AP feed identifies races by numeric ID, the
// spreadsheet by title, and subscribers want a stable small integer per
// primary. Tables is an immutable value built once at startup and injected
// into the groupers, never a process-wide mutable map.
package lookup

// Tables maps AP race IDs to canonical primary titles and canonical titles
// to stable primary IDs. The race-ID table doubles as an allow-list: AP
// races whose ID is absent are deliberately excluded from output.
type Tables struct {
	raceTitles map[int]string
	primaryIDs map[string]int
}

// New builds an immutable Tables from the two mappings. Both maps are
// copied so later mutation of the arguments cannot leak in.
func New(raceTitles map[int]string, primaryIDs map[string]int) *Tables {
	t := &Tables{
		raceTitles: make(map[int]string, len(raceTitles)),
		primaryIDs: make(map[string]int, len(primaryIDs)),
	}
	for id, title := range raceTitles {
		t.raceTitles[id] = title
	}
	for title, id := range primaryIDs {
		t.primaryIDs[title] = id
	}
	return t
}

// TitleForRace resolves an AP race ID to its canonical primary title.
// ok is false for races outside the curated allow-list.
func (t *Tables) TitleForRace(raceID int) (string, bool) {
	title, ok := t.raceTitles[raceID]
	return title, ok
}

// IDForPrimary resolves a canonical primary title to its stable ID,
// defaulting to 0 for titles the table does not know.
func (t *Tables) IDForPrimary(title string) int {
	return t.primaryIDs[title]
}

// RaceCount returns the number of race IDs on the allow-list.
func (t *Tables) RaceCount() int {
	return len(t.raceTitles)
}
