package mlb

import "strconv"

// StatsPayload mirrors the StatsAPI stats envelope:
// {stats: [{splits: [{stat: {...}, team?: {...}}]}]}.
// An envelope with no stats or no splits means the upstream has no
// data for the entity; that is not an error.
type StatsPayload struct {
	Stats []StatGroup `json:"stats"`
}

// StatGroup is one entry of the stats array.
type StatGroup struct {
	Splits []Split `json:"splits"`
}

// Split carries one stat line plus, for player stats, the team it
// was recorded with.
type Split struct {
	Stat map[string]any `json:"stat"`
	Team *TeamRef       `json:"team,omitempty"`
}

// TeamRef identifies the team a split belongs to.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// IsEmpty reports whether the payload carries no stat line at all.
func (p StatsPayload) IsEmpty() bool {
	_, ok := p.FirstSplit()
	return !ok
}

// FirstSplit returns the first seasonal split, which is where the
// StatsAPI puts the season-level line for both players and teams.
func (p StatsPayload) FirstSplit() (Split, bool) {
	if len(p.Stats) == 0 || len(p.Stats[0].Splits) == 0 {
		return Split{}, false
	}
	return p.Stats[0].Splits[0], true
}

// StatString returns the named stat from a split as a string, with ok
// reporting presence. StatsAPI renders rate stats (avg, era, ops) as
// strings and counting stats as numbers; both are handled.
func (s Split) StatString(name string) (string, bool) {
	v, ok := s.Stat[name]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}
