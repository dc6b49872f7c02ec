package core

import "time"

// EntityKind distinguishes the three kinds of things a query can resolve to.
type EntityKind string

const (
	KindTeam   EntityKind = "team"
	KindPlayer EntityKind = "player"
	KindLeague EntityKind = "league"
)

// Entity is a team, player, or the league sentinel from the MLB StatsAPI.
// The league sentinel carries no numeric ID; stats are never fetched for it.
type Entity struct {
	ID   int        `json:"id"`   // Upstream-assigned identifier, stable across runs (0 for the league)
	Name string     `json:"name"` // Human-readable full name as provided upstream
	Kind EntityKind `json:"kind"` // team, player, or league
}

// Catalog is the cached set of known teams and players plus its fetch date.
// A catalog is immutable once built; a refresh produces a wholly new one.
type Catalog struct {
	Teams     []Entity  `json:"teams"`      // All known teams (non-zero ID, non-empty name)
	Players   []Entity  `json:"players"`    // All known players (non-zero ID, non-empty name)
	FetchedAt time.Time `json:"fetched_at"` // Calendar date the catalog was built
}

// IsEmpty reports whether the catalog holds no entities at all.
func (c *Catalog) IsEmpty() bool {
	return len(c.Teams) == 0 && len(c.Players) == 0
}

// Article is a single news item fetched for an entity, optionally scored.
type Article struct {
	Title          string    `json:"title"`           // Article headline
	Description    string    `json:"description"`     // Short description; the text that gets scored
	Content        string    `json:"content"`         // Longer content excerpt (never scored)
	PublishedAt    time.Time `json:"published_at"`    // Publication timestamp
	Author         string    `json:"author"`          // Byline (may be empty)
	URL            string    `json:"url"`             // Canonical article URL
	SourceName     string    `json:"source_name"`     // Publishing outlet name
	SentimentScore float64   `json:"sentiment_score"` // Compound polarity in [-1,1]; set once by the scorer
	SentimentLabel string    `json:"sentiment_label"` // Seven-bucket category for the score
	Scored         bool      `json:"scored"`          // Whether the scorer has processed this article
}
