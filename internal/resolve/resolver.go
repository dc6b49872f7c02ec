package resolve

import (
	"strings"

	"dugout/internal/core"
)

// LeagueToken is the literal query that resolves to the league
// sentinel when nothing else matches.
const LeagueToken = "mlb"

// Mode selects the matching strategy. The two modes must not be
// mixed: exact mode is an unambiguous map lookup, substring mode is
// an ordered scan with a first-match tie-break.
type Mode string

const (
	ModeExact     Mode = "exact"
	ModeSubstring Mode = "substring"
)

// League is the entity the league token resolves to.
var League = core.Entity{Name: "MLB", Kind: core.KindLeague}

// Resolution is the outcome of matching a free-text query against the
// catalog: a team, a player, the league sentinel, or nothing.
type Resolution struct {
	Found   bool
	Entity  core.Entity
	Matches []core.Entity // substring mode: every candidate that matched, in scan order
}

// Resolver matches free-text queries against one catalog. The lookup
// maps are built once per catalog; build a new Resolver after a
// refresh.
type Resolver struct {
	mode    Mode
	catalog *core.Catalog

	// candidate scan order for substring mode. Teams before players
	// is the fixed tie-break policy.
	order []core.EntityKind

	exact map[string]core.Entity
}

// NewResolver creates a resolver for the catalog using the given mode.
func NewResolver(catalog *core.Catalog, mode Mode) *Resolver {
	r := &Resolver{
		mode:    mode,
		catalog: catalog,
		order:   []core.EntityKind{core.KindTeam, core.KindPlayer},
	}
	if mode == ModeExact {
		r.exact = make(map[string]core.Entity, len(catalog.Teams)+len(catalog.Players))
		// Players go in first so teams overwrite on a name collision,
		// keeping the same teams-first preference as substring mode.
		for _, p := range catalog.Players {
			r.exact[normalize(p.Name)] = p
		}
		for _, t := range catalog.Teams {
			r.exact[normalize(t.Name)] = t
		}
	}
	return r
}

// Resolve matches query against the catalog. The league token is
// checked only after team and player matching fails.
func (r *Resolver) Resolve(query string) Resolution {
	q := normalize(query)
	if q == "" {
		return Resolution{}
	}

	var res Resolution
	switch r.mode {
	case ModeSubstring:
		res = r.resolveSubstring(q)
	default:
		res = r.resolveExact(q)
	}
	if res.Found {
		return res
	}

	if q == LeagueToken {
		return Resolution{Found: true, Entity: League}
	}
	return Resolution{}
}

func (r *Resolver) resolveExact(q string) Resolution {
	if entity, ok := r.exact[q]; ok {
		return Resolution{Found: true, Entity: entity, Matches: []core.Entity{entity}}
	}
	return Resolution{}
}

func (r *Resolver) resolveSubstring(q string) Resolution {
	var matches []core.Entity
	for _, kind := range r.order {
		for _, entity := range r.candidates(kind) {
			if strings.Contains(normalize(entity.Name), q) {
				matches = append(matches, entity)
			}
		}
	}
	if len(matches) == 0 {
		return Resolution{}
	}
	// First match wins; callers that want to disambiguate can
	// inspect Matches instead.
	return Resolution{Found: true, Entity: matches[0], Matches: matches}
}

func (r *Resolver) candidates(kind core.EntityKind) []core.Entity {
	switch kind {
	case core.KindTeam:
		return r.catalog.Teams
	case core.KindPlayer:
		return r.catalog.Players
	default:
		return nil
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
