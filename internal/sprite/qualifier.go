package sprite

import (
	"fmt"
	"sort"
	"strings"
)

// Set is a set of names (outfit keys or accessory names).
type Set map[string]struct{}

// NewSet builds a Set from the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

// Has reports whether name is a member of the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Qualifier restricts an image registration to a set of outfits and/or a set
// of accessories. An empty set on an axis means "unrestricted" on that axis.
// Qualifiers are immutable values; two structurally equal qualifiers always
// produce the same canonical key regardless of construction order.
type Qualifier struct {
	outfits     []string
	accessories []string
	key         string
}

// NewQualifier constructs a qualifier from outfit keys and accessory names.
// Inputs are deduplicated and canonically ordered.
func NewQualifier(outfits, accessories []string) Qualifier {
	o := canonical(outfits)
	a := canonical(accessories)
	return Qualifier{
		outfits:     o,
		accessories: a,
		key:         fmt.Sprintf("$%s@%s", strings.Join(o, ","), strings.Join(a, ",")),
	}
}

// QualifierForOutfit is shorthand for a qualifier restricted to one outfit.
func QualifierForOutfit(outfit string) Qualifier {
	return NewQualifier([]string{outfit}, nil)
}

func canonical(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Key returns the canonical identity of the qualifier, suitable as a map key.
func (q Qualifier) Key() string {
	if q.key == "" {
		// Zero value: fully unrestricted.
		return "$@"
	}
	return q.key
}

// Outfits returns the outfit restriction in canonical order.
func (q Qualifier) Outfits() []string {
	return append([]string(nil), q.outfits...)
}

// Accessories returns the accessory restriction in canonical order.
func (q Qualifier) Accessories() []string {
	return append([]string(nil), q.accessories...)
}

// RestrictsOutfits reports whether the qualifier has an outfit restriction.
func (q Qualifier) RestrictsOutfits() bool {
	return len(q.outfits) > 0
}

// AllowsOutfit reports whether the given outfit satisfies the outfit axis.
func (q Qualifier) AllowsOutfit(outfit string) bool {
	if len(q.outfits) == 0 {
		return true
	}
	i := sort.SearchStrings(q.outfits, outfit)
	return i < len(q.outfits) && q.outfits[i] == outfit
}

func (q Qualifier) String() string {
	return fmt.Sprintf("Qualifier(outfits=%v, accessories=%v)", q.outfits, q.accessories)
}

// MatchScore rates how well the qualifier fits the given state. A negative
// score means the qualifier rejects the state. Otherwise the base score is
// 100 when the outfit axis is restricted (and satisfied), 0 when it is
// unrestricted, plus one point per restricted accessory present in the
// active set.
func (q Qualifier) MatchScore(outfit string, active Set) int {
	score := 0
	if len(q.outfits) > 0 {
		if !q.AllowsOutfit(outfit) {
			return -1
		}
		score = 100
	}
	if len(q.accessories) > 0 {
		for _, acc := range q.accessories {
			if !active.Has(acc) {
				return -1
			}
		}
		score += len(q.accessories)
	}
	return score
}

// entry pairs a qualifier with the value registered under it.
type entry[V any] struct {
	qual Qualifier
	val  V
}

// QualifierMap indexes values by qualifier identity.
type QualifierMap[V any] map[string]entry[V]

// Get returns the value registered under a structurally equal qualifier.
func (m QualifierMap[V]) Get(q Qualifier) (V, bool) {
	e, ok := m[q.Key()]
	return e.val, ok
}

// Upsert registers v under q, or mutates the existing value for q through
// update when one is already present. Later registrations for the same
// qualifier overwrite earlier state (last write wins).
func (m QualifierMap[V]) Upsert(q Qualifier, fresh func() V, update func(V) V) {
	key := q.Key()
	e, ok := m[key]
	if !ok {
		e = entry[V]{qual: q, val: fresh()}
	}
	e.val = update(e.val)
	m[key] = e
}

// Qualify selects the value whose qualifier scores highest against the given
// state. Candidates scoring negative are rejected; if every candidate is
// rejected the second return value is false. Equal scores are broken by
// canonical qualifier key, lexicographically smallest first, so selection is
// deterministic and independent of registration order.
func Qualify[V any](candidates QualifierMap[V], outfit string, active Set) (V, bool) {
	var (
		best     V
		bestKey  string
		bestRank = -1
	)
	for key, e := range candidates {
		score := e.qual.MatchScore(outfit, active)
		if score < 0 {
			continue
		}
		if score > bestRank || (score == bestRank && key < bestKey) {
			best = e.val
			bestKey = key
			bestRank = score
		}
	}
	if bestRank < 0 {
		var zero V
		return zero, false
	}
	return best, true
}
