package routes

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// Suggestion thresholds. Command handlers pass these explicitly so the
// chat command and the CLI can use different cut-offs.
const (
	DefaultSuggestLimit = 3
	DefaultSuggestScore = 0.55
)

// canonStrip lists the runes removed before similarity scoring: spaces,
// middle dots, the hyphen/dash family, and the particle の, none of which
// players type consistently.
var canonStrip = map[rune]struct{}{
	' ': {}, '　': {},
	'・': {}, '-': {}, '―': {}, '‐': {}, '–': {}, '—': {},
	'の': {},
}

// Canon normalizes a name for similarity work: NFKC fold, then strip the
// separator runes players omit or vary.
func Canon(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKC.String(s) {
		if _, drop := canonStrip[r]; drop {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Resolve maps user input to a canonical area name: exact match first,
// then the alias table, then a substring match when it is unique.
// Returns false when no single area can be determined.
func (m *MapData) Resolve(name string) (string, bool) {
	if _, ok := m.nodes[name]; ok {
		return name, true
	}
	if canonical, ok := m.aliases[name]; ok {
		return canonical, true
	}

	var candidates []string
	for _, n := range m.Names() {
		if strings.Contains(n, name) {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}
	return "", false
}

// Suggest scores every area name against the query and returns up to
// limit names at or above minScore, best first. Containment in either
// direction earns a small bonus, which keeps prefixes of long dungeon
// names ahead of coincidental near-matches.
func (m *MapData) Suggest(query string, limit int, minScore float64) []string {
	qn := Canon(query)
	params := levenshtein.NewParams()

	type scored struct {
		score float64
		name  string
	}
	var results []scored
	for _, name := range m.Names() {
		nn := Canon(name)
		if nn == "" {
			continue
		}
		score := levenshtein.Similarity(qn, nn, params)
		if qn != "" && (strings.Contains(nn, qn) || strings.Contains(qn, nn)) {
			score += 0.05
		}
		if score >= minScore {
			results = append(results, scored{score: score, name: name})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.name
	}
	return names
}

// SubstringCandidates returns every area name containing the query,
// used as the last-resort hint when suggestions come up empty.
func (m *MapData) SubstringCandidates(query string) []string {
	var out []string
	for _, n := range m.Names() {
		if strings.Contains(n, query) {
			out = append(out, n)
		}
	}
	return out
}
