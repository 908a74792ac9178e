package routes

import (
	"fmt"
	"strings"
)

// Plan is the answer to one route query.
type Plan struct {
	// Dest is the resolved destination name.
	Dest string

	// Continent is the destination's continent.
	Continent string

	// Walk is the hub→destination path, including both endpoints.
	// Nil when the map has no walk connection.
	Walk []string

	// RuraPoint is the recommended teleport target. Empty when the
	// continent defines no reachable rura area.
	RuraPoint string

	// RuraWalk is the walk from RuraPoint to the destination, excluding
	// the rura point itself. Empty when the destination is the rura
	// point or no path exists.
	RuraWalk []string
}

// NotFoundError is returned when the destination cannot be resolved.
// It carries the suggestions shown to the user.
type NotFoundError struct {
	Query       string
	Suggestions []string
	Candidates  []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("destination %q not found", e.Query)
}

// PlanRoute resolves dest and computes the walk route and the rura
// recommendation on the destination continent's subgraph.
func (m *MapData) PlanRoute(dest string) (*Plan, error) {
	resolved, ok := m.Resolve(dest)
	if !ok {
		return nil, &NotFoundError{
			Query:       dest,
			Suggestions: m.Suggest(dest, 5, DefaultSuggestScore),
			Candidates:  m.SubstringCandidates(dest),
		}
	}

	node, _ := m.Node(resolved)
	plan := &Plan{Dest: resolved, Continent: node.Continent}

	hub, ok := m.Hub(node.Continent)
	if !ok {
		return nil, fmt.Errorf("no hub known for continent %q", node.Continent)
	}

	g := m.Subgraph(node.Continent)
	plan.Walk = g.ShortestPath(hub, resolved)

	if node.IsRura {
		plan.RuraPoint = resolved
		return plan, nil
	}

	// One single-source run from the destination ranks every rura
	// candidate of the continent at once.
	dist, parent := g.Dijkstra(resolved)
	bestDist := -1
	for _, rid := range m.RuraPoints(node.Continent) {
		d, reachable := dist[rid]
		if !reachable {
			continue
		}
		if bestDist < 0 || d < bestDist {
			bestDist = d
			plan.RuraPoint = rid
		}
	}
	if plan.RuraPoint == "" {
		return plan, nil
	}

	// parent is rooted at the destination, so the reconstructed path runs
	// dest→rura; reverse it and drop the rura point itself.
	destToRura := reconstructPath(parent, resolved, plan.RuraPoint)
	if len(destToRura) >= 2 {
		walk := make([]string, 0, len(destToRura)-1)
		for i := len(destToRura) - 2; i >= 0; i-- {
			walk = append(walk, destToRura[i])
		}
		plan.RuraWalk = walk
	}
	return plan, nil
}

// Text renders the plan in the answer format the chat command sends.
func (p *Plan) Text() string {
	walk := "（未接続：徒歩ルートがDBにありません）"
	if len(p.Walk) > 0 {
		walk = strings.Join(p.Walk, " → ")
	}

	lines := []string{
		fmt.Sprintf("**🎯 目的地:** %s（大陸: %s）", p.Dest, p.Continent),
		fmt.Sprintf("**🚶 徒歩ルート:** %s", walk),
	}

	switch {
	case p.RuraPoint == "":
		lines = append(lines, "**🧭 推奨ルーラ:** (同大陸に徒歩接続されたルーラ地点がDB未定義)")
	case len(p.RuraWalk) > 0:
		lines = append(lines, fmt.Sprintf("**🧭 推奨ルーラ:** %s（徒歩: %s）",
			p.RuraPoint, strings.Join(p.RuraWalk, " → ")))
	default:
		lines = append(lines, fmt.Sprintf("**🧭 推奨ルーラ:** %s", p.RuraPoint))
	}
	return strings.Join(lines, "\n")
}

// NotFoundText renders the unknown-destination reply with suggestions.
func NotFoundText(e *NotFoundError) string {
	if len(e.Suggestions) > 0 {
		return "❓ 目的地が見つかりませんでした。\n**もしかして**: " + strings.Join(e.Suggestions, " / ")
	}
	if len(e.Candidates) > 0 {
		return "❓ 目的地が見つかりませんでした。\n候補: " + strings.Join(e.Candidates, ", ")
	}
	return "❓ 目的地が見つかりませんでした。\n候補: （候補なし）"
}
