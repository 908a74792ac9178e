package routes

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/jsonc"
)

// DefaultHubs maps each continent to its customary arrival town, used
// when the map file carries no continents section for it.
var DefaultHubs = map[string]string{
	"ドワチャッカ大陸":  "岳都ガタラ",
	"プクランド大陸":   "オルフェアの町",
	"ウェナ諸島":     "ジュレットの町",
	"エルトナ大陸":    "風の町アズラン",
	"オーグリード大陸":  "グレン城下町",
	"レンダーシア大陸":  "グランゼドーラ王国",
	"真レンダーシア":   "真グランゼドーラ王国",
	"その他":       "港町レンドア",
}

// Node is one area on the map.
type Node struct {
	// Name is the canonical area name.
	Name string `json:"name"`

	// Continent groups areas; routes never cross continents.
	Continent string `json:"continent"`

	// Category is informational (town, field, dungeon, ...).
	Category string `json:"category,omitempty"`

	// IsRura marks areas reachable by the rura teleport spell.
	IsRura bool `json:"is_rura,omitempty"`
}

// rawEdge is one undirected connection in the map file.
type rawEdge struct {
	Src    string `json:"src"`
	Dst    string `json:"dst"`
	Weight int    `json:"weight,omitempty"`
	Note   string `json:"note,omitempty"`
}

// rawAlias maps an informal name to a canonical area name.
type rawAlias struct {
	Alias     string `json:"alias"`
	Canonical string `json:"canonical"`
}

// rawContinent overrides the default hub for a continent.
type rawContinent struct {
	Continent  string `json:"continent"`
	DefaultHub string `json:"default_hub"`
}

// mapFile is the JSONC document structure. The format allows comments,
// which map maintainers use liberally, so the raw bytes go through
// jsonc.ToJSON before encoding/json sees them.
type mapFile struct {
	Nodes      []Node         `json:"nodes"`
	Edges      []rawEdge      `json:"edges"`
	Aliases    []rawAlias     `json:"aliases,omitempty"`
	Continents []rawContinent `json:"continents,omitempty"`
}

// MapData is the loaded, indexed map. It is immutable after Load; the
// watcher swaps whole MapData values rather than mutating one in place.
type MapData struct {
	nodes      map[string]Node
	aliases    map[string]string
	hubs       map[string]string
	continents map[string][]string // continent -> area names, file order

	// graphs caches the per-continent subgraph, built lazily at load.
	graphs map[string]Graph
}

// LoadMap reads and indexes the JSONC map file at path.
func LoadMap(path string) (*MapData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file %q: %w", path, err)
	}
	return ParseMap(data)
}

// ParseMap indexes raw JSONC map bytes.
func ParseMap(data []byte) (*MapData, error) {
	var file mapFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return nil, fmt.Errorf("parse map data: %w", err)
	}
	if len(file.Nodes) == 0 {
		return nil, fmt.Errorf("map data has no nodes")
	}

	m := &MapData{
		nodes:      make(map[string]Node, len(file.Nodes)),
		aliases:    make(map[string]string, len(file.Aliases)),
		hubs:       make(map[string]string, len(file.Continents)),
		continents: make(map[string][]string),
		graphs:     make(map[string]Graph),
	}

	for _, n := range file.Nodes {
		if n.Name == "" {
			continue
		}
		m.nodes[n.Name] = n
		m.continents[n.Continent] = append(m.continents[n.Continent], n.Name)
	}

	for _, a := range file.Aliases {
		if _, ok := m.nodes[a.Canonical]; ok && a.Alias != "" {
			m.aliases[a.Alias] = a.Canonical
		}
	}

	for _, c := range file.Continents {
		if _, ok := m.nodes[c.DefaultHub]; ok {
			m.hubs[c.Continent] = c.DefaultHub
		}
	}

	// Edges referencing unknown areas are dropped, matching the loader's
	// tolerance for half-edited map files.
	for cont := range m.continents {
		m.graphs[cont] = Graph{}
	}
	for _, e := range file.Edges {
		src, okSrc := m.nodes[e.Src]
		dst, okDst := m.nodes[e.Dst]
		if !okSrc || !okDst || src.Continent != dst.Continent {
			continue
		}
		m.graphs[src.Continent].AddEdge(e.Src, e.Dst, e.Weight)
	}

	return m, nil
}

// Node returns the node for a canonical name.
func (m *MapData) Node(name string) (Node, bool) {
	n, ok := m.nodes[name]
	return n, ok
}

// Names returns all canonical area names in sorted order.
func (m *MapData) Names() []string {
	names := make([]string, 0, len(m.nodes))
	for name := range m.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Alias returns the canonical name an alias points at.
func (m *MapData) Alias(alias string) (string, bool) {
	c, ok := m.aliases[alias]
	return c, ok
}

// Subgraph returns the walk graph of a continent.
func (m *MapData) Subgraph(continent string) Graph {
	return m.graphs[continent]
}

// Hub resolves the arrival town for a continent: the continents section
// of the map file first, then the fixed default table, then any rura area
// of the continent, then its first area.
func (m *MapData) Hub(continent string) (string, bool) {
	if hub, ok := m.hubs[continent]; ok {
		return hub, true
	}
	if hub, ok := DefaultHubs[continent]; ok {
		if _, known := m.nodes[hub]; known {
			return hub, true
		}
	}
	for _, name := range m.continents[continent] {
		if m.nodes[name].IsRura {
			return name, true
		}
	}
	if names := m.continents[continent]; len(names) > 0 {
		return names[0], true
	}
	return "", false
}

// RuraPoints returns the rura-reachable areas of a continent, file order.
func (m *MapData) RuraPoints(continent string) []string {
	var points []string
	for _, name := range m.continents[continent] {
		if m.nodes[name].IsRura {
			points = append(points, name)
		}
	}
	return points
}
