package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMap is a two-continent fixture. 北大陸 has a continents entry; 南大陸
// has none and is absent from DefaultHubs, exercising the fallbacks.
const testMap = `
// test fixture
{
  "nodes": [
    { "name": "北の町", "continent": "北大陸", "category": "町", "is_rura": true },
    { "name": "北の原", "continent": "北大陸", "category": "フィールド" },
    { "name": "北の洞くつ", "continent": "北大陸", "category": "ダンジョン" },
    { "name": "南の村", "continent": "南大陸", "category": "村", "is_rura": true },
    { "name": "南の森", "continent": "南大陸", "category": "フィールド" },
    { "name": "孤島", "continent": "南大陸", "category": "フィールド" }
  ],
  "edges": [
    { "src": "北の町", "dst": "北の原", "weight": 1 },
    { "src": "北の原", "dst": "北の洞くつ", "weight": 2 },
    { "src": "南の村", "dst": "南の森", "weight": 1 },
    { "src": "北の町", "dst": "南の村", "weight": 1 }, // cross-continent, dropped
    { "src": "北の町", "dst": "存在しない", "weight": 1 } // unknown node, dropped
  ],
  "aliases": [
    { "alias": "北", "canonical": "北の町" },
    { "alias": "幽霊", "canonical": "存在しない" }
  ],
  "continents": [
    { "continent": "北大陸", "default_hub": "北の町" }
  ]
}
`

func loadTestMap(t *testing.T) *MapData {
	t.Helper()
	m, err := ParseMap([]byte(testMap))
	require.NoError(t, err)
	return m
}

func TestParseMap_StripsComments(t *testing.T) {
	m := loadTestMap(t)
	assert.Len(t, m.Names(), 6)
}

func TestParseMap_RejectsEmpty(t *testing.T) {
	_, err := ParseMap([]byte(`{"nodes": [], "edges": []}`))
	assert.Error(t, err)

	_, err = ParseMap([]byte(`{not json`))
	assert.Error(t, err)
}

// TestParseMap_DropsBadEdges verifies cross-continent and unknown-node
// edges never reach the graphs.
func TestParseMap_DropsBadEdges(t *testing.T) {
	m := loadTestMap(t)

	north := m.Subgraph("北大陸")
	assert.Len(t, north["北の町"], 1, "only the in-continent edge survives")
	assert.Nil(t, north["南の村"])
}

// TestParseMap_DropsDanglingAlias verifies an alias pointing at an
// unknown canonical name is ignored.
func TestParseMap_DropsDanglingAlias(t *testing.T) {
	m := loadTestMap(t)

	canonical, ok := m.Alias("北")
	assert.True(t, ok)
	assert.Equal(t, "北の町", canonical)

	_, ok = m.Alias("幽霊")
	assert.False(t, ok)
}

// TestHub_FallbackChain covers the hub resolution order.
func TestHub_FallbackChain(t *testing.T) {
	m := loadTestMap(t)

	// From the file's continents section.
	hub, ok := m.Hub("北大陸")
	assert.True(t, ok)
	assert.Equal(t, "北の町", hub)

	// No file entry, no default table entry: first rura area wins.
	hub, ok = m.Hub("南大陸")
	assert.True(t, ok)
	assert.Equal(t, "南の村", hub)

	_, ok = m.Hub("未知大陸")
	assert.False(t, ok)
}

// TestHub_NoRuraFallsBackToFirstNode drops the rura flags and expects
// the first listed area.
func TestHub_NoRuraFallsBackToFirstNode(t *testing.T) {
	m, err := ParseMap([]byte(`{
	  "nodes": [
	    { "name": "荒野", "continent": "辺境" },
	    { "name": "廃村", "continent": "辺境" }
	  ],
	  "edges": []
	}`))
	require.NoError(t, err)

	hub, ok := m.Hub("辺境")
	assert.True(t, ok)
	assert.Equal(t, "荒野", hub)
}

func TestRuraPoints(t *testing.T) {
	m := loadTestMap(t)
	assert.Equal(t, []string{"北の町"}, m.RuraPoints("北大陸"))
	assert.Equal(t, []string{"南の村"}, m.RuraPoints("南大陸"))
	assert.Empty(t, m.RuraPoints("未知大陸"))
}
