// Package routes implements the DQX walk-route search: a weighted area
// graph per continent, shortest-path computation, fuzzy destination
// resolution, and the rura (teleport) point recommendation.
//
// The map data lives in a JSONC file that is loaded once and reloaded by
// a file watcher when it changes; see mapdata.go and watcher.go.
package routes

import (
	"container/heap"
)

// Edge is one weighted adjacency entry. Weights are >= 1.
type Edge struct {
	To     string
	Weight int
}

// Graph is an undirected weighted adjacency list keyed by area name.
type Graph map[string][]Edge

// AddEdge inserts the undirected edge between u and v with the given weight.
func (g Graph) AddEdge(u, v string, weight int) {
	if weight < 1 {
		weight = 1
	}
	g[u] = append(g[u], Edge{To: v, Weight: weight})
	g[v] = append(g[v], Edge{To: u, Weight: weight})
}

// Dijkstra computes single-source shortest paths from start. It returns
// the distance map and the parent tree (parent[start] == "").
func (g Graph) Dijkstra(start string) (map[string]int, map[string]string) {
	dist := map[string]int{start: 0}
	parent := map[string]string{start: ""}

	pq := &nodeQueue{{name: start, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(nodeItem)
		if item.dist != dist[item.name] {
			continue // stale queue entry
		}
		for _, e := range g[item.name] {
			nd := item.dist + e.Weight
			if d, ok := dist[e.To]; !ok || nd < d {
				dist[e.To] = nd
				parent[e.To] = item.name
				heap.Push(pq, nodeItem{name: e.To, dist: nd})
			}
		}
	}
	return dist, parent
}

// ShortestPath returns the weight-minimal path from start to goal, or nil
// when goal is unreachable.
func (g Graph) ShortestPath(start, goal string) []string {
	dist, parent := g.Dijkstra(start)
	if _, ok := dist[goal]; !ok {
		return nil
	}
	return reconstructPath(parent, start, goal)
}

// reconstructPath walks the parent tree from goal back to start. Returns
// nil when goal is not in the tree or the walk does not end at start.
func reconstructPath(parent map[string]string, start, goal string) []string {
	if _, ok := parent[goal]; !ok {
		return nil
	}
	var rev []string
	for cur := goal; cur != ""; cur = parent[cur] {
		rev = append(rev, cur)
		if cur == start {
			break
		}
	}
	if len(rev) == 0 || rev[len(rev)-1] != start {
		return nil
	}
	path := make([]string, len(rev))
	for i, name := range rev {
		path[len(rev)-1-i] = name
	}
	return path
}

// nodeItem / nodeQueue implement the priority queue for Dijkstra.
type nodeItem struct {
	name string
	dist int
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(nodeItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
