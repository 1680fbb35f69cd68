// Package graph implements the graph-algorithm catalog spec.md §6 lists
// as a surface-level module ("straightforward once the evaluator and
// value model exist"): network construction, traversal, shortest paths,
// minimum spanning trees, and topological sort over plain Go types. The
// evaluator's builtin dispatcher wraps these in terms of Edge/Record
// values.
package graph

import (
	"container/heap"
	"math"
)

// Edge is a weighted connection between two node ids.
type Edge struct {
	From, To string
	Weight   float64
}

// Graph is an adjacency-list network, directed or undirected per spec
// 3.1's Edge type.
type Graph struct {
	directed bool
	nodes    map[string]bool
	adj      map[string][]Edge
}

func New(directed bool) *Graph {
	return &Graph{directed: directed, nodes: make(map[string]bool), adj: make(map[string][]Edge)}
}

// Directed reports whether g was constructed as a directed network.
func (g *Graph) Directed() bool { return g.directed }

func (g *Graph) AddNode(id string) {
	g.nodes[id] = true
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = nil
	}
}

func (g *Graph) AddEdge(from, to string, weight float64) {
	g.AddNode(from)
	g.AddNode(to)
	g.adj[from] = append(g.adj[from], Edge{From: from, To: to, Weight: weight})
	if !g.directed {
		g.adj[to] = append(g.adj[to], Edge{From: to, To: from, Weight: weight})
	}
}

// Nodes returns every node id, in insertion-independent but deterministic
// (sorted) order.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	sortStrings(out)
	return out
}

// Edges returns every edge; for an undirected graph each edge appears
// once, keyed by its lexicographically smaller endpoint.
func (g *Graph) Edges() []Edge {
	var out []Edge
	seen := make(map[[2]string]bool)
	for _, id := range g.Nodes() {
		for _, e := range g.adj[id] {
			if !g.directed {
				key := [2]string{e.From, e.To}
				rev := [2]string{e.To, e.From}
				if seen[key] || seen[rev] {
					continue
				}
				seen[key] = true
			}
			out = append(out, e)
		}
	}
	return out
}

func (g *Graph) Neighbors(id string) []string {
	var out []string
	for _, e := range g.adj[id] {
		out = append(out, e.To)
	}
	return out
}

// Degree is the number of incident edges (out-degree for a directed
// graph; AddEdge already mirrors both directions for undirected graphs).
func (g *Graph) Degree(id string) int {
	return len(g.adj[id])
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// BFS returns nodes reachable from start in breadth-first visiting order.
func (g *Graph) BFS(start string) []string {
	visited := map[string]bool{start: true}
	queue := []string{start}
	var order []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for _, n := range g.Neighbors(cur) {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return order
}

// DFS returns nodes reachable from start in depth-first visiting order.
func (g *Graph) DFS(start string) []string {
	visited := make(map[string]bool)
	var order []string
	var walk func(string)
	walk = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		order = append(order, id)
		for _, n := range g.Neighbors(id) {
			walk(n)
		}
	}
	walk(start)
	return order
}

// BFSPath returns the shortest (by edge count) path from start to goal.
func (g *Graph) BFSPath(start, goal string) ([]string, bool) {
	if start == goal {
		return []string{start}, true
	}
	visited := map[string]bool{start: true}
	prev := make(map[string]string)
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(cur) {
			if visited[n] {
				continue
			}
			visited[n] = true
			prev[n] = cur
			if n == goal {
				return reconstructPath(prev, start, goal), true
			}
			queue = append(queue, n)
		}
	}
	return nil, false
}

func reconstructPath(prev map[string]string, start, goal string) []string {
	path := []string{goal}
	for path[len(path)-1] != start {
		path = append(path, prev[path[len(path)-1]])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pqItem struct {
	id   string
	dist float64
}
type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Dijkstra computes single-source shortest-path distances and predecessors
// from start. Edge weights must be non-negative.
func (g *Graph) Dijkstra(start string) (dist map[string]float64, prev map[string]string) {
	dist = make(map[string]float64)
	prev = make(map[string]string)
	for _, id := range g.Nodes() {
		dist[id] = posInf
	}
	dist[start] = 0

	pq := &priorityQueue{{id: start, dist: 0}}
	heap.Init(pq)
	visited := make(map[string]bool)
	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if visited[item.id] {
			continue
		}
		visited[item.id] = true
		for _, e := range g.adj[item.id] {
			nd := dist[item.id] + e.Weight
			if nd < dist[e.To] {
				dist[e.To] = nd
				prev[e.To] = item.id
				heap.Push(pq, pqItem{id: e.To, dist: nd})
			}
		}
	}
	return dist, prev
}

var posInf = math.Inf(1)

// HasCycle reports whether the graph contains a cycle, using DFS
// back-edge detection for directed graphs and parent-tracking for
// undirected ones.
func (g *Graph) HasCycle() bool {
	if g.directed {
		return g.hasCycleDirected()
	}
	return g.hasCycleUndirected()
}

func (g *Graph) hasCycleDirected() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)
	var visit func(string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, n := range g.Neighbors(id) {
			switch color[n] {
			case gray:
				return true
			case white:
				if visit(n) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}
	for _, id := range g.Nodes() {
		if color[id] == white {
			if visit(id) {
				return true
			}
		}
	}
	return false
}

func (g *Graph) hasCycleUndirected() bool {
	visited := make(map[string]bool)
	var visit func(id, parent string) bool
	visit = func(id, parent string) bool {
		visited[id] = true
		for _, n := range g.Neighbors(id) {
			if !visited[n] {
				if visit(n, id) {
					return true
				}
			} else if n != parent {
				return true
			}
		}
		return false
	}
	for _, id := range g.Nodes() {
		if !visited[id] {
			if visit(id, "") {
				return true
			}
		}
	}
	return false
}

// ConnectedComponents returns the undirected connected components (edge
// direction is ignored, matching the common PERT/network-analysis use).
func (g *Graph) ConnectedComponents() [][]string {
	visited := make(map[string]bool)
	undirectedNeighbors := func(id string) []string {
		set := make(map[string]bool)
		for _, n := range g.Neighbors(id) {
			set[n] = true
		}
		for _, other := range g.Nodes() {
			for _, e := range g.adj[other] {
				if e.To == id {
					set[other] = true
				}
			}
		}
		var out []string
		for n := range set {
			out = append(out, n)
		}
		sortStrings(out)
		return out
	}

	var comps [][]string
	for _, id := range g.Nodes() {
		if visited[id] {
			continue
		}
		var comp []string
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, n := range undirectedNeighbors(cur) {
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

func (g *Graph) IsConnected() bool {
	return len(g.ConnectedComponents()) <= 1
}

// TopologicalSort runs Kahn's algorithm; returns an error if the graph is
// not a DAG.
func (g *Graph) TopologicalSort() ([]string, error) {
	inDegree := make(map[string]int)
	for _, id := range g.Nodes() {
		inDegree[id] = 0
	}
	for _, e := range g.Edges() {
		inDegree[e.To]++
	}
	var queue []string
	for _, id := range g.Nodes() {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	var order []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for _, n := range g.Neighbors(cur) {
			inDegree[n]--
			if inDegree[n] == 0 {
				queue = append(queue, n)
			}
		}
	}
	if len(order) != len(g.nodes) {
		return nil, &CycleError{Msg: "graph: topological sort requires a DAG"}
	}
	return order, nil
}

type CycleError struct{ Msg string }

func (e *CycleError) Error() string { return e.Msg }
