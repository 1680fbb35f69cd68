package graph

import "testing"

func buildSample() *Graph {
	g := New(false)
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "c", 2)
	g.AddEdge("a", "c", 5)
	g.AddEdge("c", "d", 1)
	return g
}

func TestBFSDFS(t *testing.T) {
	g := buildSample()
	bfs := g.BFS("a")
	if len(bfs) != 4 {
		t.Fatalf("BFS visited %d nodes, want 4: %v", len(bfs), bfs)
	}
	dfs := g.DFS("a")
	if len(dfs) != 4 {
		t.Fatalf("DFS visited %d nodes, want 4: %v", len(dfs), dfs)
	}
}

func TestBFSPath(t *testing.T) {
	g := buildSample()
	path, ok := g.BFSPath("a", "d")
	if !ok {
		t.Fatal("expected a path from a to d")
	}
	if path[0] != "a" || path[len(path)-1] != "d" {
		t.Fatalf("path = %v, want to start at a and end at d", path)
	}
}

func TestDijkstra(t *testing.T) {
	g := buildSample()
	dist, _ := g.Dijkstra("a")
	if dist["d"] != 4 {
		t.Fatalf("dist[d] = %v, want 4 (via b,c)", dist["d"])
	}
}

func TestHasCycleUndirected(t *testing.T) {
	g := buildSample()
	if !g.HasCycle() {
		t.Fatal("expected a cycle (a-b-c-a)")
	}
	tree := New(false)
	tree.AddEdge("a", "b", 1)
	tree.AddEdge("b", "c", 1)
	if tree.HasCycle() {
		t.Fatal("expected no cycle in a tree")
	}
}

func TestKruskalPrimAgree(t *testing.T) {
	g := buildSample()
	_, kWeight := g.Kruskal()
	_, pWeight := g.Prim()
	if kWeight != pWeight {
		t.Fatalf("Kruskal weight %v != Prim weight %v", kWeight, pWeight)
	}
	if kWeight != 4 {
		t.Fatalf("MST weight = %v, want 4 (edges a-b=1,b-c=2,c-d=1)", kWeight)
	}
}

func TestConnectedComponents(t *testing.T) {
	g := New(false)
	g.AddEdge("a", "b", 1)
	g.AddNode("isolated")
	comps := g.ConnectedComponents()
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d: %v", len(comps), comps)
	}
	if g.IsConnected() {
		t.Fatal("graph with an isolated node should not be connected")
	}
}

func TestTopologicalSort(t *testing.T) {
	g := New(true)
	g.AddEdge("a", "b", 1)
	g.AddEdge("a", "c", 1)
	g.AddEdge("b", "d", 1)
	g.AddEdge("c", "d", 1)
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := make(map[string]int)
	for i, id := range order {
		pos[id] = i
	}
	if pos["a"] > pos["b"] || pos["b"] > pos["d"] {
		t.Fatalf("order %v violates a->b->d", order)
	}
}

func TestTopologicalSortDetectsCycle(t *testing.T) {
	g := New(true)
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "a", 1)
	if _, err := g.TopologicalSort(); err == nil {
		t.Fatal("expected a cycle error")
	}
}
