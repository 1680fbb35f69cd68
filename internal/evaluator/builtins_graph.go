package evaluator

import (
	"github.com/eddndev/achronyme/internal/graph"
	"github.com/eddndev/achronyme/internal/value"
)

// netValue wraps a built graph.Graph as a runtime Value. Node identities
// are treated as strings throughout (via nodeID, which stringifies a
// Number or passes a Str through unchanged): graph.Graph is itself
// string-keyed, and round-tripping arbitrary Values as node ids would
// require a second identity table for no real benefit, since node/edge
// builtins already return ids as Str.
type netValue struct {
	g *graph.Graph
}

func (n *netValue) Type() string   { return "Network" }
func (n *netValue) String() string { return "Network" }

func nodeID(name string, v value.Value) (string, error) {
	switch x := v.(type) {
	case value.Str:
		return x.Val, nil
	case value.Number:
		return value.Print(x), nil
	default:
		return "", typeErrorf("%s: node identifiers must be a String or Number, got %s", name, v.Type())
	}
}

func asNetwork(name string, v value.Value) (*graph.Graph, error) {
	n, ok := v.(*netValue)
	if !ok {
		return nil, typeErrorf("%s expects a Network, got %s", name, v.Type())
	}
	return n.g, nil
}

func strVector(ids []string) *value.Vector {
	items := make([]value.Value, len(ids))
	for i, id := range ids {
		items[i] = value.Str{Val: id}
	}
	return &value.Vector{Items: items}
}

func edgeVector(edges []graph.Edge, directed bool) *value.Vector {
	items := make([]value.Value, len(edges))
	for i, e := range edges {
		items[i] = &value.Edge{From: value.Str{Val: e.From}, To: value.Str{Val: e.To}, Directed: directed}
	}
	return &value.Vector{Items: items}
}

// registerGraphBuiltins wires spec section 6's graph/PERT catalog over
// internal/graph.
func registerGraphBuiltins(env *value.Environment) {
	def(env, builtin("network", 1, true, func(args []value.Value) (value.Value, error) {
		edgeItems, err := asItems("network", args[0])
		if err != nil {
			return nil, err
		}
		directed := false
		if len(args) > 1 {
			if b, ok := args[1].(value.Bool); ok {
				directed = b.Val
			}
		}
		g := graph.New(directed)
		for _, item := range edgeItems {
			e, ok := item.(*value.Edge)
			if !ok {
				return nil, typeErrorf("network: expects a Vector of Edge values")
			}
			from, err := nodeID("network", e.From)
			if err != nil {
				return nil, err
			}
			to, err := nodeID("network", e.To)
			if err != nil {
				return nil, err
			}
			weight := 1.0
			if e.Properties != nil {
				if w, ok := e.Properties.Get("weight"); ok {
					weight, err = asNumber("network", w)
					if err != nil {
						return nil, err
					}
				}
			}
			g.AddEdge(from, to, weight)
		}
		return &netValue{g: g}, nil
	}))

	def(env, builtin("nodes", 1, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("nodes", args[0])
		if err != nil {
			return nil, err
		}
		return strVector(g.Nodes()), nil
	}))

	def(env, builtin("edges", 1, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("edges", args[0])
		if err != nil {
			return nil, err
		}
		return edgeVector(g.Edges(), g.Directed()), nil
	}))

	def(env, builtin("neighbors", 2, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("neighbors", args[0])
		if err != nil {
			return nil, err
		}
		id, err := nodeID("neighbors", args[1])
		if err != nil {
			return nil, err
		}
		return strVector(g.Neighbors(id)), nil
	}))

	def(env, builtin("degree", 2, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("degree", args[0])
		if err != nil {
			return nil, err
		}
		id, err := nodeID("degree", args[1])
		if err != nil {
			return nil, err
		}
		return value.Number{Val: float64(g.Degree(id))}, nil
	}))

	def(env, builtin("bfs", 2, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("bfs", args[0])
		if err != nil {
			return nil, err
		}
		start, err := nodeID("bfs", args[1])
		if err != nil {
			return nil, err
		}
		return strVector(g.BFS(start)), nil
	}))

	def(env, builtin("dfs", 2, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("dfs", args[0])
		if err != nil {
			return nil, err
		}
		start, err := nodeID("dfs", args[1])
		if err != nil {
			return nil, err
		}
		return strVector(g.DFS(start)), nil
	}))

	def(env, builtin("bfs_path", 3, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("bfs_path", args[0])
		if err != nil {
			return nil, err
		}
		start, err := nodeID("bfs_path", args[1])
		if err != nil {
			return nil, err
		}
		goal, err := nodeID("bfs_path", args[2])
		if err != nil {
			return nil, err
		}
		path, ok := g.BFSPath(start, goal)
		if !ok {
			return value.Null{}, nil
		}
		return strVector(path), nil
	}))

	def(env, builtin("dijkstra", 2, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("dijkstra", args[0])
		if err != nil {
			return nil, err
		}
		start, err := nodeID("dijkstra", args[1])
		if err != nil {
			return nil, err
		}
		dist, prev := g.Dijkstra(start)
		distRec := value.NewRecord()
		for id, d := range dist {
			distRec.Set(id, value.Number{Val: d}, false)
		}
		prevRec := value.NewRecord()
		for id, p := range prev {
			prevRec.Set(id, value.Str{Val: p}, false)
		}
		out := value.NewRecord()
		out.Set("distances", distRec, false)
		out.Set("previous", prevRec, false)
		return out, nil
	}))

	def(env, builtin("has_cycle", 1, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("has_cycle", args[0])
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: g.HasCycle()}, nil
	}))

	def(env, builtin("kruskal", 1, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("kruskal", args[0])
		if err != nil {
			return nil, err
		}
		edges, total := g.Kruskal()
		out := value.NewRecord()
		out.Set("edges", edgeVector(edges, false), false)
		out.Set("weight", value.Number{Val: total}, false)
		return out, nil
	}))

	def(env, builtin("prim", 1, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("prim", args[0])
		if err != nil {
			return nil, err
		}
		edges, total := g.Prim()
		out := value.NewRecord()
		out.Set("edges", edgeVector(edges, false), false)
		out.Set("weight", value.Number{Val: total}, false)
		return out, nil
	}))

	def(env, builtin("connected_components", 1, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("connected_components", args[0])
		if err != nil {
			return nil, err
		}
		comps := g.ConnectedComponents()
		items := make([]value.Value, len(comps))
		for i, c := range comps {
			items[i] = strVector(c)
		}
		return &value.Vector{Items: items}, nil
	}))

	def(env, builtin("is_connected", 1, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("is_connected", args[0])
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: g.IsConnected()}, nil
	}))

	def(env, builtin("topological_sort", 1, false, func(args []value.Value) (value.Value, error) {
		g, err := asNetwork("topological_sort", args[0])
		if err != nil {
			return nil, err
		}
		order, err := g.TopologicalSort()
		if err != nil {
			return nil, valueErrorf("%s", err.Error())
		}
		return strVector(order), nil
	}))

	registerPERTBuiltins(env)
}

func taskFromRecord(v value.Value) (graph.Task, error) {
	rec, ok := v.(*value.Record)
	if !ok {
		return graph.Task{}, typeErrorf("task: expects a Record with id/duration/deps fields, got %s", v.Type())
	}
	idV, ok := rec.Get("id")
	if !ok {
		return graph.Task{}, valueErrorf("task: missing \"id\" field")
	}
	id, err := nodeID("task", idV)
	if err != nil {
		return graph.Task{}, err
	}
	durV, ok := rec.Get("duration")
	if !ok {
		return graph.Task{}, valueErrorf("task: missing \"duration\" field")
	}
	dur, err := asNumber("task", durV)
	if err != nil {
		return graph.Task{}, err
	}
	var deps []string
	if depsV, ok := rec.Get("deps"); ok {
		items, err := asItems("task", depsV)
		if err != nil {
			return graph.Task{}, err
		}
		for _, d := range items {
			id, err := nodeID("task", d)
			if err != nil {
				return graph.Task{}, err
			}
			deps = append(deps, id)
		}
	}
	return graph.Task{ID: id, Duration: dur, Deps: deps}, nil
}

func tasksFromVector(name string, v value.Value) ([]graph.Task, error) {
	items, err := asItems(name, v)
	if err != nil {
		return nil, err
	}
	tasks := make([]graph.Task, len(items))
	for i, it := range items {
		t, err := taskFromRecord(it)
		if err != nil {
			return nil, err
		}
		tasks[i] = t
	}
	return tasks, nil
}

func floatMapRecord(m map[string]float64) *value.Record {
	rec := value.NewRecord()
	for id, v := range m {
		rec.Set(id, value.Number{Val: v}, false)
	}
	return rec
}

// registerPERTBuiltins wires spec section 6's PERT/CPM catalog over
// internal/graph's Task/PERTResult types: each task is a Record
// `{id, duration, deps}`.
func registerPERTBuiltins(env *value.Environment) {
	def(env, builtin("forward_pass", 1, false, func(args []value.Value) (value.Value, error) {
		tasks, err := tasksFromVector("forward_pass", args[0])
		if err != nil {
			return nil, err
		}
		es, ef, err := graph.ForwardPass(tasks)
		if err != nil {
			return nil, valueErrorf("%s", err.Error())
		}
		out := value.NewRecord()
		out.Set("earliest_start", floatMapRecord(es), false)
		out.Set("earliest_finish", floatMapRecord(ef), false)
		return out, nil
	}))

	def(env, builtin("backward_pass", 2, false, func(args []value.Value) (value.Value, error) {
		tasks, err := tasksFromVector("backward_pass", args[0])
		if err != nil {
			return nil, err
		}
		duration, err := asNumber("backward_pass", args[1])
		if err != nil {
			return nil, err
		}
		_, ef, err := graph.ForwardPass(tasks)
		if err != nil {
			return nil, valueErrorf("%s", err.Error())
		}
		ls, lf, err := graph.BackwardPass(tasks, ef, duration)
		if err != nil {
			return nil, valueErrorf("%s", err.Error())
		}
		out := value.NewRecord()
		out.Set("latest_start", floatMapRecord(ls), false)
		out.Set("latest_finish", floatMapRecord(lf), false)
		return out, nil
	}))

	def(env, builtin("calculate_slack", 2, false, func(args []value.Value) (value.Value, error) {
		es, err := recordToFloatMap("calculate_slack", args[0])
		if err != nil {
			return nil, err
		}
		ls, err := recordToFloatMap("calculate_slack", args[1])
		if err != nil {
			return nil, err
		}
		return floatMapRecord(graph.CalculateSlack(es, ls)), nil
	}))

	def(env, builtin("critical_path", 2, false, func(args []value.Value) (value.Value, error) {
		tasks, err := tasksFromVector("critical_path", args[0])
		if err != nil {
			return nil, err
		}
		slack, err := recordToFloatMap("critical_path", args[1])
		if err != nil {
			return nil, err
		}
		path, err := graph.CriticalPath(tasks, slack)
		if err != nil {
			return nil, valueErrorf("%s", err.Error())
		}
		return strVector(path), nil
	}))

	def(env, builtin("project_duration", 1, false, func(args []value.Value) (value.Value, error) {
		ef, err := recordToFloatMap("project_duration", args[0])
		if err != nil {
			return nil, err
		}
		return value.Number{Val: graph.ProjectDuration(ef)}, nil
	}))

	def(env, builtin("pert_analysis", 1, false, func(args []value.Value) (value.Value, error) {
		tasks, err := tasksFromVector("pert_analysis", args[0])
		if err != nil {
			return nil, err
		}
		res, err := graph.PERTAnalysis(tasks)
		if err != nil {
			return nil, valueErrorf("%s", err.Error())
		}
		out := value.NewRecord()
		out.Set("earliest_start", floatMapRecord(res.EarliestStart), false)
		out.Set("earliest_finish", floatMapRecord(res.EarliestFinish), false)
		out.Set("latest_start", floatMapRecord(res.LatestStart), false)
		out.Set("latest_finish", floatMapRecord(res.LatestFinish), false)
		out.Set("slack", floatMapRecord(res.Slack), false)
		out.Set("critical_path", strVector(res.CriticalPath), false)
		out.Set("project_duration", value.Number{Val: res.ProjectDuration}, false)
		return out, nil
	}))
}

func recordToFloatMap(name string, v value.Value) (map[string]float64, error) {
	rec, ok := v.(*value.Record)
	if !ok {
		return nil, typeErrorf("%s expects a Record, got %s", name, v.Type())
	}
	out := make(map[string]float64, len(rec.Names))
	for _, n := range rec.Names {
		fv, _ := rec.Get(n)
		num, err := asNumber(name, fv)
		if err != nil {
			return nil, err
		}
		out[n] = num
	}
	return out, nil
}
