package graph

// Task is one activity in a PERT/CPM network: an id, a duration, and the
// ids of tasks it depends on (spec §6's forward_pass/backward_pass/
// calculate_slack/critical_path/project_duration/pert_analysis).
type Task struct {
	ID       string
	Duration float64
	Deps     []string
}

// PERTResult bundles the full analysis pert_analysis returns; the
// narrower builtins (forward_pass, backward_pass, ...) each expose one
// field of it.
type PERTResult struct {
	EarliestStart  map[string]float64
	EarliestFinish map[string]float64
	LatestStart    map[string]float64
	LatestFinish   map[string]float64
	Slack          map[string]float64
	CriticalPath   []string
	ProjectDuration float64
}

func topoOrderTasks(tasks []Task) ([]string, map[string]Task, error) {
	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	g := New(true)
	for _, t := range tasks {
		g.AddNode(t.ID)
		for _, d := range t.Deps {
			g.AddEdge(d, t.ID, 0)
		}
	}
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, nil, err
	}
	return order, byID, nil
}

// ForwardPass computes earliest start/finish times by processing tasks in
// dependency order.
func ForwardPass(tasks []Task) (es, ef map[string]float64, err error) {
	order, byID, err := topoOrderTasks(tasks)
	if err != nil {
		return nil, nil, err
	}
	es = make(map[string]float64)
	ef = make(map[string]float64)
	for _, id := range order {
		t := byID[id]
		start := 0.0
		for _, dep := range t.Deps {
			if ef[dep] > start {
				start = ef[dep]
			}
		}
		es[id] = start
		ef[id] = start + t.Duration
	}
	return es, ef, nil
}

// BackwardPass computes latest start/finish times given the forward pass
// and the project duration (the longest earliest-finish time).
func BackwardPass(tasks []Task, ef map[string]float64, projectDuration float64) (ls, lf map[string]float64, err error) {
	order, byID, err := topoOrderTasks(tasks)
	if err != nil {
		return nil, nil, err
	}
	successors := make(map[string][]string)
	for _, t := range tasks {
		for _, dep := range t.Deps {
			successors[dep] = append(successors[dep], t.ID)
		}
	}

	ls = make(map[string]float64)
	lf = make(map[string]float64)
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		t := byID[id]
		finish := projectDuration
		if succs := successors[id]; len(succs) > 0 {
			finish = ls[succs[0]]
			for _, s := range succs[1:] {
				if ls[s] < finish {
					finish = ls[s]
				}
			}
		}
		lf[id] = finish
		ls[id] = finish - t.Duration
	}
	return ls, lf, nil
}

// CalculateSlack returns latest-start minus earliest-start per task; a
// task is on the critical path when its slack is (numerically) zero.
func CalculateSlack(es, ls map[string]float64) map[string]float64 {
	slack := make(map[string]float64, len(es))
	for id, e := range es {
		slack[id] = ls[id] - e
	}
	return slack
}

// CriticalPath returns the zero-slack tasks in topological order — the
// longest dependency chain through the network.
func CriticalPath(tasks []Task, slack map[string]float64) ([]string, error) {
	order, _, err := topoOrderTasks(tasks)
	if err != nil {
		return nil, err
	}
	var path []string
	for _, id := range order {
		if slack[id] <= 1e-9 && slack[id] >= -1e-9 {
			path = append(path, id)
		}
	}
	return path, nil
}

// ProjectDuration is the maximum earliest-finish time across all tasks.
func ProjectDuration(ef map[string]float64) float64 {
	max := 0.0
	for _, v := range ef {
		if v > max {
			max = v
		}
	}
	return max
}

// PERTAnalysis runs the full forward/backward/slack/critical-path pipeline
// in one call (spec §6's `pert_analysis`).
func PERTAnalysis(tasks []Task) (*PERTResult, error) {
	es, ef, err := ForwardPass(tasks)
	if err != nil {
		return nil, err
	}
	duration := ProjectDuration(ef)
	ls, lf, err := BackwardPass(tasks, ef, duration)
	if err != nil {
		return nil, err
	}
	slack := CalculateSlack(es, ls)
	path, err := CriticalPath(tasks, slack)
	if err != nil {
		return nil, err
	}
	return &PERTResult{
		EarliestStart:   es,
		EarliestFinish:  ef,
		LatestStart:     ls,
		LatestFinish:    lf,
		Slack:           slack,
		CriticalPath:    path,
		ProjectDuration: duration,
	}, nil
}
