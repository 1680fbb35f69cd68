package graph

import "testing"

func sampleTasks() []Task {
	return []Task{
		{ID: "A", Duration: 3, Deps: nil},
		{ID: "B", Duration: 2, Deps: []string{"A"}},
		{ID: "C", Duration: 4, Deps: []string{"A"}},
		{ID: "D", Duration: 1, Deps: []string{"B", "C"}},
	}
}

func TestPERTAnalysis(t *testing.T) {
	result, err := PERTAnalysis(sampleTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ProjectDuration != 8 {
		t.Fatalf("project duration = %v, want 8 (A+C+D = 3+4+1)", result.ProjectDuration)
	}
	foundC := false
	for _, id := range result.CriticalPath {
		if id == "C" {
			foundC = true
		}
		if id == "B" {
			t.Fatalf("B has 2 units of slack and should not be on the critical path")
		}
	}
	if !foundC {
		t.Fatalf("expected C on the critical path, got %v", result.CriticalPath)
	}
}

func TestPERTAnalysisDetectsCycle(t *testing.T) {
	tasks := []Task{
		{ID: "A", Duration: 1, Deps: []string{"B"}},
		{ID: "B", Duration: 1, Deps: []string{"A"}},
	}
	if _, err := PERTAnalysis(tasks); err == nil {
		t.Fatal("expected a cycle error")
	}
}
