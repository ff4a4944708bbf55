package scenario

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/trajectory.report/internal/geom"
)

func crossing(k int) DynamicObstacle {
	states := make([]ObstacleState, k)
	for i := range states {
		states[i] = ObstacleState{TimeStep: i, Position: geom.Point{X: 5, Y: float64(i)}}
	}
	return DynamicObstacle{ID: 7, Shape: Rectangle{Length: 4, Width: 2}, States: states}
}

func TestStateAtFiniteProbe(t *testing.T) {
	const k = 6
	o := crossing(k)
	for i := 0; i < k; i++ {
		if _, ok := o.StateAt(i); !ok {
			t.Fatalf("state at %d missing, want present", i)
		}
	}
	if _, ok := o.StateAt(k); ok {
		t.Fatalf("state at %d present, want absent", k)
	}
	// Probing further never resumes.
	if _, ok := o.StateAt(k + 10); ok {
		t.Error("probe past the end resumed")
	}
}

func TestPathLength(t *testing.T) {
	o := crossing(6)
	if got := len(o.Path()); got != 6 {
		t.Errorf("path has %d points, want 6", got)
	}
}

func TestSnapshotOmitsEndedObstacles(t *testing.T) {
	scn := &Scenario{
		ID:               "test",
		DynamicObstacles: []DynamicObstacle{crossing(3)},
	}
	if got := len(scn.SnapshotAt(2).Dynamic); got != 1 {
		t.Errorf("snapshot at 2 has %d dynamic poses, want 1", got)
	}
	if got := len(scn.SnapshotAt(3).Dynamic); got != 0 {
		t.Errorf("snapshot at 3 has %d dynamic poses, want 0", got)
	}
}

func TestRectangleCorners(t *testing.T) {
	r := Rectangle{Length: 4, Width: 2}
	corners := r.Corners(geom.Point{X: 10, Y: 20}, 0)
	if len(corners) != 4 {
		t.Fatalf("got %d corners", len(corners))
	}
	b := geom.Bounds(corners)
	if b.XMin != 8 || b.XMax != 12 || b.YMin != 19 || b.YMax != 21 {
		t.Errorf("corner bounds = %+v", b)
	}
}

func TestFromFile(t *testing.T) {
	doc := map[string]any{
		"scenario": map[string]any{
			"dt": 0.1,
			"lanelets": []map[string]any{{
				"id":    1,
				"left":  []geom.Point{{X: 0, Y: 2}, {X: 50, Y: 2}},
				"right": []geom.Point{{X: 0, Y: -2}, {X: 50, Y: -2}},
			}},
		},
		"planning_problems": []map[string]any{{
			"id":               42,
			"initial_position": geom.Point{X: 0, Y: 0},
		}},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "DEU_Test-1_1_T-1.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	scn, problems, err := FromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// ID defaults to the file base name.
	if scn.ID != "DEU_Test-1_1_T-1" {
		t.Errorf("scenario ID = %q", scn.ID)
	}
	if FirstProblem(problems).ID != 42 {
		t.Errorf("first problem ID = %d, want 42", FirstProblem(problems).ID)
	}
}

func TestFromFileRejectsGappedObstacleStates(t *testing.T) {
	doc := map[string]any{
		"scenario": map[string]any{
			"id": "gapped",
			"dynamic_obstacles": []map[string]any{{
				"id":    7,
				"shape": Rectangle{Length: 4, Width: 2},
				"states": []map[string]any{
					{"time_step": 0, "position": geom.Point{X: 0}},
					{"time_step": 2, "position": geom.Point{X: 2}},
				},
			}},
		},
		"planning_problems": []map[string]any{{"id": 1}},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "gapped.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := FromFile(path); err == nil {
		t.Fatal("expected error for gapped obstacle states")
	}
}

func TestFromFileNoProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{"scenario":{"id":"x"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := FromFile(path); err == nil {
		t.Fatal("expected error for missing planning problems")
	}
}
