package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// scenarioFile is the on-disk document: a scenario plus its planning
// problem set.
type scenarioFile struct {
	Scenario         Scenario          `json:"scenario"`
	PlanningProblems []PlanningProblem `json:"planning_problems"`
}

// FromFile reads a scenario document from path. The scenario ID
// defaults to the file's base name when the document omits it, and dt
// defaults to 0.1s to match the dataset convention.
func FromFile(path string) (*Scenario, []PlanningProblem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var doc scenarioFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	scn := doc.Scenario
	if scn.ID == "" {
		base := filepath.Base(path)
		scn.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if scn.DT <= 0 {
		scn.DT = 0.1
	}
	// Obstacle pose lookup indexes into the state list by offset from
	// the first recorded step, so the list must be gap-free.
	for i := range scn.DynamicObstacles {
		o := &scn.DynamicObstacles[i]
		for j := 1; j < len(o.States); j++ {
			if o.States[j].TimeStep != o.States[j-1].TimeStep+1 {
				return nil, nil, fmt.Errorf("scenario %s: obstacle %d: gap between step %d and %d",
					scn.ID, o.ID, o.States[j-1].TimeStep, o.States[j].TimeStep)
			}
		}
	}
	if len(doc.PlanningProblems) == 0 {
		return nil, nil, fmt.Errorf("scenario %s: no planning problems", scn.ID)
	}
	return &scn, doc.PlanningProblems, nil
}

// FirstProblem returns the first planning problem in the set, the one
// a run is evaluated against by construction.
func FirstProblem(problems []PlanningProblem) PlanningProblem {
	return problems[0]
}
