// Package pipeline wires the evaluation stages together: plan →
// validate → export solution → render frames → encode animation →
// report → ledger. Each scenario runs independently; one scenario's
// failure never aborts a batch.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/banshee-data/trajectory.report/internal/config"
	"github.com/banshee-data/trajectory.report/internal/export"
	"github.com/banshee-data/trajectory.report/internal/fsutil"
	"github.com/banshee-data/trajectory.report/internal/render"
	"github.com/banshee-data/trajectory.report/internal/report"
	"github.com/banshee-data/trajectory.report/internal/runlog"
	"github.com/banshee-data/trajectory.report/internal/scenario"
	"github.com/banshee-data/trajectory.report/internal/trajectory"
	"github.com/banshee-data/trajectory.report/internal/validation"
	"github.com/banshee-data/trajectory.report/internal/vehicle"
)

// PlanOutcome is the planner's result for one scenario. Absence of a
// trajectory is expressed by Found, not by an error: planner errors
// are reserved for planner malfunctions.
type PlanOutcome struct {
	Found         bool
	GoalReached   bool
	Trajectory    *trajectory.Trajectory
	CandidateSets []trajectory.CandidateSet // one per decision step, in step order
}

// Planner produces candidate trajectories for a planning problem. The
// implementation is an external collaborator.
type Planner interface {
	Plan(ctx context.Context, scn *scenario.Scenario, problem scenario.PlanningProblem, params vehicle.Params, method string, numSamples [3]int) (PlanOutcome, error)
}

// NoTrajectoryError reports that the planner found no trajectory for a
// scenario. It aborts that scenario's run only.
type NoTrajectoryError struct {
	ScenarioID string
}

func (e *NoTrajectoryError) Error() string {
	return fmt.Sprintf("no candidate trajectory for scenario %s", e.ScenarioID)
}

// Summary is the outcome of one scenario run.
type Summary struct {
	ScenarioID string
	Method     string
	Validation validation.Result
	Frames     int
	Exported   bool
	WallTime   time.Duration
}

// Runner executes evaluation runs under one configuration.
type Runner struct {
	Config  *config.RunConfig
	Planner Planner
	FS      fsutil.FileSystem
	Ledger  *runlog.DB // optional
	RC      *render.RenderContext
}

// RunBatch evaluates each scenario file in turn. Failures are logged
// with the offending file attached and do not stop the batch.
func (r *Runner) RunBatch(ctx context.Context, paths []string) []Summary {
	var out []Summary
	for _, path := range paths {
		sum, err := r.RunScenario(ctx, path)
		if err != nil {
			log.Printf("scenario %s failed: %v, proceeding to next file", path, err)
		}
		out = append(out, sum)
	}
	return out
}

// RunScenario evaluates one scenario file end to end.
func (r *Runner) RunScenario(ctx context.Context, path string) (Summary, error) {
	start := time.Now()
	sum, err := r.runScenario(ctx, path)
	sum.WallTime = time.Since(start)

	if r.Ledger != nil {
		entry := runlog.Entry{
			ScenarioID:            sum.ScenarioID,
			Method:                sum.Method,
			Frames:                sum.Frames,
			CollidesWithObstacles: sum.Validation.CollidesWithObstacles,
			CollidesWithBoundary:  sum.Validation.CollidesWithBoundary,
			Feasible:              sum.Validation.Feasible,
			Exported:              sum.Exported,
			WallTime:              sum.WallTime,
		}
		if err != nil {
			entry.Failure = err.Error()
		}
		if _, lerr := r.Ledger.RecordRun(entry); lerr != nil {
			log.Printf("runlog: %v", lerr)
		}
	}
	return sum, err
}

func (r *Runner) runScenario(ctx context.Context, path string) (Summary, error) {
	cfg := r.Config
	sum := Summary{Method: cfg.GetMethod()}

	scn, problems, err := scenario.FromFile(path)
	if err != nil {
		return sum, err
	}
	sum.ScenarioID = scn.ID
	problem := scenario.FirstProblem(problems)

	vt, err := vehicle.ParseType(cfg.GetVehicleType())
	if err != nil {
		return sum, err
	}
	params, err := vehicle.Lookup(vt)
	if err != nil {
		return sum, err
	}
	dyn, err := vehicle.NewKS(vt)
	if err != nil {
		return sum, err
	}
	shape := scenario.Rectangle{Length: params.Length, Width: params.Width}

	outcome, err := r.Planner.Plan(ctx, scn, problem, params, cfg.GetMethod(), cfg.GetNumSamples())
	if err != nil {
		return sum, fmt.Errorf("planner on %s: %w", scn.ID, err)
	}
	if !outcome.Found {
		return sum, &NoTrajectoryError{ScenarioID: scn.ID}
	}

	res, err := validation.Validate(outcome.Trajectory, scn, dyn, shape, scn.DT)
	if err != nil {
		return sum, fmt.Errorf("validate %s: %w", scn.ID, err)
	}
	sum.Validation = res

	allowed := cfg.GetExportPolicy() == "always" || res.Passed()
	if !allowed {
		log.Printf("scenario %s: validation failed (obstacles=%v boundary=%v feasible=%v), export withheld",
			scn.ID, res.CollidesWithObstacles, res.CollidesWithBoundary, res.Feasible)
		return sum, nil
	}

	rec := export.NewSolutionRecord(scn.ID, problem.ID, vt, vehicle.ModelPM, "WX1", outcome.Trajectory)
	if err := export.WriteSolution(r.FS, rec, cfg.GetSolutionPath(), cfg.GetOverwriteSolution()); err != nil {
		return sum, err
	}
	sum.Exported = true

	norm, err := render.ParseNormalization(cfg.GetColorNormalization())
	if err != nil {
		return sum, err
	}
	composer := render.NewComposer(
		r.RC, scn, outcome.Trajectory, cfg.GetMethod(),
		cfg.GetViewportMarginM(), cfg.GetMarkerStride(),
		norm, outcome.CandidateSets,
	)

	if cfg.GetSaveOverview() {
		if err := r.saveOverview(composer, scn); err != nil {
			return sum, err
		}
	}

	if cfg.GetSaveAnimation() {
		frames, err := r.saveAnimation(composer, scn, outcome.CandidateSets)
		sum.Frames = frames
		if err != nil {
			return sum, err
		}
	}

	if cfg.GetWriteReport() {
		rp := report.Path(cfg.GetResultRoot(), cfg.GetMethod(), scn.ID)
		if err := report.Write(r.FS, rp, scn.ID, cfg.GetMethod(), outcome.CandidateSets); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func (r *Runner) saveOverview(composer *render.Composer, scn *scenario.Scenario) error {
	img, err := composer.Overview()
	if err != nil {
		return fmt.Errorf("overview for %s: %w", scn.ID, err)
	}
	path := export.OverviewPath(r.Config.GetResultRoot(), scn.Dataset, r.Config.GetMethod(), scn.ID)
	return export.WriteJPEG(r.FS, path, img)
}

// saveAnimation composes and persists one frame per decision step,
// then encodes the looping animation. Composition may fan out over a
// small worker pool; frames land at stable per-index paths so the
// encoder still consumes them in index order.
func (r *Runner) saveAnimation(composer *render.Composer, scn *scenario.Scenario, sets []trajectory.CandidateSet) (int, error) {
	cfg := r.Config
	store, err := export.NewFrameStore(r.FS, cfg.GetResultRoot(), cfg.GetMethod(), scn.ID)
	if err != nil {
		return 0, err
	}

	workers := cfg.GetWorkers()
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, cs := range sets {
		wg.Add(1)
		sem <- struct{}{}
		go func(cs trajectory.CandidateSet) {
			defer wg.Done()
			defer func() { <-sem }()
			frame, err := composer.Compose(cs.Step, cs)
			if err == nil {
				err = store.Put(frame)
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("frame %d of %s: %w", cs.Step, scn.ID, err)
				}
				mu.Unlock()
			}
		}(cs)
	}
	wg.Wait()
	if firstErr != nil {
		return store.Len(), firstErr
	}

	gifPath := export.GIFPath(cfg.GetResultRoot(), cfg.GetMethod(), scn.ID)
	if err := export.EncodeGIF(r.FS, store, gifPath, cfg.GetFrameDurationMS()); err != nil {
		return store.Len(), err
	}
	return store.Len(), nil
}
