// Command trajectory.report evaluates and visualizes recorded
// trajectory-planner output against scenario files: it validates the
// chosen trajectory, exports the solution record and renders the
// cost-coloured candidate animation for each scenario.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/trajectory.report/internal/config"
	"github.com/banshee-data/trajectory.report/internal/fsutil"
	"github.com/banshee-data/trajectory.report/internal/pipeline"
	"github.com/banshee-data/trajectory.report/internal/render"
	"github.com/banshee-data/trajectory.report/internal/runlog"
	"github.com/banshee-data/trajectory.report/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to run config JSON (defaults apply when empty)")
	scenarioDir = flag.String("scenarios", "data/demo", "Directory of scenario JSON files")
	planDir     = flag.String("plans", "data/plans", "Directory of recorded planner dumps")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("trajectory.report %s (%s, built %s)\n",
			version.Version, version.GitSHA, version.BuildTime)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	paths := flag.Args()
	if len(paths) == 0 {
		var err error
		paths, err = filepath.Glob(filepath.Join(*scenarioDir, "*.json"))
		if err != nil || len(paths) == 0 {
			log.Fatalf("no scenario files under %s", *scenarioDir)
		}
	}

	runner := &pipeline.Runner{
		Config:  cfg,
		Planner: &pipeline.ReplayPlanner{Dir: *planDir},
		FS:      fsutil.OSFileSystem{},
		RC:      render.DefaultContext(),
	}

	if path := cfg.GetRunLogPath(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			log.Fatalf("runlog dir: %v", err)
		}
		ledger, err := runlog.Open(path)
		if err != nil {
			log.Fatalf("runlog: %v", err)
		}
		defer ledger.Close()
		runner.Ledger = ledger
	}

	summaries := runner.RunBatch(context.Background(), paths)

	var exported int
	for _, s := range summaries {
		if s.Exported {
			exported++
		}
	}
	log.Printf("batch done: %d scenarios, %d exported", len(summaries), exported)
}
