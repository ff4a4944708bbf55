package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &RunConfig{}

	if got := cfg.GetMethod(); got != "FISS+" {
		t.Errorf("GetMethod = %q", got)
	}
	if got := cfg.GetNumSamples(); got != [3]int{5, 5, 5} {
		t.Errorf("GetNumSamples = %v", got)
	}
	if got := cfg.GetVehicleType(); got != "vw_vanagon" {
		t.Errorf("GetVehicleType = %q", got)
	}
	if cfg.GetWriteReport() {
		t.Error("report should default off")
	}
	if cfg.GetSaveOverview() {
		t.Error("overview should default off")
	}
	if !cfg.GetSaveAnimation() {
		t.Error("animation should default on")
	}
	if got := cfg.GetColorNormalization(); got != "per-frame" {
		t.Errorf("GetColorNormalization = %q", got)
	}
	if got := cfg.GetViewportMarginM(); got != 8.0 {
		t.Errorf("GetViewportMarginM = %g", got)
	}
	if got := cfg.GetMarkerStride(); got != 5 {
		t.Errorf("GetMarkerStride = %d", got)
	}
	if got := cfg.GetFrameDurationMS(); got != 100 {
		t.Errorf("GetFrameDurationMS = %d", got)
	}
	if got := cfg.GetWorkers(); got != 1 {
		t.Errorf("GetWorkers = %d", got)
	}
	if got := cfg.GetResultRoot(); got != "results" {
		t.Errorf("GetResultRoot = %q", got)
	}
	if got := cfg.GetSolutionPath(); got != filepath.Join("data", "solution") {
		t.Errorf("GetSolutionPath = %q", got)
	}
	if !cfg.GetOverwriteSolution() {
		t.Error("solution overwrite should default on")
	}
	if got := cfg.GetExportPolicy(); got != "valid-only" {
		t.Errorf("GetExportPolicy = %q", got)
	}
}

func TestValidate(t *testing.T) {
	if err := (&RunConfig{}).Validate(); err != nil {
		t.Errorf("empty config should validate: %v", err)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	bad := map[string]*RunConfig{
		"bad normalization": {ColorNormalization: ptrString("rainbow")},
		"bad policy":        {ExportPolicy: ptrString("sometimes")},
		"bad vehicle":       {VehicleType: ptrString("delorean")},
		"zero duration":     {FrameDurationMS: ptrInt(0)},
		"negative stride":   {MarkerStride: ptrInt(-1)},
		"zero workers":      {Workers: ptrInt(0)},
	}
	for name, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func ptrInt(v int) *int { return &v }

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	body := []byte(`{
		"method": "FOP",
		"num_samples": [3, 4, 5],
		"vehicle_type": "bmw_320i",
		"save_animation": false,
		"color_normalization": "global",
		"workers": 4
	}`)
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.GetMethod(); got != "FOP" {
		t.Errorf("method = %q", got)
	}
	if got := cfg.GetNumSamples(); got != [3]int{3, 4, 5} {
		t.Errorf("num_samples = %v", got)
	}
	if cfg.GetSaveAnimation() {
		t.Error("save_animation=false not honoured")
	}
	if got := cfg.GetColorNormalization(); got != "global" {
		t.Errorf("color_normalization = %q", got)
	}
	if got := cfg.GetWorkers(); got != 4 {
		t.Errorf("workers = %d", got)
	}
	// Unset fields still fall back.
	if got := cfg.GetMarkerStride(); got != 5 {
		t.Errorf("marker_stride fallback = %d", got)
	}
}

func TestLoadRejectsNonJSON(t *testing.T) {
	if _, err := Load("run.yaml"); err == nil {
		t.Error("expected error for non-JSON extension")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"vehicle_type": "delorean"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
}
