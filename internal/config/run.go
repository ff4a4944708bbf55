// Package config loads the run configuration for the evaluation
// pipeline. Fields omitted from the JSON file fall back to defaults
// through the Get* accessors, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RunConfig is the configuration surface of one evaluation run.
type RunConfig struct {
	// Planner settings (informational / passed through)
	Method     *string `json:"method,omitempty"`      // planning method tag
	NumSamples *[3]int `json:"num_samples,omitempty"` // opaque to this pipeline

	// Vehicle
	VehicleType *string `json:"vehicle_type,omitempty"`

	// Export toggles (independent)
	WriteReport   *bool `json:"write_report,omitempty"`   // planner-stats HTML report
	SaveOverview  *bool `json:"save_overview,omitempty"`  // static overview figure
	SaveAnimation *bool `json:"save_animation,omitempty"` // per-frame stills + gif

	// Rendering
	ColorNormalization *string  `json:"color_normalization,omitempty"` // "per-frame" or "global"
	ViewportMarginM    *float64 `json:"viewport_margin_m,omitempty"`
	MarkerStride       *int     `json:"marker_stride,omitempty"`
	FrameDurationMS    *int     `json:"frame_duration_ms,omitempty"`
	Workers            *int     `json:"workers,omitempty"`

	// Output locations
	ResultRoot        *string `json:"result_root,omitempty"`
	SolutionPath      *string `json:"solution_path,omitempty"`
	OverwriteSolution *bool   `json:"overwrite_solution,omitempty"`
	RunLogPath        *string `json:"runlog_path,omitempty"`

	// ExportPolicy decides whether failed validation blocks export:
	// "valid-only" (default) or "always".
	ExportPolicy *string `json:"export_policy,omitempty"`
}

// Helper functions to create pointers
func ptrString(v string) *string { return &v }

// Load reads a RunConfig from a JSON file and validates it.
func Load(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RunConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints and enum values.
func (c *RunConfig) Validate() error {
	switch c.GetColorNormalization() {
	case "per-frame", "global":
	default:
		return fmt.Errorf("color_normalization must be \"per-frame\" or \"global\", got %q",
			c.GetColorNormalization())
	}
	switch c.GetExportPolicy() {
	case "valid-only", "always":
	default:
		return fmt.Errorf("export_policy must be \"valid-only\" or \"always\", got %q",
			c.GetExportPolicy())
	}
	switch c.GetVehicleType() {
	case "ford_escort", "bmw_320i", "vw_vanagon":
	default:
		return fmt.Errorf("unknown vehicle_type %q", c.GetVehicleType())
	}
	if c.GetFrameDurationMS() <= 0 {
		return fmt.Errorf("frame_duration_ms must be positive, got %d", c.GetFrameDurationMS())
	}
	if c.GetMarkerStride() <= 0 {
		return fmt.Errorf("marker_stride must be positive, got %d", c.GetMarkerStride())
	}
	if c.GetWorkers() <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.GetWorkers())
	}
	return nil
}

// GetMethod returns the planning method tag.
func (c *RunConfig) GetMethod() string {
	if c.Method != nil {
		return *c.Method
	}
	return "FISS+"
}

// GetNumSamples returns the planner sample counts per dimension.
func (c *RunConfig) GetNumSamples() [3]int {
	if c.NumSamples != nil {
		return *c.NumSamples
	}
	return [3]int{5, 5, 5}
}

// GetVehicleType returns the configured vehicle type label.
func (c *RunConfig) GetVehicleType() string {
	if c.VehicleType != nil {
		return *c.VehicleType
	}
	return "vw_vanagon"
}

// GetWriteReport reports whether the HTML planner report is written.
func (c *RunConfig) GetWriteReport() bool {
	if c.WriteReport != nil {
		return *c.WriteReport
	}
	return false
}

// GetSaveOverview reports whether the static overview is exported.
func (c *RunConfig) GetSaveOverview() bool {
	if c.SaveOverview != nil {
		return *c.SaveOverview
	}
	return false
}

// GetSaveAnimation reports whether the animated export runs.
func (c *RunConfig) GetSaveAnimation() bool {
	if c.SaveAnimation != nil {
		return *c.SaveAnimation
	}
	return true
}

// GetColorNormalization returns the candidate colour scaling mode.
func (c *RunConfig) GetColorNormalization() string {
	if c.ColorNormalization != nil {
		return *c.ColorNormalization
	}
	return "per-frame"
}

// GetViewportMarginM returns the viewport padding in metres.
func (c *RunConfig) GetViewportMarginM() float64 {
	if c.ViewportMarginM != nil {
		return *c.ViewportMarginM
	}
	return 8.0
}

// GetMarkerStride returns the direction-marker stride in samples.
func (c *RunConfig) GetMarkerStride() int {
	if c.MarkerStride != nil {
		return *c.MarkerStride
	}
	return 5
}

// GetFrameDurationMS returns the per-frame animation duration.
func (c *RunConfig) GetFrameDurationMS() int {
	if c.FrameDurationMS != nil {
		return *c.FrameDurationMS
	}
	return 100
}

// GetWorkers returns the frame composition worker count.
func (c *RunConfig) GetWorkers() int {
	if c.Workers != nil {
		return *c.Workers
	}
	return 1
}

// GetResultRoot returns the root directory for all visual outputs.
func (c *RunConfig) GetResultRoot() string {
	if c.ResultRoot != nil {
		return *c.ResultRoot
	}
	return "results"
}

// GetSolutionPath returns the solution record target path.
func (c *RunConfig) GetSolutionPath() string {
	if c.SolutionPath != nil {
		return *c.SolutionPath
	}
	return filepath.Join("data", "solution")
}

// GetOverwriteSolution reports whether an existing solution record may
// be replaced.
func (c *RunConfig) GetOverwriteSolution() bool {
	if c.OverwriteSolution != nil {
		return *c.OverwriteSolution
	}
	return true
}

// GetRunLogPath returns the run ledger database path. Empty disables
// the ledger.
func (c *RunConfig) GetRunLogPath() string {
	if c.RunLogPath != nil {
		return *c.RunLogPath
	}
	return filepath.Join("results", "runs.db")
}

// GetExportPolicy returns the validation gating policy.
func (c *RunConfig) GetExportPolicy() string {
	if c.ExportPolicy != nil {
		return *c.ExportPolicy
	}
	return "valid-only"
}

// Default returns the built-in defaults as an explicit config.
func Default() *RunConfig {
	return &RunConfig{
		Method: ptrString("FISS+"),
	}
}
