package export

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"path/filepath"
	"sort"
	"sync"

	"github.com/banshee-data/trajectory.report/internal/fsutil"
	"github.com/banshee-data/trajectory.report/internal/render"
)

// jpegQuality is used for all exported stills.
const jpegQuality = 90

// FrameStore persists composed frames as per-index JPEG stills under
// <root>/gif_cache/<method>/<scenario>/<index>.jpg. The encoder later
// reads the stills back from storage rather than holding rasters in
// memory, which bounds peak memory for long sequences.
//
// Put is safe for concurrent use so frame composition can run on a
// worker pool; indices are sorted before encoding.
type FrameStore struct {
	fs  fsutil.FileSystem
	dir string

	mu      sync.Mutex
	indices []int
}

// NewFrameStore creates the cache directory (idempotently) and
// returns a store for one export run.
func NewFrameStore(fs fsutil.FileSystem, resultRoot, method, scenarioID string) (*FrameStore, error) {
	dir := filepath.Join(resultRoot, "gif_cache", method, scenarioID)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create frame cache %s: %w", dir, err)
	}
	return &FrameStore{fs: fs, dir: dir}, nil
}

// Put encodes and persists one frame at its stable per-index path.
func (s *FrameStore) Put(f render.Frame) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, f.Image, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode frame %d: %w", f.Index, err)
	}
	if err := s.fs.WriteFile(s.Path(f.Index), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write frame %d: %w", f.Index, err)
	}

	s.mu.Lock()
	s.indices = append(s.indices, f.Index)
	s.mu.Unlock()
	return nil
}

// Path returns the stable still path for a frame index.
func (s *FrameStore) Path(index int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.jpg", index))
}

// Indices returns the stored frame indices in increasing order.
func (s *FrameStore) Indices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.indices))
	copy(out, s.indices)
	sort.Ints(out)
	return out
}

// Len returns the number of stored frames.
func (s *FrameStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.indices)
}
