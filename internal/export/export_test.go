package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trajectory.report/internal/fsutil"
	"github.com/banshee-data/trajectory.report/internal/geom"
	"github.com/banshee-data/trajectory.report/internal/render"
	"github.com/banshee-data/trajectory.report/internal/trajectory"
	"github.com/banshee-data/trajectory.report/internal/vehicle"
)

func testFrame(index int, c color.Color) render.Frame {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	return render.Frame{Index: index, Image: img}
}

func TestFrameStorePaths(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	store, err := NewFrameStore(fs, "results", "FISS+", "DEU_Test-1_1_T-1")
	require.NoError(t, err)

	require.NoError(t, store.Put(testFrame(0, color.White)))
	require.NoError(t, store.Put(testFrame(1, color.Black)))

	require.True(t, fs.Exists("results/gif_cache/FISS+/DEU_Test-1_1_T-1/0.jpg"))
	require.True(t, fs.Exists("results/gif_cache/FISS+/DEU_Test-1_1_T-1/1.jpg"))
	require.Equal(t, 2, store.Len())
}

func TestFrameStoreSortsIndices(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	store, err := NewFrameStore(fs, "results", "FOP", "s")
	require.NoError(t, err)

	// Out-of-order puts, as a worker pool would produce.
	for _, i := range []int{3, 0, 2, 1} {
		require.NoError(t, store.Put(testFrame(i, color.White)))
	}
	require.Equal(t, []int{0, 1, 2, 3}, store.Indices())
}

func TestEncodeGIFFrameCount(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	store, err := NewFrameStore(fs, "results", "FISS+", "scn")
	require.NoError(t, err)

	const frames = 10
	for i := 0; i < frames; i++ {
		shade := uint8(i * 25)
		require.NoError(t, store.Put(testFrame(i, color.RGBA{R: shade, G: shade, B: shade, A: 255})))
	}

	gifPath := GIFPath("results", "FISS+", "scn")
	require.NoError(t, EncodeGIF(fs, store, gifPath, 100))

	data, err := fs.ReadFile(gifPath)
	require.NoError(t, err)
	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, decoded.Image, frames)
	require.Equal(t, 0, decoded.LoopCount, "animation must loop forever")
	for _, d := range decoded.Delay {
		require.Equal(t, 10, d, "100ms per frame is 10 hundredths")
	}
}

func TestEncodeGIFEmptyStore(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	store, err := NewFrameStore(fs, "results", "FISS+", "empty")
	require.NoError(t, err)

	err = EncodeGIF(fs, store, GIFPath("results", "FISS+", "empty"), 100)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
}

func TestEncodeGIFMissingFrame(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	store, err := NewFrameStore(fs, "results", "FISS+", "scn")
	require.NoError(t, err)
	require.NoError(t, store.Put(testFrame(0, color.White)))

	// Encode against a filesystem that never saw the stills.
	err = EncodeGIF(fsutil.NewMemoryFileSystem(), store, "out.gif", 100)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
}

func solutionFixture(t *testing.T) SolutionRecord {
	t.Helper()
	tr, err := trajectory.New([]trajectory.State{
		{TimeStep: 0, Position: geom.Point{X: 0}},
		{TimeStep: 1, Position: geom.Point{X: 1}, Velocity: 10},
	})
	require.NoError(t, err)
	return NewSolutionRecord("DEU_Test-1_1_T-1", 42, vehicle.VWVanagon, vehicle.ModelPM, "WX1", tr)
}

func TestWriteSolution(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	rec := solutionFixture(t)

	require.NoError(t, WriteSolution(fs, rec, "data/solution", false))
	data, err := fs.ReadFile("data/solution")
	require.NoError(t, err)
	require.Contains(t, string(data), "DEU_Test-1_1_T-1")
	require.Contains(t, string(data), "vw_vanagon")
}

func TestWriteSolutionNoOverwrite(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	original := []byte("precious existing record")
	require.NoError(t, fs.WriteFile("data/solution", original, 0644))

	err := WriteSolution(fs, solutionFixture(t), "data/solution", false)
	var exists *AlreadyExistsError
	require.ErrorAs(t, err, &exists)
	require.Equal(t, "data/solution", exists.Path)

	// The existing record is untouched, byte for byte.
	data, err := fs.ReadFile("data/solution")
	require.NoError(t, err)
	require.True(t, bytes.Equal(original, data))
}

func TestWriteSolutionOverwrite(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	require.NoError(t, fs.WriteFile("data/solution", []byte("old"), 0644))
	require.NoError(t, WriteSolution(fs, solutionFixture(t), "data/solution", true))

	data, err := fs.ReadFile("data/solution")
	require.NoError(t, err)
	require.NotEqual(t, "old", string(data))
}

func TestOverviewPath(t *testing.T) {
	got := OverviewPath("results", "demo", "FISS+", "DEU_Flensburg-1_1_T-1")
	require.Equal(t, "results/figs/demo/FISS+_DEU_Flensburg-1_1_T-1.jpg", got)
}

func TestErrorsUnwrap(t *testing.T) {
	inner := errors.New("disk gone")
	err := &EncodingError{Reason: "frame 3 missing", Err: inner}
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "frame 3 missing")
}
