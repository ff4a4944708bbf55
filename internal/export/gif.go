package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"path/filepath"

	"github.com/banshee-data/trajectory.report/internal/fsutil"
)

// EncodeGIF concatenates the store's stills, in strictly increasing
// index order, into a looping animation at gifPath. Each still is read
// back from storage and quantized one at a time; only the paletted
// frames stay resident.
//
// durationMS is the per-frame display time. The animation loops
// indefinitely. An empty store or a missing still is an EncodingError.
func EncodeGIF(fs fsutil.FileSystem, store *FrameStore, gifPath string, durationMS int) error {
	indices := store.Indices()
	if len(indices) == 0 {
		return &EncodingError{Reason: "no frames to encode"}
	}
	if durationMS <= 0 {
		durationMS = 100
	}

	out := &gif.GIF{LoopCount: 0} // 0 = loop forever
	delay := durationMS / 10      // GIF delays are in 1/100ths of a second

	for _, idx := range indices {
		path := store.Path(idx)
		data, err := fs.ReadFile(path)
		if err != nil {
			return &EncodingError{Reason: fmt.Sprintf("frame %d missing at %s", idx, path), Err: err}
		}
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return &EncodingError{Reason: fmt.Sprintf("frame %d unreadable", idx), Err: err}
		}
		out.Image = append(out.Image, quantize(img))
		out.Delay = append(out.Delay, delay)
	}

	if err := fs.MkdirAll(filepath.Dir(gifPath), 0755); err != nil {
		return fmt.Errorf("create gif dir: %w", err)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return &EncodingError{Reason: "gif encode failed", Err: err}
	}
	if err := fs.WriteFile(gifPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write gif %s: %w", gifPath, err)
	}
	return nil
}

// GIFPath returns the animation target for one export run:
// <root>/gif/<method>/<scenario>.gif.
func GIFPath(resultRoot, method, scenarioID string) string {
	return filepath.Join(resultRoot, "gif", method, scenarioID+".gif")
}

func quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	pal := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(pal, b, img, b.Min)
	return pal
}
