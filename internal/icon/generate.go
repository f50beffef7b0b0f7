package icon

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/Mavwarf/voxa-build/internal/paths"
)

// Variant is one rendered file of the icon set.
type Variant struct {
	Size  int // nominal size in points
	Scale int // 1 or 2
}

// Pixels returns the rendered edge length.
func (v Variant) Pixels() int { return v.Size * v.Scale }

// FileName returns the icon set file name, e.g. app-icon-16x16@2x.png.
func (v Variant) FileName() string {
	if v.Scale == 1 {
		return fmt.Sprintf("app-icon-%dx%d.png", v.Size, v.Size)
	}
	return fmt.Sprintf("app-icon-%dx%d@%dx.png", v.Size, v.Size, v.Scale)
}

// Variants lists every 1x and 2x variant for Sizes, in output order.
func Variants() []Variant {
	out := make([]Variant, 0, 2*len(Sizes))
	for _, s := range Sizes {
		out = append(out, Variant{Size: s, Scale: 1}, Variant{Size: s, Scale: 2})
	}
	return out
}

// EncodePNG renders v and returns the PNG bytes. The 2x variant is drawn
// at full resolution, not upscaled.
func EncodePNG(v Variant) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Draw(v.Pixels())); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", v.FileName(), err)
	}
	return buf.Bytes(), nil
}

// Generate writes every variant into dir, creating it if needed, and
// returns the written paths in order. The optional created callback is
// invoked after each file lands on disk.
func Generate(dir string, created func(path string)) ([]string, error) {
	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	var written []string
	for _, v := range Variants() {
		data, err := EncodePNG(v)
		if err != nil {
			return written, err
		}
		p := filepath.Join(dir, v.FileName())
		if err := os.WriteFile(p, data, paths.FilePerm); err != nil {
			return written, fmt.Errorf("writing %s: %w", p, err)
		}
		written = append(written, p)
		if created != nil {
			created(p)
		}
	}
	return written, nil
}
