// Package imagemeta probes image files for their pixel dimensions without
// decoding pixel data. The engine only ever needs dimensions (one probe per
// pose at load time), so the full decoders are never invoked.
package imagemeta

import (
	"fmt"
	"image"
	"os"

	// Registered for their DecodeConfig header readers only.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Size is an image's pixel dimensions.
type Size struct {
	Width  int
	Height int
}

// Probe reads the dimensions of the image at path. The file handle is
// released before returning, on success or failure.
func Probe(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("unknown or corrupt image format for %s: %w", path, err)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}
