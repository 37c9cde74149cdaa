// Package texture provides GL texture creation and image export utilities.
package texture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// NewFromRGBA uploads RGBA pixel data as a 2D texture with linear filtering
// and clamped edges.
func NewFromRGBA(pixels []byte, width, height int32) (uint32, error) {
	if int32(len(pixels)) != width*height*4 {
		return 0, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex, nil
}

// NewSolid creates a 1x1 texture of a single color, used as the fallback
// for untextured materials.
func NewSolid(r, g, b, a uint8) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	px := []uint8{r, g, b, a}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(px))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// SavePNG writes RGBA pixels to a PNG file, flipping vertically since
// OpenGL readback is bottom-up. Used to dump baked atlases for inspection.
func SavePNG(path string, pixels []byte, width, height int) error {
	if len(pixels) != width*height*4 {
		return fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
