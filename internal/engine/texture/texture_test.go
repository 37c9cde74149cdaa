package texture

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSavePNGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "atlas.png")

	// 2x2 image, bottom-up: first row is the image's bottom row.
	pixels := []byte{
		255, 0, 0, 255, 0, 255, 0, 255, // bottom: red, green
		0, 0, 255, 255, 255, 255, 255, 255, // top: blue, white
	}

	if err := SavePNG(path, pixels, 2, 2); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding saved PNG: %v", err)
	}

	// Flipped on save: the top-left pixel must be blue.
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 255 {
		t.Errorf("top-left pixel = (%d,%d,%d), want blue", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(0, 1).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("bottom-left pixel = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestSavePNGSizeMismatch(t *testing.T) {
	if err := SavePNG(filepath.Join(t.TempDir(), "x.png"), []byte{1, 2, 3}, 2, 2); err == nil {
		t.Error("SavePNG() with wrong buffer size must fail")
	}
}
