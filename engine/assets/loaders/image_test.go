package loaders

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImageFlipY(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 20, A: 255})

	straight := FromImage(img, false)
	if straight.Pixels[0] != 10 {
		t.Errorf("row 0 red = %d, want 10", straight.Pixels[0])
	}

	flipped := FromImage(img, true)
	if flipped.Pixels[0] != 20 {
		t.Errorf("flipped row 0 red = %d, want 20", flipped.Pixels[0])
	}
	if flipped.Pixels[2*4] != 10 {
		t.Errorf("flipped row 1 red = %d, want 10", flipped.Pixels[2*4])
	}
}

func TestGenerateMip(t *testing.T) {
	// Uniform gray stays uniform under downscaling.
	src := &ImageData{Width: 4, Height: 4, Pixels: make([]byte, 4*4*4)}
	for i := range src.Pixels {
		src.Pixels[i] = 128
	}

	mip := GenerateMip(src)
	if mip.Width != 2 || mip.Height != 2 {
		t.Fatalf("mip dimensions = %dx%d, want 2x2", mip.Width, mip.Height)
	}
	if len(mip.Pixels) != 2*2*4 {
		t.Fatalf("mip bytes = %d, want 16", len(mip.Pixels))
	}
	for i, p := range mip.Pixels {
		if p != 128 {
			t.Fatalf("mip pixel byte %d = %d, want 128", i, p)
		}
	}

	// 1x1 is the floor.
	one := GenerateMip(&ImageData{Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 4}})
	if one.Width != 1 || one.Height != 1 {
		t.Errorf("1x1 mip = %dx%d", one.Width, one.Height)
	}
}
