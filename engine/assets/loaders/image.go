package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"

	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// ImageData is a decoded image as tightly packed RGBA8 rows, ready for
// TextureUpload.
type ImageData struct {
	Width  uint32
	Height uint32
	Pixels []byte
}

// TextureDesc returns a 2D sampled-texture descriptor matching the
// image, with a full mip chain.
func (d *ImageData) TextureDesc(label string) metadata.TextureDesc {
	return metadata.TextureDesc{
		Width:       d.Width,
		Height:      d.Height,
		Depth:       1,
		MipLevels:   metadata.FullMipLevels(d.Width, d.Height),
		ArrayLayers: 1,
		Format:      metadata.TextureFormatRGBA8Unorm,
		Usage:       metadata.TextureUsageSampled | metadata.TextureUsageTransferDst,
		Label:       label,
	}
}

// ImageLoader decodes png, jpeg, bmp and tiff files. FlipY reverses the
// row order for conventions that put the origin at the bottom left.
type ImageLoader struct {
	FlipY bool
}

// Load decodes the image at path into RGBA8 pixels.
func (l ImageLoader) Load(path string) (*ImageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return FromImage(src, l.FlipY), nil
}

// FromImage converts any image.Image into tightly packed RGBA8.
func FromImage(src image.Image, flipY bool) *ImageData {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(rgba, rgba.Bounds(), src, bounds.Min, xdraw.Src)

	pixels := rgba.Pix
	if rgba.Stride != w*4 {
		packed := make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			copy(packed[y*w*4:], rgba.Pix[y*rgba.Stride:y*rgba.Stride+w*4])
		}
		pixels = packed
	}
	if flipY {
		flipped := make([]byte, len(pixels))
		row := w * 4
		for y := 0; y < h; y++ {
			copy(flipped[y*row:], pixels[(h-1-y)*row:(h-y)*row])
		}
		pixels = flipped
	}
	return &ImageData{Width: uint32(w), Height: uint32(h), Pixels: pixels}
}

// GenerateMip downscales the image to the next mip level
// (max(1, dim/2) per axis) with bilinear filtering.
func GenerateMip(src *ImageData) *ImageData {
	w := metadata.MipDimension(src.Width, 1)
	h := metadata.MipDimension(src.Height, 1)

	in := &image.NRGBA{
		Pix:    src.Pixels,
		Stride: int(src.Width) * 4,
		Rect:   image.Rect(0, 0, int(src.Width), int(src.Height)),
	}
	out := image.NewNRGBA(image.Rect(0, 0, int(w), int(h)))
	xdraw.BiLinear.Scale(out, out.Bounds(), in, in.Bounds(), xdraw.Src, nil)

	return &ImageData{Width: w, Height: h, Pixels: out.Pix}
}
