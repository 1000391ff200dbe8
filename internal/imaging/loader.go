package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/ftrvxmtrx/tga"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
)

// LoadImage reads a portrait file (PNG, JPEG, or TGA) into a RasterImage.
func LoadImage(path string) (*RasterImage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: read %s: %w", path, err)
	}
	img, err := DecodeImage(raw)
	if err != nil {
		return nil, fmt.Errorf("imaging: %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes raw upload bytes into a RasterImage. The format is
// picked by magic bytes rather than image.Decode registration: TGA has no
// magic, so anything that is not PNG or JPEG falls through to the TGA
// decoder.
func DecodeImage(raw []byte) (*RasterImage, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("imaging: empty input")
	}
	var (
		src image.Image
		err error
	)
	switch {
	case bytes.HasPrefix(raw, pngMagic):
		src, err = png.Decode(bytes.NewReader(raw))
	case bytes.HasPrefix(raw, jpegMagic):
		src, err = jpeg.Decode(bytes.NewReader(raw))
	default:
		src, err = tga.Decode(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}
	out := FromNRGBA(toNRGBA(src))
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// toNRGBA converts any decoded image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha channel, draw and set alpha to 255
		draw.Draw(dst, b, src, b.Min, draw.Src)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[dst.PixOffset(x, y)+3] = 255
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
