package artifact

import (
	"bytes"
	"fmt"

	"avatarforge/internal/imaging"

	"github.com/HugoSmits86/nativewebp"
)

// EncodePreview renders the working-resolution portrait (the mesh albedo)
// as a WebP sidecar for dashboards and thumbnails.
func EncodePreview(img *imaging.RasterImage) ([]byte, error) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img.ToNRGBA(), nil); err != nil {
		return nil, fmt.Errorf("artifact: webp encode: %w", err)
	}
	return buf.Bytes(), nil
}
