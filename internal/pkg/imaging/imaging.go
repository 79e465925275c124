// Package imaging downsizes uploaded avatars so oversized originals are
// never stored. Only JPEG, PNG and GIF inputs are accepted; output is JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// MaxAvatarSize bounds both avatar dimensions, in pixels.
const MaxAvatarSize = 300

const jpegQuality = 85

// Thumbnail decodes src and scales it down to fit within max×max while
// keeping the aspect ratio. Images already within bounds are re-encoded
// unchanged in size.
func Thumbnail(src []byte, max int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode avatar: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > max || h > max {
		if w >= h {
			h = h * max / w
			w = max
		} else {
			w = w * max / h
			h = max
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
		img = dst
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return out.Bytes(), nil
}
