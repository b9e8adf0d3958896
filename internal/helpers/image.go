package helpers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// MaxPhotoWidth bounds the inline photo stored inside a review
	// document.
	MaxPhotoWidth = 800

	photoJPEGQuality = 80
)

// ErrDecode marks input that is not a decodable raster image. Callers keep
// the prior photo state when they see it.
var ErrDecode = errors.New("unsupported or corrupt image data")

// NormalizePhoto decodes a user-selected image, downscales it so the width
// never exceeds maxWidth (height scales proportionally, rounded to the
// nearest pixel), and re-encodes it as a JPEG data URI. Images already
// within bounds keep their dimensions. The transform has no side effects;
// nothing is persisted or uploaded here.
func NormalizePhoto(data []byte, maxWidth int) (string, error) {
	if maxWidth <= 0 {
		maxWidth = MaxPhotoWidth
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return "", ErrDecode
	}

	if w > maxWidth {
		scaledH := int(math.Round(float64(h) * float64(maxWidth) / float64(w)))
		if scaledH < 1 {
			scaledH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, scaledH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: photoJPEGQuality}); err != nil {
		return "", fmt.Errorf("failed to encode photo: %v", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
