package helpers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodeTestImage(t *testing.T, w, h int, asPNG bool) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 16 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	if asPNG {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, nil)
	}
	if err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()

	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("output is not a JPEG data URI: %.40s", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("output payload is not valid base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("output payload is not a decodable JPEG: %v", err)
	}
	return img
}

func TestNormalizePhotoDownscales(t *testing.T) {
	input := encodeTestImage(t, 1600, 900, false)

	uri, err := NormalizePhoto(input, 800)
	if err != nil {
		t.Fatalf("NormalizePhoto failed: %v", err)
	}

	out := decodeDataURI(t, uri)
	bounds := out.Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 450 {
		t.Errorf("output = %dx%d, want 800x450", bounds.Dx(), bounds.Dy())
	}
}

func TestNormalizePhotoRoundsHeight(t *testing.T) {
	// 1000x333 at maxWidth 800 gives 266.4, which rounds to 266.
	input := encodeTestImage(t, 1000, 333, false)

	uri, err := NormalizePhoto(input, 800)
	if err != nil {
		t.Fatalf("NormalizePhoto failed: %v", err)
	}

	out := decodeDataURI(t, uri)
	if got := out.Bounds().Dy(); got != 266 {
		t.Errorf("height = %d, want 266", got)
	}
}

func TestNormalizePhotoKeepsSmallImages(t *testing.T) {
	input := encodeTestImage(t, 400, 300, true)

	uri, err := NormalizePhoto(input, 800)
	if err != nil {
		t.Fatalf("NormalizePhoto failed: %v", err)
	}

	out := decodeDataURI(t, uri)
	bounds := out.Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 300 {
		t.Errorf("output = %dx%d, want unchanged 400x300", bounds.Dx(), bounds.Dy())
	}
}

func TestNormalizePhotoAcceptsPNG(t *testing.T) {
	input := encodeTestImage(t, 1200, 600, true)

	uri, err := NormalizePhoto(input, 800)
	if err != nil {
		t.Fatalf("NormalizePhoto failed: %v", err)
	}

	out := decodeDataURI(t, uri)
	if out.Bounds().Dx() != 800 || out.Bounds().Dy() != 400 {
		t.Errorf("output = %dx%d, want 800x400", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestNormalizePhotoRejectsGarbage(t *testing.T) {
	_, err := NormalizePhoto([]byte("definitely not an image"), 800)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}

	_, err = NormalizePhoto(nil, 800)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for empty input, got %v", err)
	}
}

func TestNormalizePhotoIsDeterministic(t *testing.T) {
	input := encodeTestImage(t, 900, 900, false)

	first, err := NormalizePhoto(input, 800)
	if err != nil {
		t.Fatalf("NormalizePhoto failed: %v", err)
	}
	second, err := NormalizePhoto(input, 800)
	if err != nil {
		t.Fatalf("NormalizePhoto failed: %v", err)
	}

	if first != second {
		t.Error("normalizing the same input twice produced different output")
	}
}
