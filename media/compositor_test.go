package media

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func encodeJPEG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := imaging.New(width, height, c)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := imaging.New(width, height, c)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDimensions(t *testing.T) {
	data := encodeJPEG(t, 640, 480, color.White)
	w, h, err := Dimensions(data)
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 640 || h != 480 {
		t.Fatalf("got %dx%d, want 640x480", w, h)
	}

	if _, _, err := Dimensions([]byte("not an image")); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestIsPortrait(t *testing.T) {
	if IsPortrait(640, 480) {
		t.Fatal("640x480 reported portrait")
	}
	if !IsPortrait(480, 640) {
		t.Fatal("480x640 not reported portrait")
	}
	// Square counts as landscape.
	if IsPortrait(500, 500) {
		t.Fatal("square reported portrait")
	}
}

func TestCompositePassthroughWithoutAssets(t *testing.T) {
	original := encodeJPEG(t, 800, 600, color.RGBA{R: 200, A: 255})

	res, err := Composite(original, nil, nil, 80, 60)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if !bytes.Equal(res.Preview, original) {
		t.Fatal("preview should be byte-identical to the original when no assets apply")
	}
	if res.Width != 800 || res.Height != 600 {
		t.Fatalf("got dimensions %dx%d, want 800x600", res.Width, res.Height)
	}
}

func TestCompositeWithFrameReencodes(t *testing.T) {
	original := encodeJPEG(t, 800, 600, color.RGBA{R: 200, A: 255})
	frame := encodePNG(t, 100, 50, color.RGBA{B: 255, A: 255})

	res, err := Composite(original, frame, nil, 80, 60)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if bytes.Equal(res.Preview, original) {
		t.Fatal("framed preview should differ from the original")
	}

	w, h, err := Dimensions(res.Preview)
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if w != 800 || h != 600 {
		t.Fatalf("framed preview is %dx%d, want original 800x600", w, h)
	}
}

func TestCompositeThumbnailBounds(t *testing.T) {
	original := encodeJPEG(t, 1600, 900, color.White)

	res, err := Composite(original, nil, nil, 80, 60)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	w, h, err := Dimensions(res.Thumbnail)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if w > ThumbnailMaxSize || h > ThumbnailMaxSize {
		t.Fatalf("thumbnail %dx%d exceeds %d", w, h, ThumbnailMaxSize)
	}
	if w != 400 || h != 225 {
		t.Fatalf("thumbnail %dx%d, want 400x225 for 16:9 input", w, h)
	}
}

func TestCompositeSmallOriginalThumbnailNotUpscaled(t *testing.T) {
	original := encodeJPEG(t, 200, 150, color.White)

	res, err := Composite(original, nil, nil, 80, 60)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	w, h, err := Dimensions(res.Thumbnail)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if w != 200 || h != 150 {
		t.Fatalf("thumbnail %dx%d, want 200x150", w, h)
	}
}

func TestCompositeDeterministic(t *testing.T) {
	original := encodeJPEG(t, 600, 400, color.RGBA{G: 180, A: 255})
	watermark := encodePNG(t, 120, 40, color.RGBA{A: 128})

	first, err := Composite(original, nil, watermark, 80, 60)
	if err != nil {
		t.Fatalf("first Composite: %v", err)
	}
	second, err := Composite(original, nil, watermark, 80, 60)
	if err != nil {
		t.Fatalf("second Composite: %v", err)
	}
	if !bytes.Equal(first.Preview, second.Preview) {
		t.Fatal("previews differ between identical runs")
	}
	if !bytes.Equal(first.Thumbnail, second.Thumbnail) {
		t.Fatal("thumbnails differ between identical runs")
	}
}

func TestCompositeCorruptOriginal(t *testing.T) {
	if _, err := Composite([]byte("garbage"), nil, nil, 80, 60); err == nil {
		t.Fatal("expected error for undecodable original")
	}
}

func TestCompositeCorruptAssetSkipped(t *testing.T) {
	original := encodeJPEG(t, 800, 600, color.White)

	res, err := Composite(original, []byte("not a png"), []byte("also not"), 80, 60)
	if err != nil {
		t.Fatalf("Composite should tolerate undecodable assets: %v", err)
	}
	if !bytes.Equal(res.Preview, original) {
		t.Fatal("preview should fall back to the original when all assets are undecodable")
	}
}

func TestClampQuality(t *testing.T) {
	if q := clampQuality(0, 80); q != 80 {
		t.Fatalf("clampQuality(0)=%d, want fallback 80", q)
	}
	if q := clampQuality(150, 80); q != 100 {
		t.Fatalf("clampQuality(150)=%d, want 100", q)
	}
	if q := clampQuality(55, 80); q != 55 {
		t.Fatalf("clampQuality(55)=%d, want 55", q)
	}
}

func TestCompositeFramePlusWatermark(t *testing.T) {
	original := encodeJPEG(t, 400, 600, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	frame := encodePNG(t, 200, 300, color.RGBA{R: 255, A: 255})
	watermark := encodePNG(t, 50, 50, color.RGBA{B: 255, A: 255})

	res, err := Composite(original, frame, watermark, 80, 60)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if bytes.Equal(res.Preview, original) {
		t.Fatal("branded preview should differ from the original")
	}

	img, err := imaging.Decode(bytes.NewReader(res.Preview))
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	// The frame covers the full canvas, so a corner pixel takes its color.
	corner := img.At(0, 0)
	r, _, _, _ := corner.RGBA()
	if r>>8 < 200 {
		t.Fatalf("corner pixel not covered by red frame: %v", corner)
	}
}
