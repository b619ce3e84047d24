// Package media implements the pure image side of the pipeline: branding
// resolution, asset loading and the compositing transform that produces the
// branded preview and the thumbnail. Nothing here knows about events, storage
// backends or persistence.
package media

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/eventpix/backend/models"
)

// ThumbnailMaxSize bounds the longer thumbnail dimension.
const ThumbnailMaxSize = 400

// Result carries the compositor outputs. Width and Height are the original's
// dimensions; compositing never changes them.
type Result struct {
	Preview   []byte
	Thumbnail []byte
	Width     int
	Height    int
}

// Dimensions decodes just enough of the image to report its size.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// IsPortrait reports the orientation convention used across the pipeline.
func IsPortrait(width, height int) bool {
	return height > width
}

// Composite applies the optional frame and watermark to the original and
// derives the thumbnail.
//
// The frame is stretched to the photo's exact dimensions; frames are authored
// to the event's common aspect, so the aspect ratio is intentionally ignored.
// The watermark keeps its own aspect, is never upscaled, and lands centered
// over the (possibly framed) photo. When neither asset decodes, the preview is
// byte-identical to the original. The thumbnail always derives from the
// unbranded original.
func Composite(original, frame, watermark []byte, previewQuality, thumbQuality int) (*Result, error) {
	img, err := imaging.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var composed image.Image = img
	composited := false

	if len(frame) > 0 {
		frameImg, err := imaging.Decode(bytes.NewReader(frame))
		if err != nil {
			zap.L().Warn("frame asset is not a decodable image, skipping", zap.Error(err))
		} else {
			resized := imaging.Resize(frameImg, width, height, imaging.Lanczos)
			composed = imaging.Overlay(composed, resized, image.Pt(0, 0), 1.0)
			composited = true
		}
	}

	if len(watermark) > 0 {
		wmImg, err := imaging.Decode(bytes.NewReader(watermark))
		if err != nil {
			zap.L().Warn("watermark asset is not a decodable image, skipping", zap.Error(err))
		} else {
			fitted := imaging.Fit(wmImg, width, height, imaging.Lanczos)
			pos := image.Pt((width-fitted.Bounds().Dx())/2, (height-fitted.Bounds().Dy())/2)
			composed = imaging.Overlay(composed, fitted, pos, 1.0)
			composited = true
		}
	}

	preview := original
	if composited {
		var buf bytes.Buffer
		err = imaging.Encode(&buf, composed, imaging.JPEG, imaging.JPEGQuality(clampQuality(previewQuality, models.DefaultJpegQuality)))
		if err != nil {
			return nil, fmt.Errorf("failed to encode preview: %w", err)
		}
		preview = buf.Bytes()
	}

	thumb := imaging.Fit(img, ThumbnailMaxSize, ThumbnailMaxSize, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	err = imaging.Encode(&thumbBuf, thumb, imaging.JPEG, imaging.JPEGQuality(clampQuality(thumbQuality, models.DefaultThumbQuality)))
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return &Result{
		Preview:   preview,
		Thumbnail: thumbBuf.Bytes(),
		Width:     width,
		Height:    height,
	}, nil
}

func clampQuality(q, fallback int) int {
	if q <= 0 {
		return fallback
	}
	if q > 100 {
		return 100
	}
	return q
}
