package media

import (
	"bytes"
	"mime"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// TakenAtUnix extracts the EXIF capture timestamp, if present. Absent or
// unparsable EXIF data is normal for screenshots and edited exports, so the
// result is simply nil in that case.
func TakenAtUnix(data []byte) *int64 {
	exifData, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	taken, err := exifData.DateTime()
	if err != nil {
		return nil
	}
	ts := taken.Unix()
	return &ts
}

// MimeTypeForFilename maps an upload's extension to the mime type stored on
// the Photo record. Unknown extensions default to JPEG, matching what the
// compositor emits.
func MimeTypeForFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if t := mime.TypeByExtension(ext); t != "" && strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}

// IsRasterImage checks whether the filename carries one of the intake-eligible
// photo extensions.
func IsRasterImage(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
