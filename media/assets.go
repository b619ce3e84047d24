package media

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AssetLoader fetches branding asset bytes from a reference produced by
// ResolveBranding. A missing or unfetchable asset is never fatal to the
// pipeline: Load reports it and the caller proceeds without the asset.
type AssetLoader struct {
	publicDir string
	client    *http.Client
}

func NewAssetLoader(publicDir string) *AssetLoader {
	return &AssetLoader{
		publicDir: publicDir,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Load resolves ref to bytes. Remote URLs are fetched over the network; local
// references are read from under the public directory. Any failure is logged
// and yields nil.
func (l *AssetLoader) Load(ref string) []byte {
	if ref == "" {
		return nil
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		data, err := l.fetch(ref)
		if err != nil {
			zap.L().Warn("branding asset fetch failed, proceeding without it",
				zap.String("ref", ref), zap.Error(err))
			return nil
		}
		return data
	}

	path := l.localPath(ref)
	if _, err := os.Stat(path); err != nil {
		zap.L().Warn("branding asset not found on disk, proceeding without it",
			zap.String("ref", ref), zap.String("path", path))
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		zap.L().Warn("branding asset read failed, proceeding without it",
			zap.String("path", path), zap.Error(err))
		return nil
	}
	return data
}

func (l *AssetLoader) fetch(url string) ([]byte, error) {
	resp, err := l.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// localPath maps an asset reference to a filesystem path. Site-relative
// references ("/frames/gold.png") resolve under the public directory, mirroring
// how the admin UI stores uploaded assets; bare relative ones resolve there
// too. Anything else passes through as a filesystem path.
func (l *AssetLoader) localPath(ref string) string {
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return filepath.Join(l.publicDir, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
	}
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(l.publicDir, filepath.FromSlash(ref))
}
