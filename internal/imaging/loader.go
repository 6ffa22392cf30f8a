package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
)

// FileStore reads and writes buffers on disk and caches decoded files.
//
// Decoding goes through disintegration/imaging (PNG, JPEG, GIF, BMP, TIFF,
// with EXIF auto-orientation). Encoding goes through bild's imgio with the
// encoder picked from the file extension.
//
// Decoded images are cached by the exact path string together with the
// file's modification time and size. Open stats the file on every call and
// decodes again when either has changed, so files rewritten by another
// process are picked up. Open always hands out a fresh clone, so callers may
// mutate what they get. Saving to a path evicts it from the cache.
//
// FileStore is safe for concurrent use.
type FileStore struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	buf     *Buffer
	modTime time.Time
	size    int64
}

func (e cacheEntry) matches(fi os.FileInfo) bool {
	return e.modTime.Equal(fi.ModTime()) && e.size == fi.Size()
}

// NewFileStore creates an empty store.
func NewFileStore() *FileStore {
	return &FileStore{
		entries: make(map[string]cacheEntry),
	}
}

// Open returns a private copy of the image at path.
//
// # Errors
//
//   - FILE_ACCESS if the file does not exist, cannot be read, or is not a
//     decodable image
func (s *FileStore) Open(path string) (*Buffer, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, editerr.Wrap(editerr.ErrCodeFileAccess, err, "failed to open image %s", path)
	}

	s.mu.RLock()
	e, ok := s.entries[path]
	s.mu.RUnlock()
	if ok && e.matches(fi) {
		return e.buf.Clone(), nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, editerr.Wrap(editerr.ErrCodeFileAccess, err, "failed to open image %s", path)
	}
	b := FromImage(img)

	s.mu.Lock()
	s.entries[path] = cacheEntry{buf: b, modTime: fi.ModTime(), size: fi.Size()}
	s.mu.Unlock()

	return b.Clone(), nil
}

// Save encodes b to path. The format follows the extension: .png, .jpg,
// .jpeg or .bmp.
//
// # Errors
//
//   - INVALID_INPUT for any other extension
//   - FILE_ACCESS if the file cannot be written
func (s *FileStore) Save(path string, b *Buffer) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, b.Image(), enc); err != nil {
		return editerr.Wrap(editerr.ErrCodeFileAccess, err, "failed to save image %s", path)
	}
	s.Evict(path)
	return nil
}

// Evict removes one path from the cache. Unknown paths are ignored.
func (s *FileStore) Evict(path string) {
	s.mu.Lock()
	delete(s.entries, path)
	s.mu.Unlock()
}

// jpegQuality is used for every JPEG written by the store.
const jpegQuality = 95

func encoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(jpegQuality), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, editerr.New(editerr.ErrCodeInvalidInput,
			"unsupported file extension %q (did you include .png, .jpg or .bmp?)", filepath.Ext(path))
	}
}

// PreviewResult contains an encoded snapshot of a buffer.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePreview renders b as a base64 PNG.
//
// Parameters:
//   - b: The buffer to render.
//   - scale: Resize factor applied with a Lanczos filter. Values <= 0 or 1.0
//     keep the original size.
//   - maxDimension: If positive, the longer side is further limited to this
//     many pixels, preserving the aspect ratio.
func EncodePreview(b *Buffer, scale float64, maxDimension int) (*PreviewResult, error) {
	if b.width == 0 || b.height == 0 {
		return nil, editerr.New(editerr.ErrCodeInvalidDimension,
			"cannot preview an empty %dx%d image", b.width, b.height)
	}

	img := b.Image()
	w, h := b.width, b.height
	if scale > 0 && scale != 1.0 {
		w = max(1, int(float64(w)*scale))
		h = max(1, int(float64(h)*scale))
	}
	if maxDimension > 0 && (w > maxDimension || h > maxDimension) {
		if w >= h {
			h = max(1, h*maxDimension/w)
			w = maxDimension
		} else {
			w = max(1, w*maxDimension/h)
			h = maxDimension
		}
	}

	out := img
	if w != b.width || h != b.height {
		out = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
