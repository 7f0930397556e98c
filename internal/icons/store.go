package icons

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNotFound marks a candidate path with no asset behind it. It is a
	// routine outcome while walking resolution candidates.
	ErrNotFound = errors.New("icon not found")
	// ErrCorrupt marks an asset that exists but cannot be decoded.
	ErrCorrupt = errors.New("icon corrupt")
)

// AssetStore loads icon images by path.
type AssetStore interface {
	Exists(path string) bool
	Load(path string) (image.Image, error)
}

// FSStore reads icons from a filesystem.
type FSStore struct {
	fs afero.Fs
}

// NewFSStore returns a store over fs; nil means the OS filesystem.
func NewFSStore(fs afero.Fs) *FSStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FSStore{fs: fs}
}

func (s *FSStore) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

// Load reads and decodes path. Missing files return ErrNotFound, anything
// that is not a decodable image returns ErrCorrupt.
func (s *FSStore) Load(path string) (image.Image, error) {
	if !s.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: %s: content type %s", ErrCorrupt, path, mt.String())
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	return img, nil
}
