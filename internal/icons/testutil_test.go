package icons

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// assetFS writes a small PNG at every path.
func assetFS(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	data := pngBytes(t)
	for _, p := range paths {
		require.NoError(t, afero.WriteFile(fs, p, data, 0o644))
	}
	return fs
}

type countingStore struct {
	AssetStore
	loads map[string]int
}

func (s *countingStore) Load(path string) (image.Image, error) {
	s.loads[path]++
	return s.AssetStore.Load(path)
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
