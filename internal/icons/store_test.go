package icons

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_Load(t *testing.T) {
	fs := assetFS(t, "assets/key/space.png")
	require.NoError(t, afero.WriteFile(fs, "assets/key/broken.png", []byte("not an image"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "assets/key/trunc.png", pngBytes(t)[:20], 0o644))
	s := NewFSStore(fs)

	img, err := s.Load("assets/key/space.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = s.Load("assets/key/missing.png")
	assert.True(t, errors.Is(err, ErrNotFound))

	for _, p := range []string{"assets/key/broken.png", "assets/key/trunc.png"} {
		_, err = s.Load(p)
		assert.True(t, errors.Is(err, ErrCorrupt), p)
		assert.False(t, errors.Is(err, ErrNotFound), p)
	}
}

func TestCache_Memoizes(t *testing.T) {
	store := &countingStore{AssetStore: NewFSStore(assetFS(t, "a.png")), loads: map[string]int{}}
	m := NewMetrics(nil)
	c := NewCache(store, m, discardLogger())

	first, err := c.LoadOrGet("a.png")
	require.NoError(t, err)
	second, err := c.LoadOrGet("a.png")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, store.loads["a.png"])
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
}

func TestCache_FailuresAreNotCached(t *testing.T) {
	fs := assetFS(t)
	store := &countingStore{AssetStore: NewFSStore(fs), loads: map[string]int{}}
	c := NewCache(store, nil, discardLogger())

	_, err := c.LoadOrGet("late.png")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = c.LoadOrGet("late.png")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 2, store.loads["late.png"])
	assert.Zero(t, c.Len())

	require.NoError(t, afero.WriteFile(fs, "late.png", pngBytes(t), 0o644))
	_, err = c.LoadOrGet("late.png")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}
