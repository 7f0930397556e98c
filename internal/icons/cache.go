package icons

import (
	"errors"
	"image"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Cache memoizes successful loads by exact path. Entries never expire and
// failures are never stored, so a missing asset is retried on the next
// request.
type Cache struct {
	store   AssetStore
	items   *gocache.Cache
	metrics *Metrics
	log     logrus.FieldLogger
}

func NewCache(store AssetStore, m *Metrics, log logrus.FieldLogger) *Cache {
	return &Cache{
		store:   store,
		items:   gocache.New(gocache.NoExpiration, 0),
		metrics: m,
		log:     log,
	}
}

// LoadOrGet returns the image for path, loading it on first use.
func (c *Cache) LoadOrGet(path string) (image.Image, error) {
	if v, ok := c.items.Get(path); ok {
		c.metrics.lookup(true)
		return v.(image.Image), nil
	}
	c.metrics.lookup(false)

	img, err := c.store.Load(path)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.metrics.failure("not_found")
			c.log.WithField("path", path).Debug("icon candidate missing")
		case errors.Is(err, ErrCorrupt):
			c.metrics.failure("corrupt")
			c.log.WithError(err).WithField("path", path).Warn("icon could not be decoded")
		default:
			c.metrics.failure("other")
			c.log.WithError(err).WithField("path", path).Warn("icon load failed")
		}
		return nil, err
	}
	c.items.Set(path, img, gocache.NoExpiration)
	return img, nil
}

// Len reports the number of cached images.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}
