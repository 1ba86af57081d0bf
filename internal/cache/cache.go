// Package cache memoizes outline results by document content.
package cache

import (
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
	gocache "github.com/patrickmn/go-cache"
)

// ResultCache holds inference results keyed by content hash. Entries expire
// after the configured TTL.
type ResultCache struct {
	c *gocache.Cache
}

func New(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResultCache{c: gocache.New(ttl, 2*ttl)}
}

func (rc *ResultCache) Get(key string) (outline.Result, bool) {
	v, ok := rc.c.Get(key)
	if !ok {
		return outline.Result{}, false
	}
	res, ok := v.(outline.Result)
	return res, ok
}

// Set stores a copy of res so later mutation by the caller does not leak in.
func (rc *ResultCache) Set(key string, res outline.Result) {
	res.Outline = append([]outline.Entry{}, res.Outline...)
	rc.c.SetDefault(key, res)
}

func (rc *ResultCache) Len() int {
	return rc.c.ItemCount()
}
