package cache

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/rigado/bluetooth"
)

type matchCache struct {
	entries *lru.Cache
}

// New builds a match cache remembering up to size keys, evicting the least
// recently matched once full. Size must be positive.
func New(size int) (bluetooth.MatchCache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &matchCache{entries: entries}, nil
}

// Contains reports whether key was recorded as matched. Lookups do not
// refresh the key's recency.
func (c *matchCache) Contains(key bluetooth.MatchKey) bool {
	return c.entries.Contains(key)
}

// Add records key as matched, refreshing its recency.
func (c *matchCache) Add(key bluetooth.MatchKey) {
	c.entries.Add(key, struct{}{})
}

func (c *matchCache) Len() int {
	return c.entries.Len()
}
