package cache

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// DefaultMaxEntries bounds an LLMCache when MaxEntries is zero.
const DefaultMaxEntries = 256

// LLMCache memoizes model responses in memory, keyed by a digest of the
// model name and prompt. Entries live for the lifetime of the process and
// are evicted least-recently-used once MaxEntries is reached.
type LLMCache struct {
	MaxEntries int

	mu    sync.Mutex
	order *list.List
	items map[string]*list.Element
}

type entry struct {
	key  string
	data []byte
}

// KeyFrom builds a cache key from model and prompt digest.
func KeyFrom(model string, prompt string) string {
	h := sha256.Sum256([]byte(model + "\n\n" + prompt))
	return hex.EncodeToString(h[:])
}

func (c *LLMCache) init() {
	if c.items == nil {
		c.items = make(map[string]*list.Element)
		c.order = list.New()
	}
}

// Get returns cached bytes if present.
func (c *LLMCache) Get(_ context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	// Touch for LRU purposes
	c.order.MoveToFront(el)
	data := el.Value.(*entry).data
	return append([]byte(nil), data...), true
}

// Save stores bytes under key, evicting the least recently used entry when
// the cache is full.
func (c *LLMCache) Save(_ context.Context, key string, data []byte) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	data = append([]byte(nil), data...)
	if el, ok := c.items[key]; ok {
		el.Value.(*entry).data = data
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&entry{key: key, data: data})
	max := c.MaxEntries
	if max <= 0 {
		max = DefaultMaxEntries
	}
	for c.order.Len() > max {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

// Len reports the number of cached entries.
func (c *LLMCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return 0
	}
	return c.order.Len()
}
