package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Cache is a thread-safe in-process TTL store over sync.Map. The capacity
// report and report summaries live here; tags let a mutating write flush every
// derived entry in one call.
type Cache struct {
	m        sync.Map
	tagIndex sync.Map // tag -> *sync.Map of keys
}

var (
	once     sync.Once
	instance *Cache
)

// GetInstance returns the process-wide cache.
func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

func NewCache() *Cache {
	return &Cache{}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // UnixNano; 0 means no expiration
}

// Set stores a value with a TTL in seconds (0 = no expiry) and optional tags.
func (c *Cache) Set(key, value interface{}, ttl int64, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(time.Duration(ttl) * time.Second).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	if len(tags) > 0 {
		c.TagKey(key, tags)
	}
}

// Get returns (value, true) when the key is present and unexpired. Expired
// entries are dropped on read.
func (c *Cache) Get(key interface{}) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	if item, isItem := v.(cacheItem); isItem {
		if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
			c.m.Delete(key)
			return nil, false
		}
		return item.Value, true
	}
	return v, true
}

// GetOrDef returns the cached value, or the default when absent or expired.
func (c *Cache) GetOrDef(key, defaultValue interface{}) interface{} {
	if v, ok := c.Get(key); ok {
		return v
	}
	return defaultValue
}

func (c *Cache) Delete(key interface{}) {
	c.m.Delete(key)
}

func (c *Cache) DeleteMany(keys ...interface{}) {
	for _, key := range keys {
		c.m.Delete(key)
	}
}

func makeCompositeKey(keys ...interface{}) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%v", k)
	}
	return strings.Join(parts, "|")
}

// SetN stores a value under a composite key, e.g. ("summary", from, to).
func (c *Cache) SetN(keys []interface{}, value interface{}, ttl int64, tags []string) {
	c.Set(makeCompositeKey(keys...), value, ttl, tags)
}

// GetN reads a composite key.
func (c *Cache) GetN(keys ...interface{}) (interface{}, bool) {
	return c.Get(makeCompositeKey(keys...))
}

func (c *Cache) DeleteN(keys ...interface{}) {
	c.Delete(makeCompositeKey(keys...))
}

// TagKey indexes a key under each tag for group invalidation.
func (c *Cache) TagKey(key interface{}, tags []string) {
	for _, tag := range tags {
		set, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		set.(*sync.Map).Store(key, struct{}{})
	}
}

// DeleteByTag drops every key indexed under the tag.
func (c *Cache) DeleteByTag(tag string) {
	set, ok := c.tagIndex.Load(tag)
	if !ok {
		return
	}
	set.(*sync.Map).Range(func(key, _ interface{}) bool {
		c.m.Delete(key)
		return true
	})
	c.tagIndex.Delete(tag)
}
