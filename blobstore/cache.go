package blobstore

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/graphattr/resource"
)

// CachingStore keeps whole blobs read from a slower store, such as S3, in
// an LRU bounded in bytes. Writes and deletes go through to the wrapped
// store and drop the cached copy.
//
// Blobs are cached whole; it suits stores of immutable, moderately sized
// blobs like snapshot columns.
type CachingStore struct {
	Store

	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[string]*list.Element
	evictList *list.List
	rc        *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	name string
	data []byte
}

// NewCachingStore wraps s with a cache of capacity bytes. Cached bytes are
// charged to rc, which may be nil.
func NewCachingStore(s Store, capacity int64, rc *resource.Controller) *CachingStore {
	return &CachingStore{
		Store:     s,
		capacity:  capacity,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
		rc:        rc,
	}
}

// Open returns the cached blob or reads it whole from the wrapped store.
func (c *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := c.get(name); ok {
		return &memoryBlob{data: data}, nil
	}

	b, err := c.Store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	data, err := ReadAll(ctx, b)
	if cerr := b.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	c.set(name, data)
	return &memoryBlob{data: data}, nil
}

// Put writes through and invalidates the cached copy.
func (c *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	c.invalidate(name)
	return c.Store.Put(ctx, name, data)
}

// Delete deletes through and invalidates the cached copy.
func (c *CachingStore) Delete(ctx context.Context, name string) error {
	c.invalidate(name)
	return c.Store.Delete(ctx, name)
}

// Stats returns the number of cache hits and misses.
func (c *CachingStore) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// CachedBytes returns the bytes currently held.
func (c *CachingStore) CachedBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *CachingStore) get(name string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[name]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(el)
		return el.Value.(*cacheEntry).data, true
	}
	c.misses.Add(1)
	return nil, false
}

func (c *CachingStore) set(name string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := int64(len(data))
	if n > c.capacity {
		return
	}
	if el, ok := c.items[name]; ok {
		c.removeElement(el)
	}
	for c.size+n > c.capacity {
		el := c.evictList.Back()
		if el == nil {
			break
		}
		c.removeElement(el)
	}
	// The global budget wins over the cache capacity.
	if !c.rc.TryAcquireMemory(n) {
		return
	}

	c.items[name] = c.evictList.PushFront(&cacheEntry{name: name, data: data})
	c.size += n
}

func (c *CachingStore) invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[name]; ok {
		c.removeElement(el)
	}
}

func (c *CachingStore) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	e := el.Value.(*cacheEntry)
	delete(c.items, e.name)
	n := int64(len(e.data))
	c.size -= n
	c.rc.ReleaseMemory(n)
}
