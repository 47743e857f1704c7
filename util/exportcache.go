package util

import (
	"container/list"
	"sync"
)

// LRU cache for export query signature -> rendered CSV payload. Exports over
// large datasets are the most expensive endpoint, and dashboards tend to
// re-download the same view.
type exportEntry struct {
	key     string
	payload string
}

type exportLRU struct {
	mu       sync.Mutex
	ll       *list.List
	cache    map[string]*list.Element
	capacity int
}

var exportCache *exportLRU

// InitExportCache initializes the LRU cache with given capacity.
// If capacity <= 0, a default of 64 is used.
func InitExportCache(capacity int) {
	if capacity <= 0 {
		capacity = 64
	}
	exportCache = &exportLRU{
		ll:       list.New(),
		cache:    make(map[string]*list.Element),
		capacity: capacity,
	}
}

// ExportCacheGet returns the cached CSV payload and true if present.
func ExportCacheGet(key string) (string, bool) {
	if exportCache == nil {
		return "", false
	}
	exportCache.mu.Lock()
	defer exportCache.mu.Unlock()
	if ele, ok := exportCache.cache[key]; ok {
		exportCache.ll.MoveToFront(ele)
		if e, ok := ele.Value.(exportEntry); ok {
			return e.payload, true
		}
	}
	return "", false
}

// ExportCacheSet stores a rendered CSV payload for a query signature.
func ExportCacheSet(key, payload string) {
	if exportCache == nil {
		return
	}
	exportCache.mu.Lock()
	defer exportCache.mu.Unlock()
	if ele, ok := exportCache.cache[key]; ok {
		exportCache.ll.MoveToFront(ele)
		ele.Value = exportEntry{key: key, payload: payload}
		return
	}
	ele := exportCache.ll.PushFront(exportEntry{key: key, payload: payload})
	exportCache.cache[key] = ele
	if exportCache.ll.Len() > exportCache.capacity {
		// evict least recently used
		tail := exportCache.ll.Back()
		if tail != nil {
			if e, ok := tail.Value.(exportEntry); ok {
				delete(exportCache.cache, e.key)
			}
			exportCache.ll.Remove(tail)
		}
	}
}

// ExportCacheFlush empties the cache. Called whenever a new dataset commits
// so exports never serve rows from a replaced snapshot.
func ExportCacheFlush() {
	if exportCache == nil {
		return
	}
	exportCache.mu.Lock()
	defer exportCache.mu.Unlock()
	exportCache.ll = list.New()
	exportCache.cache = make(map[string]*list.Element)
}
