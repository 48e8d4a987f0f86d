package symcache

import "sync/atomic"

type counters struct {
	indexHits   atomic.Uint64
	cacheHits   atomic.Uint64
	resolutions atomic.Uint64
}
