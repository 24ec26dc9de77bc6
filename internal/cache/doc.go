// Package cache provides a bounded least-recently-used cache whose
// evictions are reported to a callback, so values owning GPU objects can be
// released when they fall out of the cache.
package cache
