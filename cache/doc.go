// Package cache provides a sharded, concurrency-safe LRU cache used to keep
// generated distance fields around between requests.
package cache
