package store

import "github.com/goldtix/registry"

// Move references for all storage types into this package
// for shorter names everywhere.

type ReadOnlyKVStore = registry.ReadOnlyKVStore
type KVStore = registry.KVStore
type SetDeleter = registry.SetDeleter
type Batch = registry.Batch
type Iterator = registry.Iterator
type CacheableKVStore = registry.CacheableKVStore
type KVCacheWrap = registry.KVCacheWrap

// Model is a pair of key and value stored in a database, used by iterator
// helpers and tests.
type Model struct {
	Key   []byte
	Value []byte
}
