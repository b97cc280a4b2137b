package store

import (
	timevault "github.com/lockstead/timevault"
)

// Move references for all storage types into this package
// for shorter names everywhere.

type KVStore = timevault.KVStore
type Iterator = timevault.Iterator
type CacheableKVStore = timevault.CacheableKVStore
type KVCacheWrap = timevault.KVCacheWrap

// Model groups a key-value pair, mainly to feed iterators in tests.
type Model struct {
	Key   []byte
	Value []byte
}

// SetDeleter is a subset of KVStore that a batch of operations can be
// applied to.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// Batch collects write operations to apply them later in order.
type Batch interface {
	SetDeleter
	Write(out SetDeleter)
}
