package collectionutils

import "sync"

type SafeMap[K comparable, V any] struct {
	data map[K]V
	mu   sync.RWMutex
}

func New[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{
		data: make(map[K]V),
	}
}

func (safeMap *SafeMap[K, V]) Get(key K) (V, bool) {
	safeMap.mu.RLock()
	defer safeMap.mu.RUnlock()
	value, exists := safeMap.data[key]

	return value, exists
}

// Compute replaces the value under key with fn(current, exists) atomically and returns it.
func (safeMap *SafeMap[K, V]) Compute(key K, fn func(current V, exists bool) V) V {
	safeMap.mu.Lock()
	defer safeMap.mu.Unlock()
	current, exists := safeMap.data[key]
	next := fn(current, exists)
	safeMap.data[key] = next

	return next
}

// DeleteIf removes every entry for which drop returns true.
func (safeMap *SafeMap[K, V]) DeleteIf(drop func(key K, value V) bool) {
	safeMap.mu.Lock()
	defer safeMap.mu.Unlock()
	for k, v := range safeMap.data {
		if drop(k, v) {
			delete(safeMap.data, k)
		}
	}
}

func (safeMap *SafeMap[K, V]) Len() int {
	safeMap.mu.RLock()
	defer safeMap.mu.RUnlock()
	return len(safeMap.data)
}
