package memory

import (
	"slices"
	"strings"
	"sync"

	"braindump/internal/ports"
)

// KV implements ports.KeyValueStore in memory. Nothing survives Close.
type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// Ensure KV implements KeyValueStore
var _ ports.KeyValueStore = (*KV)(nil)

// NewKV creates an empty in-memory store
func NewKV() *KV {
	return &KV{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value
func (kv *KV) Get(key string) ([]byte, bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	v, ok := kv.data[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

// Set stores a copy of value under key
func (kv *KV) Set(key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.data[key] = slices.Clone(value)
	return nil
}

// Delete removes key if present
func (kv *KV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	delete(kv.data, key)
	return nil
}

// Keys returns the keys starting with prefix in ascending order
func (kv *KV) Keys(prefix string) ([]string, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	var keys []string
	for k := range kv.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// Close drops all data
func (kv *KV) Close() error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.data = make(map[string][]byte)
	return nil
}
