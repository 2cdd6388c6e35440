package ports

// KeyValueStore is the durable byte store ideas are persisted into.
// Implementations must treat Delete of a missing key as success.
type KeyValueStore interface {
	// Get returns the value for key. ok is false when the key does not exist.
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error

	// Keys returns every stored key starting with prefix, in ascending order
	Keys(prefix string) ([]string, error)

	Close() error
}
