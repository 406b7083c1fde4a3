// Package cache holds small in-process caches for values that are costly to
// build and safe to share, such as locale printers used for amount display.
package cache

// Cache defines a generic cache interface
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)

	// Size returns the current number of items in the cache
	Size() int
}

// GetOrCreate returns the cached value for key, building and storing it on a miss.
func GetOrCreate[T any](c Cache[T], key string, build func() T) T {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := build()
	c.Set(key, v)
	return v
}
