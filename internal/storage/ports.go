// Package storage defines the key/value blob port the subscription store
// persists through. Each key holds one opaque byte blob; implementations live
// in the memory, file and sqlite subpackages.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Load when nothing has been saved under the key.
	ErrNotFound   = errors.New("blob not found")
	ErrInvalidKey = errors.New("invalid storage key")
)

// Ports for blob backends.
type (
	BlobReader interface {
		Load(ctx context.Context, key string) ([]byte, error)
	}

	BlobWriter interface {
		// Save replaces whatever is stored under key.
		Save(ctx context.Context, key string, data []byte) error
	}

	BlobStore interface {
		BlobReader
		BlobWriter
	}
)

const maxKeyLength = 128

// ValidateKey accepts keys made of letters, digits, dot, dash and underscore.
// Keys double as file names in the file backend, so a leading dot is refused.
func ValidateKey(key string) error {
	if key == "" || len(key) > maxKeyLength {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if key[0] == '.' {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
