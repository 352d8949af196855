// Package chunk splits ordered sequences into fixed-size batches.
package chunk

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when the chunk size is below one
var ErrInvalidSize = errors.New("chunk size must be at least 1")

// Split partitions items into contiguous, non-overlapping chunks of size elements.
// The last chunk may be shorter. An empty input yields no chunks.
// Chunks share the backing array of items.
func Split[T any](items []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end:end])
	}

	return chunks, nil
}
