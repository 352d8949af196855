package ratelimit

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCompleter struct {
	calls atomic.Int32
}

func (c *countingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.calls.Add(1)
	return "echo: " + prompt, nil
}

func TestLimiterForwardsCalls(t *testing.T) {
	next := &countingCompleter{}
	l := NewLimiter(next, 0, zerolog.Nop())

	for i := 0; i < 5; i++ {
		out, err := l.Complete(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "echo: hi", out)
	}
	assert.Equal(t, int32(5), next.calls.Load())
}

func TestLimiterSpacesCalls(t *testing.T) {
	next := &countingCompleter{}
	// 1200 per minute is one call every 50ms
	l := NewLimiter(next, 1200, zerolog.Nop())

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := l.Complete(context.Background(), "x")
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestLimiterHonorsCancellation(t *testing.T) {
	next := &countingCompleter{}
	l := NewLimiter(next, 1, zerolog.Nop())

	_, err := l.Complete(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Complete(ctx, "second")
	assert.Error(t, err)
	assert.Equal(t, int32(1), next.calls.Load())
}
