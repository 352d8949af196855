package analysis

import (
	"context"
	"fmt"
	"sync"
)

// scriptedCompleter replies with responses in call order and records prompts.
// A reply of type error is returned as the call's error.
type scriptedCompleter struct {
	mu      sync.Mutex
	replies []any
	prompts []string
}

func newScripted(replies ...any) *scriptedCompleter {
	return &scriptedCompleter{replies: replies}
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := len(s.prompts)
	s.prompts = append(s.prompts, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if idx >= len(s.replies) {
		return "", fmt.Errorf("unexpected call %d", idx+1)
	}
	switch r := s.replies[idx].(type) {
	case error:
		return "", r
	case string:
		return r, nil
	}
	return "", fmt.Errorf("bad scripted reply %T", s.replies[idx])
}

func (s *scriptedCompleter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}
