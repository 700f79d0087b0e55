package common

import (
	"errors"
	"sync"
)

// ErrDeleteInProgress is returned while another delete of the same resource
// has not finished.
var ErrDeleteInProgress = errors.New("delete already in progress")

// Guard rejects overlapping operations on the same key. It only covers
// this process.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{active: map[string]struct{}{}}
}

// Acquire marks key busy. The returned release must be called when done.
func (g *Guard) Acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return nil, ErrDeleteInProgress
	}
	g.active[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, nil
}
