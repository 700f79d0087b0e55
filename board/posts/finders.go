package post

import (
	"context"
	"errors"
	"sync"

	"github.com/artworked/core/core/store"
)

// ErrPostNotFound err.
var ErrPostNotFound = errors.New("post has not been found by given criteria")

func FindId(ctx context.Context, d deps, id string) (post Post, err error) {
	err = d.Store().C("posts").FindId(ctx, id, &post)
	if err == store.ErrNotFound {
		err = ErrPostNotFound
	}
	return
}

// Feed lists every post, newest first.
func Feed(ctx context.Context, d deps) (list Posts, err error) {
	list = Posts{}
	err = d.Store().C("posts").Find(ctx, store.All().OrderBy("-createdAt"), &list)
	if err != nil {
		log.Errorf("Could not load the feed: %v", err)
		return Posts{}, err
	}
	return
}

// ByUser lists the posts of one user, newest first.
func ByUser(ctx context.Context, d deps, userID string) (list Posts, err error) {
	list = Posts{}
	err = d.Store().C("posts").Find(ctx, store.Where("userId", userID).OrderBy("-createdAt"), &list)
	return
}

// Loader holds the state of a feed load.
type Loader struct {
	mu      sync.RWMutex
	data    Posts
	loading bool
	err     error
}

// Load fetches the feed once. A result arriving after ctx is done is
// dropped and the previous data kept.
func (l *Loader) Load(ctx context.Context, d deps) error {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	list, err := Feed(ctx, d)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if ctx.Err() != nil {
		return ctx.Err()
	}
	l.data, l.err = list, err
	return err
}

func (l *Loader) Data() Posts {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data
}

func (l *Loader) IsLoading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}
