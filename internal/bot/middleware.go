package bot

import (
	"context"
	"sync"
	"time"

	"github.com/sbenjam1n/docbot/internal/logger"
	"github.com/sbenjam1n/docbot/internal/session"
	"github.com/sbenjam1n/docbot/internal/view"
)

// HandlerFunc handles one update.
type HandlerFunc func(ctx context.Context, u Update) ([]Reply, error)

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain wraps h so that the first middleware runs outermost.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// DropNoop swallows presses of non-interactive buttons such as the page
// indicator.
func DropNoop() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, u Update) ([]Reply, error) {
			if u.Data == view.KeyNoop {
				return nil, nil
			}
			return next(ctx, u)
		}
	}
}

// Logging logs every update with its outcome and duration.
func Logging(log *logger.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, u Update) ([]Reply, error) {
			start := time.Now()
			replies, err := next(ctx, u)
			kv := []interface{}{
				"chat", u.ChatID,
				"user", u.UserID,
				"kind", updateKind(u),
				"replies", len(replies),
				"duration", time.Since(start),
			}
			if err != nil {
				log.Error("update failed", append(kv, "error", err)...)
			} else {
				log.Debug("update handled", kv...)
			}
			return replies, err
		}
	}
}

func updateKind(u Update) string {
	switch {
	case u.IsCallback():
		return "callback"
	case u.IsCommand():
		return "command"
	}
	return "text"
}

// PerUser serializes updates of the same user in the same chat, so that the
// load-mutate-store round trip of a session never interleaves.
func PerUser() Middleware {
	locks := newKeyedMutex()
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, u Update) ([]Reply, error) {
			unlock := locks.lock(u.Key())
			defer unlock()
			return next(ctx, u)
		}
	}
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[session.Key]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[session.Key]*refMutex)}
}

func (k *keyedMutex) lock(key session.Key) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
