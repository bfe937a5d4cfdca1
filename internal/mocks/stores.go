// Package mocks provides in-memory, goroutine-safe implementations of the
// core store interfaces for tests.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/siahsang/conduit/internal/core"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// clock hands out strictly increasing timestamps so ordering by creation time is deterministic.
type clock struct {
	mu   sync.Mutex
	tick int64
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick++
	return epoch.Add(time.Duration(c.tick) * time.Second)
}

type Stores struct {
	Users    *MockUserStore
	Follows  *MockFollowStore
	Articles *MockArticleStore
	Comments *MockCommentStore
	Session  *MockSession
}

func NewStores() *Stores {
	c := &clock{}
	users := NewMockUserStore(c)
	articles := NewMockArticleStore(users, c)
	comments := NewMockCommentStore(c)
	// deleting an article cascades to its comments, as in the schema
	articles.comments = comments
	return &Stores{
		Users:    users,
		Follows:  NewMockFollowStore(),
		Articles: articles,
		Comments: comments,
		Session:  &MockSession{},
	}
}

func (s *Stores) Core() core.Stores {
	return core.Stores{
		Users:    s.Users,
		Follows:  s.Follows,
		Articles: s.Articles,
		Comments: s.Comments,
	}
}

type txKey struct{}

// MockSession serializes transactions with a mutex, which is what row locks
// give the favorite/unfavorite path in PostgreSQL. It does not roll back.
type MockSession struct {
	mu           sync.Mutex
	Transactions int
}

func (s *MockSession) DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transactions++
	return fn(context.WithValue(ctx, txKey{}, true))
}

// InTransaction reports whether ctx was produced by DoTransactionally.
func InTransaction(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}
