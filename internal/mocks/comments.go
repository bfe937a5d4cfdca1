package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/models"
)

type MockCommentStore struct {
	mu       sync.RWMutex
	clock    *clock
	nextID   int64
	Comments map[int64]*models.Comment
}

func NewMockCommentStore(c *clock) *MockCommentStore {
	return &MockCommentStore{clock: c, Comments: make(map[int64]*models.Comment)}
}

func cloneComment(c *models.Comment) *models.Comment {
	clone := *c
	clone.Author = nil
	return &clone
}

func (m *MockCommentStore) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	stored := cloneComment(comment)
	stored.ID = m.nextID
	stored.CreatedAt = m.clock.now()
	stored.UpdatedAt = stored.CreatedAt
	m.Comments[stored.ID] = stored
	return cloneComment(stored), nil
}

func (m *MockCommentStore) GetCommentsByArticleID(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var comments []*models.Comment
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			comments = append(comments, cloneComment(c))
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (m *MockCommentStore) GetComment(ctx context.Context, articleID, commentID int64) (*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.Comments[commentID]
	if !ok || c.ArticleID != articleID {
		return nil, core.NoRecordFound
	}
	return cloneComment(c), nil
}

func (m *MockCommentStore) DeleteComment(ctx context.Context, commentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Comments[commentID]; !ok {
		return core.NoRecordFound
	}
	delete(m.Comments, commentID)
	return nil
}

func (m *MockCommentStore) deleteByArticle(articleID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.Comments {
		if c.ArticleID == articleID {
			delete(m.Comments, id)
		}
	}
}
