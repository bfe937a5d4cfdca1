package mocks

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/models"
)

type favoriteEdge struct {
	UserID    int64
	ArticleID int64
}

type MockArticleStore struct {
	mu        sync.RWMutex
	users     *MockUserStore
	comments  *MockCommentStore
	clock     *clock
	nextID    int64
	Articles  map[int64]*models.Article
	Favorites map[favoriteEdge]struct{}

	// FailNextCreates makes that many CreateArticle/UpdateArticle calls fail with ErrDuplicatedSlug.
	FailNextCreates int
	ListCalls       int
}

func NewMockArticleStore(users *MockUserStore, c *clock) *MockArticleStore {
	return &MockArticleStore{
		users:     users,
		clock:     c,
		Articles:  make(map[int64]*models.Article),
		Favorites: make(map[favoriteEdge]struct{}),
	}
}

func cloneArticle(a *models.Article) *models.Article {
	clone := *a
	clone.TagList = append([]string{}, a.TagList...)
	clone.Author = nil
	clone.Favorited = false
	return &clone
}

func (m *MockArticleStore) slugTaken(slug string, exceptID int64) bool {
	for id, a := range m.Articles {
		if id != exceptID && a.Slug == slug {
			return true
		}
	}
	return false
}

func (m *MockArticleStore) CreateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNextCreates > 0 {
		m.FailNextCreates--
		return nil, core.ErrDuplicatedSlug
	}
	if m.slugTaken(article.Slug, 0) {
		return nil, core.ErrDuplicatedSlug
	}

	m.nextID++
	stored := cloneArticle(article)
	stored.ID = m.nextID
	stored.FavoritesCount = 0
	stored.CreatedAt = m.clock.now()
	stored.UpdatedAt = stored.CreatedAt
	m.Articles[stored.ID] = stored
	return cloneArticle(stored), nil
}

func (m *MockArticleStore) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.Articles {
		if a.Slug == slug {
			return cloneArticle(a), nil
		}
	}
	return nil, core.NoRecordFound
}

// UpdateArticle writes the editable columns only; favoritesCount stays as stored.
func (m *MockArticleStore) UpdateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.Articles[article.ID]
	if !ok {
		return nil, core.NoRecordFound
	}
	if m.FailNextCreates > 0 {
		m.FailNextCreates--
		return nil, core.ErrDuplicatedSlug
	}
	if m.slugTaken(article.Slug, article.ID) {
		return nil, core.ErrDuplicatedSlug
	}

	stored.Slug = article.Slug
	stored.Title = article.Title
	stored.Description = article.Description
	stored.Body = article.Body
	stored.TagList = append([]string{}, article.TagList...)
	stored.UpdatedAt = m.clock.now()
	return cloneArticle(stored), nil
}

func (m *MockArticleStore) DeleteArticle(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Articles[id]; !ok {
		return core.NoRecordFound
	}
	delete(m.Articles, id)
	for edge := range m.Favorites {
		if edge.ArticleID == id {
			delete(m.Favorites, edge)
		}
	}
	if m.comments != nil {
		m.comments.deleteByArticle(id)
	}
	return nil
}

func (m *MockArticleStore) ListArticles(ctx context.Context, f core.ArticleFilter) ([]*models.Article, int64, error) {
	var authorID int64 = -1
	if f.AuthorUsername != "" {
		author, err := m.users.GetUserByUsername(ctx, f.AuthorUsername)
		if err != nil {
			return []*models.Article{}, 0, nil
		}
		authorID = author.ID
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++

	var matched []*models.Article
	for _, a := range m.Articles {
		if f.AuthorIDs != nil && !slices.Contains(f.AuthorIDs, a.AuthorID) {
			continue
		}
		if authorID != -1 && a.AuthorID != authorID {
			continue
		}
		if f.IDs != nil && !slices.Contains(f.IDs, a.ID) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.Search)) {
			continue
		}
		if !containsAll(a.TagList, f.Tags) {
			continue
		}
		matched = append(matched, a)
	}

	asc := f.Page.OrderDirection() == filter.SortAsc
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt) == asc
		}
		return (a.ID < b.ID) == asc
	})

	page := filter.Page(matched, f.Page)
	result := make([]*models.Article, len(page))
	for i, a := range page {
		result[i] = cloneArticle(a)
	}
	return result, int64(len(matched)), nil
}

func containsAll(tagList, wanted []string) bool {
	for _, tag := range wanted {
		if !slices.Contains(tagList, tag) {
			return false
		}
	}
	return true
}

func (m *MockArticleStore) AddFavorite(ctx context.Context, userID, articleID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	edge := favoriteEdge{UserID: userID, ArticleID: articleID}
	if _, ok := m.Favorites[edge]; ok {
		return false, nil
	}
	m.Favorites[edge] = struct{}{}
	return true, nil
}

func (m *MockArticleStore) RemoveFavorite(ctx context.Context, userID, articleID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	edge := favoriteEdge{UserID: userID, ArticleID: articleID}
	if _, ok := m.Favorites[edge]; !ok {
		return false, nil
	}
	delete(m.Favorites, edge)
	return true, nil
}

func (m *MockArticleStore) AdjustFavoritesCount(ctx context.Context, articleID, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[articleID]
	if !ok {
		return core.NoRecordFound
	}
	a.FavoritesCount += delta
	return nil
}

func (m *MockArticleStore) FavoriteArticleIDs(ctx context.Context, userID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []int64
	for edge := range m.Favorites {
		if edge.UserID == userID {
			ids = append(ids, edge.ArticleID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// FavoriteEdgeCount counts the favorite edges that reference articleID.
func (m *MockArticleStore) FavoriteEdgeCount(articleID int64) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for edge := range m.Favorites {
		if edge.ArticleID == articleID {
			n++
		}
	}
	return n
}

func (m *MockArticleStore) GetTags(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	tags := []string{}
	for _, a := range m.Articles {
		for _, tag := range a.TagList {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}
