package mocks

import (
	"context"
	"sync"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/core"
)

type MockUserStore struct {
	mu     sync.RWMutex
	clock  *clock
	nextID int64
	Users  map[int64]*auth.User
}

func NewMockUserStore(c *clock) *MockUserStore {
	return &MockUserStore{clock: c, Users: make(map[int64]*auth.User)}
}

func cloneUser(u *auth.User) *auth.User {
	clone := *u
	clone.Password = append([]byte(nil), u.Password...)
	return &clone
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return core.ErrDuplicateEmail
		}
		if existing.Username == user.Username {
			return core.ErrDuplicateUsername
		}
	}

	m.nextID++
	user.ID = m.nextID
	m.Users[user.ID] = cloneUser(user)
	return nil
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.Users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, core.NoRecordFound
}

func (m *MockUserStore) find(match func(*auth.User) bool) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.Users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, core.NoRecordFound
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return m.find(func(u *auth.User) bool { return u.Email == email })
}

func (m *MockUserStore) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	return m.find(func(u *auth.User) bool { return u.Username == username })
}

func (m *MockUserStore) GetUsersByIDList(ctx context.Context, ids []int64) ([]*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]*auth.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.Users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (m *MockUserStore) UpdateUser(ctx context.Context, user *auth.User) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Users[user.ID]; !ok {
		return nil, core.NoRecordFound
	}
	for id, existing := range m.Users {
		if id == user.ID {
			continue
		}
		if existing.Email == user.Email {
			return nil, core.ErrDuplicateEmail
		}
		if existing.Username == user.Username {
			return nil, core.ErrDuplicateUsername
		}
	}

	m.Users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}
