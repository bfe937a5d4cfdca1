package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/siahsang/conduit/models"
)

type MockFollowStore struct {
	mu    sync.RWMutex
	Edges map[models.Follow]struct{}
}

func NewMockFollowStore() *MockFollowStore {
	return &MockFollowStore{Edges: make(map[models.Follow]struct{})}
}

func (m *MockFollowStore) Follow(ctx context.Context, followerID, followingID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Edges[models.Follow{FollowerID: followerID, FollowingID: followingID}] = struct{}{}
	return nil
}

func (m *MockFollowStore) Unfollow(ctx context.Context, followerID, followingID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Edges, models.Follow{FollowerID: followerID, FollowingID: followingID})
	return nil
}

func (m *MockFollowStore) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.Edges[models.Follow{FollowerID: followerID, FollowingID: followingID}]
	return ok, nil
}

func (m *MockFollowStore) FollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []int64
	for edge := range m.Edges {
		if edge.FollowerID == followerID {
			ids = append(ids, edge.FollowingID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MockFollowStore) FollowersCount(ctx context.Context, userIDs []int64) (map[int64]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = struct{}{}
	}

	counts := make(map[int64]int64, len(userIDs))
	for edge := range m.Edges {
		if _, ok := wanted[edge.FollowingID]; ok {
			counts[edge.FollowingID]++
		}
	}
	return counts, nil
}
