package mock

import (
	"sync"

	"blogfront/app/models"
	"blogfront/app/repositories"
)

type SettingsRepository struct {
	baseURLs map[string]string
	mutex    sync.RWMutex
}

type SnapshotRepository struct {
	snapshots map[string]map[int]*models.Post
	mutex     sync.RWMutex
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{baseURLs: make(map[string]string)}
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{snapshots: make(map[string]map[int]*models.Post)}
}

// SettingsRepository implementation
func (m *SettingsRepository) GetBaseURL(clientID string) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	baseURL, exists := m.baseURLs[clientID]
	if !exists {
		return "", repositories.ErrNotFound
	}
	return baseURL, nil
}

func (m *SettingsRepository) SaveBaseURL(clientID, baseURL string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if baseURL == "" {
		delete(m.baseURLs, clientID)
		return nil
	}
	m.baseURLs[clientID] = baseURL
	return nil
}

// SnapshotRepository implementation
func (m *SnapshotRepository) ReplaceAll(clientID string, posts []*models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	byID := make(map[int]*models.Post, len(posts))
	for _, p := range posts {
		cp := *p
		byID[p.ID.Int()] = &cp
	}
	m.snapshots[clientID] = byID
	return nil
}

func (m *SnapshotRepository) Get(clientID string, postID int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.snapshots[clientID][postID]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}
