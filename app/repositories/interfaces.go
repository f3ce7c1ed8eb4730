package repositories

import "blogfront/app/models"

// SettingsRepository persists per-browser settings, keyed by client id.
type SettingsRepository interface {
	GetBaseURL(clientID string) (string, error)
	SaveBaseURL(clientID, baseURL string) error
}

// SnapshotRepository keeps the serialized posts of a browser's latest render.
type SnapshotRepository interface {
	ReplaceAll(clientID string, posts []*models.Post) error
	Get(clientID string, postID int) (*models.Post, error)
}
