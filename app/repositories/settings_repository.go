package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSettingsRepository implements SettingsRepository using BadgerDB
type BadgerSettingsRepository struct {
	db *badger.DB
}

// NewBadgerSettingsRepository creates a new BadgerSettingsRepository
func NewBadgerSettingsRepository(db *badger.DB) *BadgerSettingsRepository {
	return &BadgerSettingsRepository{db: db}
}

// GetBaseURL returns the stored base URL for a browser, ErrNotFound if none.
func (r *BadgerSettingsRepository) GetBaseURL(clientID string) (string, error) {
	var baseURL string
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(settingsKey(clientID, BaseURLKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			baseURL = string(val)
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return baseURL, nil
}

// SaveBaseURL stores the base URL for a browser. An empty URL removes it.
func (r *BadgerSettingsRepository) SaveBaseURL(clientID, baseURL string) error {
	if clientID == "" {
		return fmt.Errorf("client id is required")
	}
	return r.db.Update(func(txn *badger.Txn) error {
		key := settingsKey(clientID, BaseURLKey)
		if baseURL == "" {
			return txn.Delete(key)
		}
		return txn.Set(key, []byte(baseURL))
	})
}

// ListBaseURLs returns every stored base URL keyed by client id.
func (r *BadgerSettingsRepository) ListBaseURLs() (map[string]string, error) {
	urls := make(map[string]string)
	suffix := ":" + BaseURLKey
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(SettingsKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())
			if !strings.HasSuffix(key, suffix) {
				continue
			}
			clientID := strings.TrimSuffix(strings.TrimPrefix(key, SettingsKeyPrefix), suffix)
			err := item.Value(func(val []byte) error {
				urls[clientID] = string(val)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}
