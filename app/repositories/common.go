package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrNotFound = errors.New("record not found")
)

const (
	// Key prefixes for the different record types
	SettingsKeyPrefix = "settings:"
	SnapshotKeyPrefix = "snapshot:"

	// BaseURLKey names the stored API base URL, as the browser page calls it.
	BaseURLKey = "apiBaseUrl"
)

func settingsKey(clientID, name string) []byte {
	return []byte(SettingsKeyPrefix + clientID + ":" + name)
}

func snapshotPrefix(clientID string) []byte {
	return []byte(SnapshotKeyPrefix + clientID + ":")
}

func snapshotKey(clientID string, postID int) []byte {
	return append(snapshotPrefix(clientID), strconv.Itoa(postID)...)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
