package service

import (
	"blogfront/app/config"

	"github.com/dgraph-io/badger/v4"
)

// Database path - variable to allow testing with different paths
var dbPath = "data/badger"

// Configure points the store commands at the configured data directory.
func Configure(cfg *config.Config) {
	if cfg != nil && cfg.DataDir != "" {
		dbPath = cfg.DataDir
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING)
	return badger.Open(opts)
}
