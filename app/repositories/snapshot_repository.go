package repositories

import (
	"errors"
	"fmt"
	"time"

	"blogfront/app/models"

	"github.com/dgraph-io/badger/v4"
)

// SnapshotTTL bounds how long the snapshots of an abandoned browser are kept.
const SnapshotTTL = 24 * time.Hour

// BadgerSnapshotRepository implements SnapshotRepository using BadgerDB
type BadgerSnapshotRepository struct {
	db *badger.DB
}

// NewBadgerSnapshotRepository creates a new BadgerSnapshotRepository
func NewBadgerSnapshotRepository(db *badger.DB) *BadgerSnapshotRepository {
	return &BadgerSnapshotRepository{db: db}
}

// ReplaceAll drops the browser's previous snapshots and stores one per post.
func (r *BadgerSnapshotRepository) ReplaceAll(clientID string, posts []*models.Post) error {
	if clientID == "" {
		return fmt.Errorf("client id is required")
	}

	var stale [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := snapshotPrefix(clientID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}

	wb := r.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range stale {
		if err := wb.Delete(key); err != nil {
			return err
		}
	}
	for _, post := range posts {
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		entry := badger.NewEntry(snapshotKey(clientID, post.ID.Int()), data).WithTTL(SnapshotTTL)
		if err := wb.SetEntry(entry); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Get returns the snapshot of one post from the browser's latest render.
func (r *BadgerSnapshotRepository) Get(clientID string, postID int) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(clientID, postID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}
