package storage

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"chat-session/domain"
)

const statusPrefix = "user:status:"

// StatusRepository records online/last-seen state. Writes are best effort
// by contract: callers log failures and keep going.
type StatusRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewStatusRepository(db *badger.DB, log *slog.Logger) *StatusRepository {
	return &StatusRepository{db: db, log: log}
}

// UpsertOnline marks an identity online and refreshes its last-seen time.
// Idempotent: repeated upserts only move the timestamp forward.
func (r *StatusRepository) UpsertOnline(identity domain.Identity, at time.Time) error {
	return r.put(domain.UserStatus{
		UserID:   identity.UserID,
		Name:     identity.Name,
		Email:    identity.Email,
		IsOnline: true,
		LastSeen: at.UTC(),
	})
}

// MarkOffline flips an existing record offline, keeping its profile fields.
// Unknown users are a no-op: there is nothing to mark.
func (r *StatusRepository) MarkOffline(userID string, at time.Time) error {
	var current domain.UserStatus
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(statusPrefix + userID))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &current)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	current.IsOnline = false
	current.LastSeen = at.UTC()
	return r.put(current)
}

// ListOnline returns all records currently marked online, most recently
// seen first.
func (r *StatusRepository) ListOnline() ([]domain.UserStatus, error) {
	var online []domain.UserStatus
	prefix := []byte(statusPrefix)

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var status domain.UserStatus
				if err := json.Unmarshal(v, &status); err != nil {
					return err
				}
				if status.IsOnline {
					online = append(online, status)
				}
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

	sort.Slice(online, func(i, j int) bool {
		return online[i].LastSeen.After(online[j].LastSeen)
	})
	return online, nil
}

func (r *StatusRepository) put(status domain.UserStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(statusPrefix+status.UserID), data)
	})
}
