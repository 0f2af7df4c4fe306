package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"chat-session/auth"
	"chat-session/domain"
	apperrors "chat-session/errors"
)

const (
	accountPrefix = "user:account:"
	emailPrefix   = "user:email:"
)

// account is the stored form of one directory entry.
type account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// UserRepository persists directory accounts in BadgerDB. The messaging
// core only ever reads identities out of it; it never owns the data.
type UserRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewUserRepository(db *badger.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

// Register stores a new account with an argon2id password hash. The email
// is indexed for login; registering an indexed email fails.
func (r *UserRepository) Register(identity domain.Identity, password string) error {
	if identity.UserID == "" {
		identity.UserID = uuid.NewString()
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	stored := account{
		ID:           identity.UserID,
		Name:         identity.Name,
		Email:        identity.Email,
		PasswordHash: hash,
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		emailKey := []byte(emailPrefix + identity.Email)
		if _, err := txn.Get(emailKey); err == nil {
			return apperrors.ErrUserAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set([]byte(accountPrefix+identity.UserID), data); err != nil {
			return err
		}
		return txn.Set(emailKey, []byte(identity.UserID))
	})
}

// Authenticate verifies a password against the stored hash and returns the
// identity. Unknown emails and bad passwords are indistinguishable to the
// caller.
func (r *UserRepository) Authenticate(email, password string) (domain.Identity, error) {
	var stored account
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(emailPrefix + email))
		if err != nil {
			return err
		}
		var userID string
		if err := item.Value(func(v []byte) error {
			userID = string(v)
			return nil
		}); err != nil {
			return err
		}
		item, err = txn.Get([]byte(accountPrefix + userID))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &stored)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Identity{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("directory lookup: %w", err)
	}

	ok, err := auth.ComparePassword(password, stored.PasswordHash)
	if err != nil {
		return domain.Identity{}, err
	}
	if !ok {
		return domain.Identity{}, apperrors.ErrInvalidCredentials
	}
	return domain.Identity{UserID: stored.ID, Name: stored.Name, Email: stored.Email}, nil
}

// Get returns the identity stored under userID.
func (r *UserRepository) Get(userID string) (domain.Identity, error) {
	var stored account
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(accountPrefix + userID))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &stored)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Identity{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{UserID: stored.ID, Name: stored.Name, Email: stored.Email}, nil
}
