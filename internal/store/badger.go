package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/i474232898/weather-bot/internal/dialogue"
)

// BadgerStore keeps sessions in an embedded badger database so that a
// dialogue survives a restart without an external service.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerStore opens (or creates) the database in dir. An empty dir opens
// an in-memory database.
func OpenBadgerStore(dir string, ttl time.Duration) (*BadgerStore, error) {
	const op = "store.OpenBadgerStore"

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &BadgerStore{db: db, ttl: ttl}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) Get(ctx context.Context, userID int64) (dialogue.Session, error) {
	const op = "store.BadgerStore.Get"

	if err := ctx.Err(); err != nil {
		return dialogue.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	var session dialogue.Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return dialogue.Session{}, nil
	}
	if err != nil {
		return dialogue.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

func (s *BadgerStore) Set(ctx context.Context, userID int64, session dialogue.Session) error {
	const op = "store.BadgerStore.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(badgerKey(userID), raw)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *BadgerStore) Clear(ctx context.Context, userID int64) error {
	const op = "store.BadgerStore.Clear"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(userID))
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CollectGarbage runs one value log GC pass and reports whether a file was
// rewritten. Expired sessions are only reclaimed on disk by this pass.
func (s *BadgerStore) CollectGarbage() (int, error) {
	const op = "store.BadgerStore.CollectGarbage"

	err := s.db.RunValueLogGC(0.5)
	switch {
	case err == nil:
		return 1, nil
	case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
		return 0, nil
	default:
		return 0, fmt.Errorf("%s: %w", op, err)
	}
}

func badgerKey(userID int64) []byte {
	return []byte(keyPrefix + strconv.FormatInt(userID, 10))
}
