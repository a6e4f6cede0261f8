package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.etcd.io/bbolt"

	"codeberg.org/snonux/lingoanki/internal/vocab"
)

var bucketEntries = []byte("entries")

// BoltStore keeps the entry collection in a single bucket. Keys are the
// big-endian position of the entry, so iteration returns entries in the
// order they were written.
type BoltStore struct {
	db   *bbolt.DB
	path string
}

// Open opens (creating if needed) the BoltDB file at path
func Open(ctx context.Context, path string) (*BoltStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEntries)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return &BoltStore{db: db, path: path}, nil
}

// Path returns the database file location
func (s *BoltStore) Path() string {
	return s.path
}

// Close closes the database
func (s *BoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Read returns every stored entry in stored order
func (s *BoltStore) Read(ctx context.Context) ([]vocab.WordEntry, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := make([]vocab.WordEntry, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEntries).ForEach(func(k, v []byte) error {
			var e vocab.WordEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("failed to decode entry %x: %w", k, err)
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return entries, nil
}

// Write replaces the stored collection with entries in one transaction.
// Either every entry is stored or, on error, the previous collection stays.
func (s *BoltStore) Write(ctx context.Context, entries []vocab.WordEntry) error {
	if s.db == nil {
		return ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketEntries); err != nil {
			return fmt.Errorf("failed to clear entries: %w", err)
		}
		b, err := tx.CreateBucket(bucketEntries)
		if err != nil {
			return fmt.Errorf("failed to create entries bucket: %w", err)
		}

		for i, e := range entries {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to encode entry %q: %w", e.Text, err)
			}
			if err := b.Put(positionKey(i), data); err != nil {
				return fmt.Errorf("failed to store entry %q: %w", e.Text, err)
			}
		}
		return nil
	})
}

// Backup writes a consistent copy of the database file to w while the
// store stays open
func (s *BoltStore) Backup(ctx context.Context, w io.Writer) (int64, error) {
	if s.db == nil {
		return 0, ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var n int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		n, err = tx.WriteTo(w)
		return err
	})
	if err != nil {
		return n, fmt.Errorf("failed to back up entries: %w", err)
	}
	return n, nil
}

func positionKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}
