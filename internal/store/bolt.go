package store

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// walletBucket is the single bucket holding vault blob and metadata.
var walletBucket = []byte("wallet")

// BoltStore is the durable store backing the encrypted vault. A single
// file, a single bucket.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database file and ensures the bucket
// exists.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(walletBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(walletBucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BoltStore) Put(_ context.Context, key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(walletBucket).Put([]byte(key), value)
	})
}

func (s *BoltStore) Delete(_ context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(walletBucket).Delete([]byte(key))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
