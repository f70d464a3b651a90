package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const DefaultBoltBucket = "slots"

// BoltStorage keeps every slot as one key in a single bucket.
type BoltStorage struct {
	db     *bolt.DB
	bucket []byte
}

func NewBolt(path, bucket string) (*BoltStorage, error) {
	if bucket == "" {
		bucket = DefaultBoltBucket
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &BoltStorage{db: db, bucket: []byte(bucket)}, nil
}

func (s *BoltStorage) Migrate(ctx context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
}

func (s *BoltStorage) Close() error {
	return s.db.Close()
}

func (s *BoltStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("bucket %q not found", s.bucket)
		}

		data := b.Get([]byte(key))
		if data == nil {
			return nil
		}

		// data is only valid inside the transaction
		value = make([]byte, len(data))
		copy(value, data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BoltStorage) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("bucket %q not found", s.bucket)
		}
		return b.Put([]byte(key), value)
	})
}
