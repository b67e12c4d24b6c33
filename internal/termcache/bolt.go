package termcache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bolt persists term ids across restarts, one bucket per taxonomy.
type Bolt struct {
	db *bolt.DB
}

var _ Cache = (*Bolt)(nil)

// OpenBolt opens (or creates) the cache file at path.
func OpenBolt(path string) (*Bolt, error) {
	if path == "" {
		return nil, errors.New("termcache: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("termcache: create dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("termcache: open %s: %w", path, err)
	}
	return &Bolt{db: db}, nil
}

// Close releases the database file.
func (b *Bolt) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns a cached id; read errors count as a miss.
func (b *Bolt) Get(taxonomy, name string) (int, bool) {
	var id int
	_ = b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(taxonomy))
		if bucket == nil {
			return nil
		}
		v := bucket.Get([]byte(key(name)))
		if len(v) != 8 {
			return nil
		}
		id = int(binary.BigEndian.Uint64(v))
		return nil
	})
	return id, id > 0
}

// Put stores an id; non-positive ids are ignored.
func (b *Bolt) Put(taxonomy, name string, id int) error {
	if id <= 0 {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(taxonomy))
		if err != nil {
			return err
		}
		v := make([]byte, 8)
		binary.BigEndian.PutUint64(v, uint64(id))
		return bucket.Put([]byte(key(name)), v)
	})
}
