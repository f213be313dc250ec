// Package calccache remembers evaluated expressions for a limited time so
// repeated requests skip the evaluator.
package calccache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	badger "github.com/dgraph-io/badger/v3"
)

const keyPrefix = "calc:"

type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens a cache stored in dir, or in memory when dir is empty. logger
// receives badger's own log output and may be nil.
func Open(dir string, ttl time.Duration, logger badger.Logger) (*Cache, error) {
	opt := badger.DefaultOptions(dir)
	if dir == "" {
		opt = opt.WithInMemory(true)
	}
	opt = opt.WithLogger(logger)

	db, err := badger.Open(opt)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return &Cache{db: db, ttl: ttl}, nil
}

func key(expression string) []byte {
	return []byte(keyPrefix + expression)
}

// Get returns the cached result for expression, if there is one.
func (c *Cache) Get(expression string) (float64, bool, error) {
	var v float64
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(expression))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("cache entry for %q has %d bytes", expression, len(val))
			}
			v = math.Float64frombits(binary.BigEndian.Uint64(val))
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// Set stores the result for expression. Entries expire after the cache TTL;
// a TTL of zero means they never expire.
func (c *Cache) Set(expression string, result float64) error {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, math.Float64bits(result))
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key(expression), val)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

func (c *Cache) Close() error {
	return c.db.Close()
}
