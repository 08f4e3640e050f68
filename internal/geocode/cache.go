// ABOUTME: BadgerDB-backed cache for geocoding query results
// ABOUTME: Entries expire after a TTL so stale addresses get re-resolved

package geocode

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v3"
)

// CacheTTL is how long a cached geocoding result stays valid.
const CacheTTL = 30 * 24 * time.Hour

// Cache stores query results keyed by the query string.
type Cache struct {
	db *badger.DB
}

// OpenCache opens (or creates) the cache at the given directory.
func OpenCache(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open geocode cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get returns the cached results for a query, if present and unexpired.
func (c *Cache) Get(query string) ([]Result, bool) {
	var results []Result
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(query))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &results)
		})
	})
	if err != nil {
		return nil, false
	}
	return results, true
}

// Put stores the results for a query with the default TTL.
func (c *Cache) Put(query string, results []Result) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(query), data).WithTTL(CacheTTL)
		return txn.SetEntry(entry)
	})
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	if errors.Is(err, badger.ErrDBClosed) {
		return nil
	}
	return err
}
