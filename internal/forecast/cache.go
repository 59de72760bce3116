// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/kitchencast/internal/forecast/boost"
)

// PredictionCache stores model-branch predictions across forecast runs.
// Keys embed a fingerprint of everything the prediction depends on, so a
// stale hit is impossible; InvalidateItem only reclaims space early.
type PredictionCache interface {
	Get(key string) (float64, bool, error)
	Put(key string, predicted float64) error
	InvalidateItem(item string) (int, error)
}

const cachePrefix = "pred/"

// itemPrefix escapes the item name so "a/b" cannot share a prefix with "a".
func itemPrefix(item string) string {
	return cachePrefix + url.PathEscape(item) + "/"
}

// CacheKey fingerprints one model-branch prediction: the item's series,
// the calendar entries of every row day and of the target, the target day,
// and the booster hyperparameters.
func CacheKey(s DailySeries, cal Calendar, target time.Time, cfg boost.Config) string {
	h := sha256.New()
	var buf [8]byte

	putFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	putInt := func(i int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		h.Write(buf[:])
	}
	putEntry := func(e CalendarEntry) {
		putFloat(e.Impact)
		putFloat(boolFeature(e.Holiday))
		putFloat(boolFeature(e.Festival))
		putFloat(boolFeature(e.Exam))
		putFloat(boolFeature(e.SpecialMenu))
	}

	h.Write([]byte(s.ItemName))
	putInt(s.Start.Unix())
	putInt(int64(len(s.Quantities)))
	for i, q := range s.Quantities {
		putFloat(q)
		putEntry(cal.Lookup(s.DayAt(i)))
	}
	putInt(target.Unix())
	putEntry(cal.Lookup(target))

	putInt(int64(cfg.Rounds))
	putFloat(cfg.LearningRate)
	putInt(int64(cfg.MaxLeaves))
	putFloat(cfg.RowSubsample)
	putFloat(cfg.ColSubsample)
	putFloat(cfg.Lambda)
	putInt(int64(cfg.MinChildSamples))
	putInt(cfg.Seed)

	return itemPrefix(s.ItemName) + hex.EncodeToString(h.Sum(nil))
}

type cachedPrediction struct {
	PredictedQty float64   `json:"predicted_qty"`
	StoredAt     time.Time `json:"stored_at"`
}

// BadgerCache is a PredictionCache on BadgerDB. Entries expire after ttl.
type BadgerCache struct {
	db       *badger.DB
	ttl      time.Duration
	inMemory bool
}

// OpenBadgerCache opens a cache at path, or an in-memory cache when path is empty.
func OpenBadgerCache(path string, ttl time.Duration) (*BadgerCache, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("prediction cache ttl must be positive, got %v", ttl)
	}
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open prediction cache: %w", err)
	}
	return &BadgerCache{db: db, ttl: ttl, inMemory: path == ""}, nil
}

// Get returns the cached prediction for key.
func (c *BadgerCache) Get(key string) (float64, bool, error) {
	var cp cachedPrediction
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cp)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read prediction cache: %w", err)
	}
	return cp.PredictedQty, true, nil
}

// Put stores a prediction under key with the cache TTL.
func (c *BadgerCache) Put(key string, predicted float64) error {
	data, err := json.Marshal(cachedPrediction{PredictedQty: predicted, StoredAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode cached prediction: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(c.ttl))
	})
}

// InvalidateItem deletes every cached prediction for item and returns how
// many were removed.
func (c *BadgerCache) InvalidateItem(item string) (int, error) {
	prefix := []byte(itemPrefix(item))
	var keys [][]byte
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan prediction cache: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	wb := c.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return 0, fmt.Errorf("delete cached prediction: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush cache deletes: %w", err)
	}
	return len(keys), nil
}

// RunGC reclaims value log space. In-memory caches have nothing to reclaim.
func (c *BadgerCache) RunGC() error {
	if c.inMemory {
		return nil
	}
	err := c.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close closes the underlying database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}
