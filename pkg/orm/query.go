// Package orm is a thin fluent wrapper over GORM. It exists so
// repositories read the same way everywhere and so cross-cutting
// concerns (query metrics, cache read-through, transactions) live in
// one place.
package orm

import (
	"time"

	"github.com/risewynn/qellum/pkg/cache"
	"github.com/risewynn/qellum/pkg/database"
	"github.com/risewynn/qellum/pkg/metrics"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

func DB() *Query {
	return &Query{db: database.DB}
}

// Wrap builds a Query over an existing *gorm.DB, typically the tx
// handle inside Transaction.
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying handle for the rare query the wrapper
// cannot express.
func (q *Query) Gorm() *gorm.DB {
	return q.db
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Count(n *int64) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Count(n).Error
}

func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Save(v).Error
}

// Updates applies a column map to the rows matched so far and reports
// how many rows changed. Callers use the count to detect guarded
// updates that matched nothing.
func (q *Query) Updates(values map[string]interface{}) (int64, error) {
	defer metrics.ObserveDBQuery("update", time.Now())
	res := q.db.Updates(values)
	return res.RowsAffected, res.Error
}

// Transaction runs fn inside a single database transaction. Returning
// an error from fn rolls everything back.
func Transaction(fn func(tx *Query) error) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		return fn(Wrap(tx))
	})
}

// Cache is a read-through: on hit dest is filled from Redis, on miss
// the query runs and the result is cached for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		metrics.CacheHits.WithLabelValues("redis").Inc()
		return nil
	}
	metrics.CacheMisses.WithLabelValues("redis").Inc()

	if err := q.Get(dest); err != nil {
		return err
	}

	cache.Set(key, dest, ttl) //nolint:errcheck
	return nil
}
