// Package migration provides a batch-tracked schema migration runner.
//
// Migrations live in database/migrations, register themselves from
// init() with a timestamp-prefixed name, and implement Up/Down:
//
//	func init() {
//	    migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
//	}
//
// The CLI drives the runner:
//
//	qellum migrate             // apply all pending
//	qellum migrate:rollback    // undo the last batch
//	qellum migrate:status      // list applied and pending
package migration

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/risewynn/qellum/pkg/logger"
	"gorm.io/gorm"
)

// Migration applies or reverses one schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// appliedMigration tracks one applied migration. Migrations applied by
// the same `qellum migrate` invocation share a batch number, so a
// rollback undoes exactly one deploy's worth of changes.
type appliedMigration struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (appliedMigration) TableName() string { return "qellum_migrations" }

type namedMigration struct {
	name string
	m    Migration
}

var registry []namedMigration

// Register adds a migration under a timestamp-prefixed name, e.g.
// "20260301000000_create_users_table". Names sort lexicographically,
// which fixes the application order.
func Register(name string, m Migration) {
	registry = append(registry, namedMigration{name: name, m: m})
}

// Runner executes and tracks migrations against one database.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&appliedMigration{})
}

// Pending returns registered migrations not yet applied, in name order.
func (r *Runner) Pending() ([]namedMigration, error) {
	applied, err := r.applied()
	if err != nil {
		return nil, err
	}

	var pending []namedMigration
	for _, nm := range registry {
		if _, ok := applied[nm.name]; !ok {
			pending = append(pending, nm)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].name < pending[j].name })
	return pending, nil
}

// Run applies every pending migration as a single batch.
func (r *Runner) Run() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.Pending()
	if err != nil {
		return fmt.Errorf("migration: pending: %w", err)
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to migrate.")
		return nil
	}

	batch := r.lastBatch() + 1
	for _, nm := range pending {
		logger.Info("migration: applying", "name", nm.name, "batch", batch)
		fmt.Printf("  migrating %s... ", nm.name)

		if err := nm.m.Up(r.db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("migration: %s up: %w", nm.name, err)
		}
		if err := r.db.Create(&appliedMigration{Name: nm.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", nm.name, err)
		}
		fmt.Println("done")
	}

	logger.Info("migration: batch applied", "count", len(pending), "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	batch := r.lastBatch()
	if batch == 0 {
		fmt.Println("Nothing to roll back.")
		return nil
	}

	var records []appliedMigration
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, nm := range registry {
		byName[nm.name] = nm.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s, not registered", rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		fmt.Printf("  rolling back %s... ", rec.Name)

		if err := m.Down(r.db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return err
		}
		fmt.Println("done")
	}
	return nil
}

// Status prints every registered migration and whether it has run.
func (r *Runner) Status() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	applied, err := r.applied()
	if err != nil {
		return err
	}

	fmt.Printf("%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Println(strings.Repeat("-", 80))
	for _, nm := range registry {
		if rec, ok := applied[nm.name]; ok {
			fmt.Printf("%-60s  %-8s  %d\n", nm.name, "Ran", rec.Batch)
		} else {
			fmt.Printf("%-60s  %-8s  -\n", nm.name, "Pending")
		}
	}
	return nil
}

func (r *Runner) applied() (map[string]appliedMigration, error) {
	var records []appliedMigration
	if err := r.db.Find(&records).Error; err != nil {
		return nil, err
	}
	out := make(map[string]appliedMigration, len(records))
	for _, rec := range records {
		out[rec.Name] = rec
	}
	return out, nil
}

func (r *Runner) lastBatch() int {
	var row struct{ Max int }
	r.db.Model(&appliedMigration{}).Select("MAX(batch) as max").Scan(&row)
	return row.Max
}
