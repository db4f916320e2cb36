// Package seeders holds the database seed functions, run via the CLI:
//
//	qellum seed
//
// Seeders register themselves from init() and must be idempotent, so
// `qellum seed` is safe to re-run against an existing database.
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc seeds one slice of reference data.
type SeederFunc func(db *gorm.DB) error

type entry struct {
	name string
	fn   SeederFunc
}

var (
	mu       sync.Mutex
	registry []entry
)

// Register adds a named seeder. Call from init() in the seeder file.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	registry = append(registry, entry{name: name, fn: fn})
	mu.Unlock()
}

// RunAll executes every registered seeder in registration order and
// stops at the first failure.
func RunAll(db *gorm.DB) error {
	mu.Lock()
	entries := make([]entry, len(registry))
	copy(entries, registry)
	mu.Unlock()

	if len(entries) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("  seeding %s... ", e.name)
		if err := e.fn(db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Println("done")
	}
	return nil
}
