// Package storage contains storage-agnostic contracts for loading cleaned
// tables into a database sink. Concrete backends live in subpackages and
// register themselves with the factory at init time.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Config selects and configures a sink backend.
type Config struct {
	// Kind selects the registered backend ("postgres", "sqlite").
	Kind string
	// DSN is the backend connection string.
	DSN string
	// Table is the destination table name, possibly schema-qualified.
	Table string
	// AutoCreateTable creates the destination table before loading.
	AutoCreateTable bool
}

// Repository is the minimal contract a sink backend must satisfy.
type Repository interface {
	// CopyFrom inserts rows (aligned to the columns order) into the
	// configured table and returns the number of rows inserted.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	// Exec runs an arbitrary statement, typically DDL.
	Exec(ctx context.Context, sql string) error
	// Close releases the underlying connection resources.
	Close()
}

// Factory opens a Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a backend kind. It is
// called from backend packages' init() functions.
func Register(kind string, fn Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind. Importing the storage/all package
// makes every built-in backend available.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	fn, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no storage backend registered for kind=%q", cfg.Kind)
	}
	return fn(ctx, cfg)
}
