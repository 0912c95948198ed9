package datasource

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	sqlstore "github.com/de-tools/revenue-atlas/pkg/store/sql"
)

// Opener opens a database file for the given driver
type Opener func(path string, readOnly bool) (*sql.DB, error)

// Driver binds an opener to the SQL dialect its databases speak. Migrate is
// optional and creates the sales tables in a writable database.
type Driver struct {
	Open    Opener
	Dialect sqlstore.Dialect
	Migrate func(db *sql.DB) error
}

// Registry manages data-source drivers
type Registry interface {
	// Register adds a new driver under the given name
	Register(name string, driver Driver) error
	// Open opens the database at path with the named driver and wraps it in a Store
	Open(name, path string, readOnly bool) (*sql.DB, sqlstore.Store, error)
	// Prepare creates the sales tables in the database at path, creating the file if needed
	Prepare(name, path string) error
	// ListDrivers returns the registered driver names in sorted order
	ListDrivers() []string
}

type registry struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

// NewRegistry creates an empty driver registry
func NewRegistry() Registry {
	return &registry{
		drivers: make(map[string]Driver),
	}
}

func (r *registry) Register(name string, driver Driver) error {
	if name == "" {
		return fmt.Errorf("driver name cannot be empty")
	}
	if driver.Open == nil {
		return fmt.Errorf("driver %q has no opener", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[name]; exists {
		return fmt.Errorf("driver %q is already registered", name)
	}

	r.drivers[name] = driver
	return nil
}

func (r *registry) Open(name, path string, readOnly bool) (*sql.DB, sqlstore.Store, error) {
	r.mu.RLock()
	driver, exists := r.drivers[name]
	r.mu.RUnlock()

	if !exists {
		return nil, nil, fmt.Errorf("driver %q is not registered", name)
	}

	db, err := driver.Open(path, readOnly)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s database %q: %w", name, path, err)
	}

	s, err := sqlstore.NewStore(db, driver.Dialect)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, s, nil
}

func (r *registry) Prepare(name, path string) error {
	r.mu.RLock()
	driver, exists := r.drivers[name]
	r.mu.RUnlock()

	if !exists {
		return fmt.Errorf("driver %q is not registered", name)
	}

	db, err := driver.Open(path, false)
	if err != nil {
		return fmt.Errorf("open %s database %q: %w", name, path, err)
	}
	defer db.Close()

	if driver.Migrate == nil {
		return nil
	}
	if err := driver.Migrate(db); err != nil {
		return fmt.Errorf("migrate %s database %q: %w", name, path, err)
	}
	return nil
}

func (r *registry) ListDrivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
