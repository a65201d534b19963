package lookup

import (
	"fmt"
	"sync"
	"time"

	"pointconfig/domain/geometry"
	"pointconfig/internal"
)

// Cache is the registry of lookup tables keyed by space. The first caller for
// a space builds its table; concurrent callers for the same space wait for
// that single build, and every later caller receives the same *Table.
// A Cache is passed explicitly to the trackers and scorers that need it.
type Cache struct {
	mu      sync.Mutex
	entries map[geometry.Space]*entry
	logger  *internal.Logger
	builds  int
	build   func(geometry.Space) (*Table, error)
}

type entry struct {
	once  sync.Once
	table *Table
	err   error
}

// NewCache creates an empty registry.
func NewCache(logger *internal.Logger) *Cache {
	return &Cache{
		entries: make(map[geometry.Space]*entry),
		logger:  internal.OrDefault(logger),
		build:   Build,
	}
}

// GetOrBuild returns the shared table for space, building it on first request.
func (c *Cache) GetOrBuild(space geometry.Space) (*Table, error) {
	table, _, err := c.Lookup(space)
	return table, err
}

// Lookup is GetOrBuild that also reports whether this call performed the build.
func (c *Cache) Lookup(space geometry.Space) (*Table, bool, error) {
	if err := geometry.CheckPrimeDim(space.Prime, space.Dimension); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	e, ok := c.entries[space]
	if !ok {
		e = &entry{}
		c.entries[space] = e
	}
	c.mu.Unlock()

	built := false
	e.once.Do(func() {
		built = true
		start := time.Now()
		e.table, e.err = c.safeBuild(space)
		if e.err != nil {
			c.logger.Error("lookup table build for %s failed: %v", space, e.err)
			return
		}
		c.mu.Lock()
		c.builds++
		c.mu.Unlock()
		c.logger.Info("built lookup table for %s: %d cells in %v", space, e.table.Cells(), time.Since(start))
	})

	if e.err != nil {
		c.mu.Lock()
		if c.entries[space] == e {
			delete(c.entries, space)
		}
		c.mu.Unlock()
		return nil, built, e.err
	}
	return e.table, built, nil
}

// safeBuild turns a panicking or empty build into an error so a failed
// entry is dropped instead of cached.
func (c *Cache) safeBuild(space geometry.Space) (table *Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			table, err = nil, fmt.Errorf("lookup table build for %s panicked: %v", space, r)
		}
	}()
	table, err = c.build(space)
	if err == nil && table == nil {
		err = fmt.Errorf("lookup table build for %s returned no table", space)
	}
	return table, err
}

// Len returns the number of spaces registered in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Builds returns how many tables this cache has built over its lifetime.
func (c *Cache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}

// Clear drops every table. Tables already handed out stay valid.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[geometry.Space]*entry)
}
