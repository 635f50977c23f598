// Package partner is the lookup-or-create capability for manufacturer
// references. The real partner master data lives in an external system;
// the in-memory directory here is what the core ships and tests against.
package partner

import (
	"fmt"
	"strings"
)

// Address holds the manufacturer address fields captured from the DI
type Address struct {
	Street string
	Number string
	City   string
	State  string
}

// Directory resolves manufacturer names to partner references, creating
// them on first sight.
type Directory interface {
	FindOrCreateManufacturer(name string, addr Address) (string, error)
}

// MemoryDirectory is an in-memory Directory keyed by normalized name
type MemoryDirectory struct {
	byName map[string]string
	next   int
}

// NewMemoryDirectory creates an empty in-memory directory
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{byName: make(map[string]string)}
}

// FindOrCreateManufacturer returns the reference for the named
// manufacturer, creating one when the name is unknown. Lookups are
// case-insensitive on the trimmed name.
func (d *MemoryDirectory) FindOrCreateManufacturer(name string, _ Address) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		return "", fmt.Errorf("manufacturer name is empty")
	}
	if ref, ok := d.byName[key]; ok {
		return ref, nil
	}
	d.next++
	ref := fmt.Sprintf("partner-%04d", d.next)
	d.byName[key] = ref
	return ref, nil
}

// Len returns the number of known manufacturers
func (d *MemoryDirectory) Len() int {
	return len(d.byName)
}
