package spacekit

import (
	"fmt"
	"sync"
)

// Well-known class names of the document model.
const (
	// ClassDoc is the generic document-change base class. Transactions
	// whose class derives from it are subject to write authorization.
	ClassDoc = "doc"

	// ClassSpace is the space base class. Transactions whose class derives
	// from it additionally maintain the access index.
	ClassSpace = "space"
)

// ClassRegistry holds the class hierarchy of the host's document model and
// answers type-derivation questions for transaction classification.
// It is created at startup and should be treated as immutable after
// initialization.
type ClassRegistry struct {
	mu      sync.RWMutex
	classes map[string]*ClassDefinition
}

// ClassDefinition defines a single class and its parent link.
type ClassDefinition struct {
	name     string
	parent   string // empty for root classes
	registry *ClassRegistry
}

// NewClassRegistry creates an empty class registry.
func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{
		classes: make(map[string]*ClassDefinition),
	}
}

// DefaultClasses returns a registry seeded with the doc/space hierarchy:
// "space" derives from "doc".
func DefaultClasses() *ClassRegistry {
	r := NewClassRegistry()
	r.DefineClass(ClassDoc)
	r.DefineClass(ClassSpace).DerivedFrom(ClassDoc)
	return r
}

// DefineClass starts defining a new class.
// Returns a ClassDefinition builder for fluent configuration.
//
// Example:
//
//	classes.DefineClass("teamspace").DerivedFrom(spacekit.ClassSpace).
//	    DefineClass("note").DerivedFrom(spacekit.ClassDoc)
func (r *ClassRegistry) DefineClass(name string) *ClassDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()

	def := &ClassDefinition{
		name:     name,
		registry: r,
	}
	r.classes[name] = def
	return def
}

// GetClass returns the class definition for a name.
// Returns nil if the class is not defined.
func (r *ClassRegistry) GetClass(name string) *ClassDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[name]
}

// Classes returns all defined class names.
func (r *ClassRegistry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	return names
}

// ValidateClass checks if a class is defined.
func (r *ClassRegistry) ValidateClass(name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.classes[name]; !exists {
		return fmt.Errorf("%w: class %q not defined", ErrUnknownClass, name)
	}
	return nil
}

// IsDerived reports whether class equals base or descends from it through
// the parent chain. Unknown classes derive from nothing.
func (r *ClassRegistry) IsDerived(class, base string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name := class; name != ""; {
		def, exists := r.classes[name]
		if !exists {
			return false
		}
		if name == base {
			return true
		}
		name = def.parent
	}
	return false
}

// DerivedFrom sets the parent class.
//
// Example:
//
//	classes.DefineClass("teamspace").DerivedFrom(spacekit.ClassSpace)
func (d *ClassDefinition) DerivedFrom(parent string) *ClassDefinition {
	d.parent = parent
	return d
}

// Parent returns the parent class name, or empty string for root classes.
func (d *ClassDefinition) Parent() string {
	return d.parent
}

// Name returns the class name.
func (d *ClassDefinition) Name() string {
	return d.name
}

// DefineClass continues defining classes on the registry (fluent API).
// This allows chaining class definitions.
func (d *ClassDefinition) DefineClass(name string) *ClassDefinition {
	return d.registry.DefineClass(name)
}
