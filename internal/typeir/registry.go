// Package typeir implements the Sierra type registry view, the type
// classifier predicates, and lowering of Sierra concrete types to
// machine-level layouts and host IR types (spec.md §4.B, §4.D, §4.E).
package typeir

import (
	"github.com/hakymulla/cairo-native/internal/cairoerr"
	"github.com/hakymulla/cairo-native/internal/sierra"
)

// Registry is a read-only view over a Sierra program's type
// declarations, built once and safe for concurrent reads (spec.md §4.B).
type Registry struct {
	byId map[sierra.ConcreteTypeId]*sierra.TypeDeclaration
}

// NewRegistry builds a Registry from a parsed program's type
// declarations. It fails with KindProgramRegistryError on duplicate ids.
func NewRegistry(program *sierra.Program) (*Registry, error) {
	byId := make(map[sierra.ConcreteTypeId]*sierra.TypeDeclaration, len(program.TypeDeclarations))
	for i := range program.TypeDeclarations {
		decl := &program.TypeDeclarations[i]
		if _, dup := byId[decl.Id]; dup {
			return nil, cairoerr.New(cairoerr.KindProgramRegistryError, "duplicate concrete type id %q", decl.Id)
		}
		byId[decl.Id] = decl
	}
	return &Registry{byId: byId}, nil
}

// GetType looks up a concrete type declaration by id, failing with
// KindMissingType if absent.
func (r *Registry) GetType(id sierra.ConcreteTypeId) (*sierra.TypeDeclaration, error) {
	decl, ok := r.byId[id]
	if !ok {
		return nil, cairoerr.MissingType(string(id))
	}
	return decl, nil
}

// Len reports how many concrete types are in the registry.
func (r *Registry) Len() int { return len(r.byId) }
