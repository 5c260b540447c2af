// Package guard implements the constructor-guard pattern used by value
// objects, entities, and commands across the dispatch core. Embedding a
// ConstructorGuard lets a type distinguish instances built through its
// constructor from zero values, so invariants established at construction
// time cannot be bypassed with a struct literal.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value
// fails validation; only NewConstructorGuard produces a passing guard.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation. Call it in
// every constructor that establishes the type's invariants.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when that is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
