package phan

import (
	"errors"

	"github.com/pararang/phan/src/builtin"
	"github.com/pararang/phan/src/types"
)

// ParseUnion will simply parse a union type expression such as `?int|string[]`
// into its structured form. A malformed alternative degrades to the none type
// and is reported through the error while the union stays usable.
func ParseUnion(expr string) (*types.Union, error) {
	return types.FromString(expr)
}

// Normalize parses a union type expression and renders it back in canonical
// form, distinct alternatives sorted and joined with the union separator.
func Normalize(expr string) (string, error) {
	union, err := types.FromString(expr)
	return union.String(), err
}

// Cast reports whether an expression of the source type may be used where the
// target type is expected, with no class hierarchy attached, so class casts
// succeed only on object or an exact name match. Malformed input degrades to
// the none type, which errs toward castable.
func Cast(source, target string) (bool, error) {
	from, fromErr := types.FromString(source)
	to, toErr := types.FromString(target)
	return from.CanCast(to, nil), errors.Join(fromErr, toErr)
}

// Signature looks a qualified function name up in the bundled standard
// library tables, parameters still in declaration order.
func Signature(name string) (builtin.Signature, bool) {
	return builtin.Default().FunctionSignature(types.QualifiedName(name))
}
