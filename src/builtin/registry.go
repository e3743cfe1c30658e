// Package builtin holds the read only tables of known standard library class
// property types and function signatures, shared by every analysis in the
// process. The tables are built exactly once and never mutated afterwards, so
// concurrent readers need no locking; extending them with project stubs
// produces a fresh Registry instead.
package builtin

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"github.com/pararang/phan/src/perrors"
	"github.com/pararang/phan/src/types"
)

type (
	// Param is one declared parameter of a builtin function signature.
	Param struct {
		Name string `json:"name" yaml:"name"`
		Type string `json:"type" yaml:"type"`
	}
	// Signature is one row of the function table: the return type followed
	// by the parameters in declaration order.
	Signature struct {
		Return string  `json:"return" yaml:"return"`
		Params []Param `json:"params" yaml:"params"`
	}
	// Registry maps lowercased class names to their property types and
	// verbatim qualified function names to their signatures. Class lookups
	// are case insensitive while function lookups are case sensitive; the
	// asymmetry is a property of the underlying signature data and is kept
	// as is.
	Registry struct {
		classes   map[string]map[string]string
		functions map[string]Signature
	}
)

// New builds a registry from raw tables. This is the seam for hosts that
// load their own signature data; most callers want Default instead. The
// tables are copied, so the arguments stay with the caller.
func New(classes map[string]map[string]string, functions map[string]Signature) *Registry {
	r := &Registry{
		classes:   make(map[string]map[string]string, len(classes)),
		functions: make(map[string]Signature, len(functions)),
	}
	for name, props := range classes {
		copied := make(map[string]string, len(props))
		for prop, typeName := range props {
			copied[prop] = typeName
		}
		r.classes[strings.ToLower(name)] = copied
	}
	for name, sig := range functions {
		r.functions[name] = copySignature(sig)
	}
	return r
}

func copySignature(sig Signature) Signature {
	params := make([]Param, len(sig.Params))
	copy(params, sig.Params)
	return Signature{Return: sig.Return, Params: params}
}

// ClassExists reports whether the class is in the builtin tables. Class
// names match case insensitively.
func (r *Registry) ClassExists(class types.QualifiedName) bool {
	_, ok := r.classes[class.Lower()]
	return ok
}

// PropertyExists reports whether the builtin class declares the property.
func (r *Registry) PropertyExists(class types.QualifiedName, prop string) bool {
	props, ok := r.classes[class.Lower()]
	if !ok {
		return false
	}
	_, ok = props[prop]
	return ok
}

// ClassPropertyType returns the declared type of a builtin class property as
// a union. The caller must have checked ClassExists and PropertyExists
// first: looking up an absent key is a contract violation and panics with a
// perrors invariant error rather than silently returning an empty union.
func (r *Registry) ClassPropertyType(class types.QualifiedName, prop string) *types.Union {
	props, ok := r.classes[class.Lower()]
	if !ok {
		panic(&perrors.Error{
			Kind:  perrors.InvariantErr,
			Input: class.String(),
			Err:   errors.New("builtin class looked up without an existence check"),
		})
	}
	typeName, ok := props[prop]
	if !ok {
		panic(&perrors.Error{
			Kind:  perrors.InvariantErr,
			Input: class.String() + "." + prop,
			Err:   errors.New("builtin property looked up without an existence check"),
		})
	}
	// table strings are the registry owner's contract; a malformed one
	// degrades to none like any other unparsable name
	u, _ := types.FromString(typeName)
	return u
}

// SignatureExists reports whether the registry has a non-empty signature
// entry for the qualified function name. Use it as the guard in contexts
// where absence is expected rather than exceptional.
func (r *Registry) SignatureExists(qn types.QualifiedName) bool {
	sig, ok := r.functions[string(qn)]
	return ok && (sig.Return != "" || len(sig.Params) > 0)
}

// FunctionParameterTypes returns the declared parameter types of a builtin
// function keyed by parameter name, excluding the return type slot. An
// entirely absent name yields an empty mapping, not an error.
func (r *Registry) FunctionParameterTypes(qn types.QualifiedName) map[string]*types.Union {
	out := map[string]*types.Union{}
	sig, ok := r.functions[string(qn)]
	if !ok {
		return out
	}
	for _, p := range sig.Params {
		u, _ := types.FromString(p.Type)
		out[p.Name] = u
	}
	return out
}

// FunctionSignature returns the raw signature row for a qualified function
// name with the parameters still in declaration order, which the mapping
// form of FunctionParameterTypes does not preserve.
func (r *Registry) FunctionSignature(qn types.QualifiedName) (Signature, bool) {
	sig, ok := r.functions[string(qn)]
	if !ok {
		return Signature{}, false
	}
	return copySignature(sig), true
}

// FunctionReturnType returns the declared return type of a builtin function,
// or the empty union when the name is absent.
func (r *Registry) FunctionReturnType(qn types.QualifiedName) *types.Union {
	sig, ok := r.functions[string(qn)]
	if !ok {
		return types.Empty()
	}
	u, _ := types.FromString(sig.Return)
	return u
}

// FunctionNames returns every qualified function name in the tables, sorted.
func (r *Registry) FunctionNames() []string {
	names := maps.Keys(r.functions)
	sort.Strings(names)
	return names
}

// ClassNames returns every class key in the tables, lowercased and sorted.
func (r *Registry) ClassNames() []string {
	names := maps.Keys(r.classes)
	sort.Strings(names)
	return names
}

// Merge returns a new registry with the given tables laid over this one:
// stub properties extend or replace a class's own, and stub signatures
// replace whole rows. The receiver is left untouched.
func (r *Registry) Merge(classes map[string]map[string]string, functions map[string]Signature) *Registry {
	merged := &Registry{
		classes:   make(map[string]map[string]string, len(r.classes)+len(classes)),
		functions: make(map[string]Signature, len(r.functions)+len(functions)),
	}
	for name, props := range r.classes {
		copied := make(map[string]string, len(props))
		for prop, typeName := range props {
			copied[prop] = typeName
		}
		merged.classes[name] = copied
	}
	for name, props := range classes {
		key := strings.ToLower(name)
		if merged.classes[key] == nil {
			merged.classes[key] = make(map[string]string, len(props))
		}
		for prop, typeName := range props {
			merged.classes[key][prop] = typeName
		}
	}
	for name, sig := range r.functions {
		merged.functions[name] = copySignature(sig)
	}
	for name, sig := range functions {
		merged.functions[name] = copySignature(sig)
	}
	return merged
}
