package types

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/pararang/phan/src/conf"
)

type (
	// Union is the set of possible types of one expression. It composes an
	// insertion ordered member list with a canonical-string set for
	// deduplication; callers only ever see the operations below, never the
	// raw containers. The empty union is a distinguished value meaning the
	// type is unknown, and it casts freely in both directions.
	Union struct {
		members []*Atomic
		keys    *set.Set[string]
	}
	// Node marks syntax tree nodes owned by the analysis layer. The engine
	// never looks inside a node; FromNode hands any Node to the Inferrer.
	Node interface {
		ASTNode()
	}
	// Inferrer resolves the union type of one syntax node in the lexical
	// context it appears in. It is implemented by the analysis visitor.
	Inferrer interface {
		Infer(node Node) *Union
	}
)

// Empty returns a new union with no alternatives in it.
func Empty() *Union {
	return &Union{keys: set.New[string](0)}
}

// FromTypes builds a union of the given alternatives, collapsing duplicates.
func FromTypes(alts ...*Atomic) *Union {
	u := Empty()
	for _, t := range alts {
		u.AddType(t)
	}
	return u
}

// FromString parses a union type string such as `int|?string[]`. An
// alternative that fails to parse degrades to the None type, and every
// failure is reported through the joined error while the returned union
// stays usable. An empty string yields the empty union.
func FromString(s string) (*Union, error) {
	u := Empty()
	if strings.TrimSpace(s) == "" {
		return u, nil
	}
	var errs []error
	for _, part := range strings.Split(s, conf.UNIONSEP) {
		t, err := Parse(part)
		if err != nil {
			errs = append(errs, err)
		}
		u.AddType(t)
	}
	return u, errors.Join(errs...)
}

// FromNode is the seam between the type engine and the syntax analysis
// subsystem: a nil input yields the empty union, a Node is delegated
// entirely to the inference visitor, and any other value is typed as a
// literal. A nil Inferrer leaves nodes unconstrained.
func FromNode(inf Inferrer, v any) *Union {
	if v == nil {
		return Empty()
	}
	if node, ok := v.(Node); ok {
		if inf == nil {
			return Empty()
		}
		return inf.Infer(node)
	}
	return FromTypes(FromValue(v))
}

// AddType inserts one alternative, keyed by canonical string, so adding a
// type that is already present is a no-op. Iteration keeps first insertion
// order, which is independent of the sorted order used by String.
func (u *Union) AddType(t *Atomic) {
	if t == nil {
		return
	}
	if u.keys == nil {
		u.keys = set.New[string](0)
	}
	if u.keys.Insert(t.repr) {
		u.members = append(u.members, t)
	}
}

// AddUnion inserts every alternative of the other union.
func (u *Union) AddUnion(other *Union) {
	if other == nil {
		return
	}
	for _, t := range other.members {
		u.AddType(t)
	}
}

// Head returns the first alternative in insertion order. The caller is
// expected to have checked Size() == 1 first; with more members the result
// is just some member, and with none it is nil.
func (u *Union) Head() *Atomic {
	if u == nil || len(u.members) == 0 {
		return nil
	}
	return u.members[0]
}

// Size returns the number of distinct alternatives.
func (u *Union) Size() int {
	if u == nil {
		return 0
	}
	return len(u.members)
}

// Types returns the alternatives in first insertion order.
func (u *Union) Types() []*Atomic {
	if u == nil {
		return nil
	}
	return slices.Clone(u.members)
}

// HasType reports whether the exact alternative is present.
func (u *Union) HasType(t *Atomic) bool {
	if u == nil || t == nil || u.keys == nil {
		return false
	}
	return u.keys.Contains(t.repr)
}

// HasAnyType reports whether at least one of the given alternatives is
// present.
func (u *Union) HasAnyType(alts ...*Atomic) bool {
	for _, t := range alts {
		if u.HasType(t) {
			return true
		}
	}
	return false
}

// IsType reports whether the union is exactly the one given alternative.
func (u *Union) IsType(t *Atomic) bool {
	return u.Size() == 1 && u.members[0] == t
}

// IsEqualTo reports whether both unions hold the same set of alternatives,
// by comparing canonical sorted string forms.
func (u *Union) IsEqualTo(other *Union) bool {
	return u.String() == other.String()
}

// HasSelfType reports whether any alternative is context relative and still
// needs resolving against the current class scope.
func (u *Union) HasSelfType() bool {
	if u == nil {
		return false
	}
	for _, t := range u.members {
		if t.IsSelfLike() {
			return true
		}
	}
	return false
}

// IsScalar reports whether the union is exactly one scalar alternative.
func (u *Union) IsScalar() bool {
	return u.Size() == 1 && u.members[0].IsScalar()
}

// String serializes the union in canonical form: alternatives sorted by
// natural string order and joined with the union separator, so that equal
// sets always render identically regardless of insertion order. The empty
// union renders as the empty string.
func (u *Union) String() string {
	if u == nil || len(u.members) == 0 {
		return ""
	}
	names := make([]string, 0, len(u.members))
	for _, t := range u.members {
		names = append(names, t.repr)
	}
	ordered := set.TreeSetFrom[string](names, cmp.Compare[string])
	return strings.Join(ordered.Slice(), conf.UNIONSEP)
}

// GenericTypes projects the element types of every generic array
// alternative: int[]|string|bool[] yields int|bool. When the bare array type
// is a member the result short circuits to mixed regardless of the other
// members, since an untyped array may hold anything.
func (u *Union) GenericTypes() *Union {
	out := Empty()
	if u == nil {
		return out
	}
	if u.HasType(Array) {
		out.AddType(Mixed)
		return out
	}
	for _, t := range u.members {
		if t.IsGeneric() {
			out.AddType(t.Elem())
		}
	}
	return out
}

// AsGenericTypes maps every alternative to its generic array, producing the
// type of an array built out of any one of the alternatives: int|string
// yields int[]|string[].
func (u *Union) AsGenericTypes() *Union {
	out := Empty()
	if u == nil {
		return out
	}
	for _, t := range u.members {
		out.AddType(t.AsGeneric())
	}
	return out
}

// NonGenericTypes filters out every generic array alternative, keeping the
// rest unchanged.
func (u *Union) NonGenericTypes() *Union {
	out := Empty()
	if u == nil {
		return out
	}
	for _, t := range u.members {
		if !t.IsGeneric() {
			out.AddType(t)
		}
	}
	return out
}
