package types

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/pararang/phan/src/perrors"
)

type (
	// atomicKind describes which variant of type an Atomic holds.
	atomicKind int
	// Atomic is one concrete type alternative: a scalar, a class reference,
	// a generic array of another type, or a context relative self-like type.
	// Atomic values are interned, meaning there is exactly one instance per
	// canonical string form, shared by every union that mentions it and never
	// mutated after publication.
	Atomic struct {
		kind     atomicKind
		name     string
		elem     *Atomic
		nullable bool
		base     *Atomic
		repr     string
	}
	// ClassNamer is implemented by literal values that carry a class
	// identity, so that FromValue can map them to a class reference.
	ClassNamer interface {
		ClassName() string
	}
)

const (
	kindScalar atomicKind = iota
	kindClass
	kindGeneric
	kindSelfLike
)

const (
	// NameInt is the label for the int type.
	NameInt = "int"
	// NameFloat is the label for the float type.
	NameFloat = "float"
	// NameString is the label for the string type.
	NameString = "string"
	// NameBool is the label for the bool type.
	NameBool = "bool"
	// NameArray is the label for the bare untyped array type.
	NameArray = "array"
	// NameNull is the label for the null type.
	NameNull = "null"
	// NameMixed is the label for the mixed escape hatch type.
	NameMixed = "mixed"
	// NameNone is the label for the unknown type.
	NameNone = "none"
	// NameObject is the label for the general object type.
	NameObject = "object"
	// NameResource is the label for the resource type.
	NameResource = "resource"
	// NameCallable is the label for the callable type.
	NameCallable = "callable"
	// NameIterable is the label for the iterable type.
	NameIterable = "iterable"
	// NameVoid is the label for the void return type.
	NameVoid = "void"
	// NameSelf is the label for the self context relative type.
	NameSelf = "self"
	// NameStatic is the label for the static context relative type.
	NameStatic = "static"
	// NameThis is the label for the $this context relative type.
	NameThis = "$this"
)

// interned is the process wide intern table, canonical string to *Atomic.
// LoadOrStore keeps concurrent analyses safe: a losing racer recomputes and
// discards its instance.
var interned sync.Map

var (
	// Int is the int scalar type.
	Int = newScalar(NameInt)
	// Float is the float scalar type.
	Float = newScalar(NameFloat)
	// String is the string scalar type.
	String = newScalar(NameString)
	// Bool is the bool scalar type.
	Bool = newScalar(NameBool)
	// Array is the bare untyped array type, which may hold anything.
	Array = newScalar(NameArray)
	// Null is the null type.
	Null = newScalar(NameNull)
	// Mixed is the escape hatch type that casts to and from everything.
	Mixed = newScalar(NameMixed)
	// None is the unknown type, also produced when a type name cannot be
	// parsed.
	None = newScalar(NameNone)
	// Object is the general object type that any class reference casts to.
	Object = newScalar(NameObject)
	// Resource is the resource scalar type.
	Resource = newScalar(NameResource)
	// Callable is the callable scalar type.
	Callable = newScalar(NameCallable)
	// Iterable is the iterable scalar type, matched by array values.
	Iterable = newScalar(NameIterable)
	// Void is the void return type.
	Void = newScalar(NameVoid)
	// Self is the self type, resolved against the class scope by the
	// analysis layer.
	Self = newSelfLike(NameSelf)
	// Static is the static type, resolved against the called class by the
	// analysis layer.
	Static = newSelfLike(NameStatic)
	// This is the $this type, resolved against the current instance by the
	// analysis layer.
	This = newSelfLike(NameThis)

	scalarByName = map[string]*Atomic{
		NameInt:      Int,
		NameFloat:    Float,
		NameString:   String,
		NameBool:     Bool,
		NameArray:    Array,
		NameNull:     Null,
		NameMixed:    Mixed,
		NameNone:     None,
		NameObject:   Object,
		NameResource: Resource,
		NameCallable: Callable,
		NameIterable: Iterable,
		NameVoid:     Void,
	}
	selfLikeByName = map[string]*Atomic{
		NameSelf:   Self,
		NameStatic: Static,
		NameThis:   This,
	}
)

func newScalar(name string) *Atomic   { return intern(&Atomic{kind: kindScalar, name: name}) }
func newSelfLike(name string) *Atomic { return intern(&Atomic{kind: kindSelfLike, name: name}) }

// intern finishes construction of t and publishes it in the intern table,
// returning the canonical shared instance which may be a previously published
// one. t must not be mutated after this call.
func intern(t *Atomic) *Atomic {
	t.repr = reprOf(t)
	t.base = t
	if t.nullable {
		t.base = intern(&Atomic{kind: t.kind, name: t.name, elem: t.elem})
	}
	if prev, loaded := interned.LoadOrStore(t.repr, t); loaded {
		return prev.(*Atomic)
	}
	return t
}

func reprOf(t *Atomic) string {
	base := t.name
	if t.kind == kindGeneric {
		base = t.elem.repr + "[]"
	}
	if t.nullable {
		return "?" + base
	}
	return base
}

func genericOf(elem *Atomic) *Atomic {
	// only the outermost level of a type can be nullable
	elem = elem.base
	return intern(&Atomic{kind: kindGeneric, elem: elem})
}

func nullableOf(t *Atomic) *Atomic {
	if t.nullable {
		return t
	}
	return intern(&Atomic{kind: t.kind, name: t.name, elem: t.elem, nullable: true})
}

// Parse interprets one canonical form type name with no union separator in
// it. It recognizes the nullable prefix, the generic array suffix possibly
// repeated, the scalar keywords, and the context relative keywords; anything
// else is kept verbatim as a class reference. The same canonical string
// always yields the same shared instance. An unparsable name degrades to the
// None type along with a perrors.Error describing the bad input, so a caller
// can keep going and still report the problem.
func Parse(name string) (*Atomic, error) {
	src := strings.TrimSpace(name)
	s := src
	nullable := strings.HasPrefix(s, "?")
	if nullable {
		s = s[1:]
	}
	depth := 0
	for strings.HasSuffix(s, "[]") {
		depth++
		s = s[:len(s)-2]
	}
	t, err := parseBase(s, src)
	if err != nil {
		return None, err
	}
	for range depth {
		t = genericOf(t)
	}
	if nullable {
		t = nullableOf(t)
	}
	return t, nil
}

func parseBase(s, src string) (*Atomic, error) {
	lower := strings.ToLower(s)
	if t, ok := scalarByName[lower]; ok {
		return t, nil
	}
	if t, ok := selfLikeByName[lower]; ok {
		return t, nil
	}
	if !validClassName(s) {
		return nil, &perrors.Error{
			Kind:  perrors.ParseErr,
			Input: src,
			Err:   fmt.Errorf("%q is not a type keyword or a well formed class name", s),
		}
	}
	return intern(&Atomic{kind: kindClass, name: s}), nil
}

// Class returns the class reference type for the given name. The name is
// kept verbatim: resolving `Foo` against its namespace is the analysis
// layer's job, so `Foo` and `\NS\Foo` stay distinct types here.
func Class(name QualifiedName) *Atomic {
	return intern(&Atomic{kind: kindClass, name: string(name)})
}

// FromValue maps a literal runtime value to its type so that inference can
// type literal syntax nodes directly: an integer literal is int, a string
// literal is string, and array literals are the bare array type.
func FromValue(v any) *Atomic {
	switch val := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case int, int64:
		return Int
	case float64:
		return Float
	case string:
		return String
	case []any, map[string]any:
		return Array
	case ClassNamer:
		return Class(QualifiedName(val.ClassName()))
	default:
		return Object
	}
}

// IsScalar reports whether this is one of the scalar keyword types.
func (t *Atomic) IsScalar() bool { return t.kind == kindScalar }

// IsGeneric reports whether this is a generic array type.
func (t *Atomic) IsGeneric() bool { return t.kind == kindGeneric }

// IsSelfLike reports whether this is one of the context relative types that
// still needs resolving against a class scope.
func (t *Atomic) IsSelfLike() bool { return t.kind == kindSelfLike }

// IsNullable reports whether this type carries the nullable prefix.
func (t *Atomic) IsNullable() bool { return t.nullable }

// Elem returns the element type of a generic array type, and nil for every
// other variant.
func (t *Atomic) Elem() *Atomic { return t.elem }

// AsGeneric returns the generic array of this type, one level deep. For a
// nullable type the nullability moves to the array itself because the
// grammar cannot express a nullable element: ?int becomes ?int[].
func (t *Atomic) AsGeneric() *Atomic {
	if t.nullable {
		return nullableOf(genericOf(t.base))
	}
	return genericOf(t)
}

// QualifiedName returns the class name of a class reference, and the empty
// name for every other variant.
func (t *Atomic) QualifiedName() QualifiedName {
	if t.kind != kindClass {
		return ""
	}
	return QualifiedName(t.name)
}

func (t *Atomic) String() string { return t.repr }

func validClassName(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(strings.TrimPrefix(s, `\`), `\`) {
		if !validNameSegment(seg) {
			return false
		}
	}
	return true
}

func validNameSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i, r := range seg {
		if r == '_' || r >= utf8.RuneSelf || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
