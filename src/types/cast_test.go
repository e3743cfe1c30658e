package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicCanCast(t *testing.T) {
	t.Parallel()
	cases := []struct {
		from, to string
		expected bool
	}{
		{"int", "int", true},
		{"int", "float", true},
		{"float", "int", false},
		{"int", "string", false},
		{"string", "bool", false},
		{"null", "MyClass", true},
		{"MyClass", "null", true},
		{"mixed", "int", true},
		{"int", "mixed", true},
		{"none", "string", true},
		{"string", "none", true},
		{"?int", "int", true},
		{"int", "?int", true},
		{"?int", "?float", true},
		{"?float", "int", false},
		{"int[]", "array", true},
		{"array", "int[]", true},
		{"int[]", "iterable", true},
		{"iterable", "int[]", true},
		{"array", "iterable", true},
		{"iterable", "array", true},
		{"int[]", "float[]", true},
		{"float[]", "int[]", false},
		{"int[]", "string[]", false},
		{"int[][]", "array", true},
		{"int[][]", "float[][]", true},
		{"int[]", "int", false},
		{"int", "int[]", false},
		{"MyClass", "object", true},
		{"object", "MyClass", true},
		{"MyClass", "MyClass", true},
		{"MyClass", "OtherClass", false},
		{"MyClass[]", "array", true},
		{"self", "self", true},
		{"self", "static", false},
		{"resource", "string", false},
	}

	for i, tc := range cases {
		from, err := Parse(tc.from)
		require.NoError(t, err, "[%v]", i)
		to, err := Parse(tc.to)
		require.NoError(t, err, "[%v]", i)
		assert.Equal(t, tc.expected, from.CanCast(to, nil), "[%v] %v => %v", i, tc.from, tc.to)
	}
}

// baseOnly allows class casts only toward the class named Base.
type baseOnly struct{}

func (baseOnly) CanCast(_, to QualifiedName) bool { return to == "Base" }

func TestAtomicCanCastWithHierarchy(t *testing.T) {
	t.Parallel()
	child, base := Class("Child"), Class("Base")

	assert.False(t, child.CanCast(base, nil))
	assert.True(t, child.CanCast(base, baseOnly{}))
	assert.False(t, base.CanCast(child, baseOnly{}))

	nullableChild, err := Parse("?Child")
	require.NoError(t, err)
	assert.True(t, nullableChild.CanCast(base, baseOnly{}))
}

func TestUnionCanCast(t *testing.T) {
	t.Parallel()
	cases := []struct {
		from, to string
		expected bool
	}{
		{"int|string", "string|int", true},
		{"", "int", true},
		{"int", "", true},
		{"null", "MyClass", true},
		{"MyClass", "null", true},
		{"mixed|int", "SomeClass", true},
		{"SomeClass", "mixed|int", true},
		{"int", "float", true},
		{"float", "int", false},
		{"int|MyClass", "float|string", true},
		{"string|bool", "float", false},
		{"int[]", "iterable", true},
		{"null|int", "float", true},
		{"MyClass", "OtherClass", false},
		{"MyClass|int", "OtherClass|bool", false},
		{"int[]|string", "bool[]", false},
		{"array|string", "bool[]", true},
	}

	for i, tc := range cases {
		from, err := FromString(tc.from)
		require.NoError(t, err, "[%v]", i)
		to, err := FromString(tc.to)
		require.NoError(t, err, "[%v]", i)
		assert.Equal(t, tc.expected, from.CanCast(to, nil), "[%v] %v => %v", i, tc.from, tc.to)
	}
}

func TestUnionCanCastWithHierarchy(t *testing.T) {
	t.Parallel()
	from, err := FromString("Child|int")
	require.NoError(t, err)
	to, err := FromString("Base")
	require.NoError(t, err)

	assert.False(t, from.CanCast(to, nil))
	assert.True(t, from.CanCast(to, baseOnly{}))
}

// Among the keyword types the int to float widening is the single designed
// one way pair; every other pair must answer the same in both directions.
func TestCastSymmetryAmongKeywordTypes(t *testing.T) {
	t.Parallel()
	keywords := []*Atomic{
		Int, Float, String, Bool, Array, Null, Mixed, None,
		Object, Resource, Callable, Iterable, Void,
	}

	for _, a := range keywords {
		for _, b := range keywords {
			fwd := FromTypes(a).CanCast(FromTypes(b), nil)
			rev := FromTypes(b).CanCast(FromTypes(a), nil)
			if (a == Int && b == Float) || (a == Float && b == Int) {
				assert.NotEqual(t, fwd, rev, "%v <-> %v", a, b)
			} else {
				assert.Equal(t, fwd, rev, "%v <-> %v", a, b)
			}
		}
	}
}

func TestEmptyUnionCastsBothWays(t *testing.T) {
	t.Parallel()
	anything, err := FromString("MyClass|int[]|?string")
	require.NoError(t, err)

	assert.True(t, Empty().CanCast(anything, nil))
	assert.True(t, anything.CanCast(Empty(), nil))
}
