package builtin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pararang/phan/src/perrors"
	"github.com/pararang/phan/src/types"
)

func TestDefaultIsShared(t *testing.T) {
	t.Parallel()
	assert.Same(t, Default(), Default())
	assert.NotEmpty(t, Default().ClassNames())
	assert.NotEmpty(t, Default().FunctionNames())
}

func TestClassLookupsAreCaseInsensitive(t *testing.T) {
	t.Parallel()
	reg := Default()
	cases := []struct {
		class    types.QualifiedName
		prop     string
		expected string
	}{
		{"Exception", "message", "string"},
		{"exception", "code", "int"},
		{"EXCEPTION", "line", "int"},
		{"DateInterval", "days", "bool|int"},
		{"dateinterval", "f", "float"},
		{"Directory", "handle", "resource"},
		{"DatePeriod", "current", "?DateTimeInterface"},
	}

	for _, tc := range cases {
		require.True(t, reg.ClassExists(tc.class), tc.class)
		require.True(t, reg.PropertyExists(tc.class, tc.prop), tc.prop)
		assert.Equal(t, tc.expected, reg.ClassPropertyType(tc.class, tc.prop).String())
	}

	assert.False(t, reg.ClassExists("NoSuchClass"))
	assert.False(t, reg.PropertyExists("Exception", "nope"))
	assert.False(t, reg.PropertyExists("NoSuchClass", "message"))
}

func TestUncheckedPropertyLookupPanics(t *testing.T) {
	t.Parallel()
	reg := Default()
	assert.PanicsWithError(t, `invariant violated on "NoSuchClass": builtin class looked up without an existence check`, func() {
		reg.ClassPropertyType("NoSuchClass", "message")
	})
	assert.PanicsWithError(t, `invariant violated on "Exception.nope": builtin property looked up without an existence check`, func() {
		reg.ClassPropertyType("Exception", "nope")
	})
}

func TestFunctionLookupsAreCaseSensitive(t *testing.T) {
	t.Parallel()
	reg := Default()
	assert.True(t, reg.SignatureExists(`\strlen`))
	assert.False(t, reg.SignatureExists(`\STRLEN`))
	assert.False(t, reg.SignatureExists(`\no_such_function`))
}

func TestFunctionReturnType(t *testing.T) {
	t.Parallel()
	reg := Default()
	cases := []struct {
		name     types.QualifiedName
		expected string
	}{
		{`\strlen`, "int"},
		{`\strpos`, "bool|int"},
		{`\abs`, "float|int"},
		{`\explode`, "string[]"},
		{`\preg_replace`, "?string|string[]"},
		{`\var_dump`, "void"},
		{`\no_such_function`, ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, reg.FunctionReturnType(tc.name).String(), tc.name)
	}
}

func TestFunctionParameterTypes(t *testing.T) {
	t.Parallel()
	reg := Default()

	params := reg.FunctionParameterTypes(`\strpos`)
	require.Len(t, params, 3)
	assert.Equal(t, "string", params["haystack"].String())
	assert.Equal(t, "string", params["needle"].String())
	assert.Equal(t, "int", params["offset"].String())

	assert.Empty(t, reg.FunctionParameterTypes(`\no_such_function`))
}

func TestFunctionSignatureKeepsDeclarationOrder(t *testing.T) {
	t.Parallel()
	sig, ok := Default().FunctionSignature(`\substr`)
	require.True(t, ok)
	assert.Equal(t, "string", sig.Return)

	names := make([]string, 0, len(sig.Params))
	for _, p := range sig.Params {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"string", "offset", "length"}, names)

	_, ok = Default().FunctionSignature(`\no_such_function`)
	assert.False(t, ok)
}

func TestMergeLayersStubsOverDefaults(t *testing.T) {
	t.Parallel()
	base := New(
		map[string]map[string]string{"Widget": {"name": "string"}},
		map[string]Signature{`\widget_make`: {
			Return: "Widget",
			Params: []Param{{Name: "name", Type: "string"}},
		}},
	)

	merged := base.Merge(
		map[string]map[string]string{
			"widget": {"id": "int"},
			"Gadget": {"mass": "float"},
		},
		map[string]Signature{`\widget_make`: {Return: "?Widget"}},
	)

	assert.True(t, merged.PropertyExists("Widget", "name"))
	assert.True(t, merged.PropertyExists("Widget", "id"))
	assert.True(t, merged.ClassExists("Gadget"))
	assert.Equal(t, "?Widget", merged.FunctionReturnType(`\widget_make`).String())
	assert.Empty(t, merged.FunctionParameterTypes(`\widget_make`))
	assert.Equal(t, []string{"gadget", "widget"}, merged.ClassNames())

	// the base registry is untouched by the overlay
	assert.False(t, base.PropertyExists("Widget", "id"))
	assert.False(t, base.ClassExists("Gadget"))
	assert.Equal(t, "Widget", base.FunctionReturnType(`\widget_make`).String())
}

func TestParseStubs(t *testing.T) {
	t.Parallel()
	doc := `
classes:
  App\Config:
    path: string
    flags: int[]
functions:
  \App\load:
    return: '?App\Config'
    params:
      - name: path
        type: string
`
	classes, functions, err := ParseStubs(strings.NewReader(doc))
	require.NoError(t, err)

	reg := Default().Merge(classes, functions)
	assert.True(t, reg.ClassExists(`app\config`))
	assert.Equal(t, "int[]", reg.ClassPropertyType(`App\Config`, "flags").String())
	assert.Equal(t, `?App\Config`, reg.FunctionReturnType(`\App\load`).String())
	assert.Equal(t, "string", reg.FunctionParameterTypes(`\App\load`)["path"].String())
}

func TestParseStubsEmptyDocument(t *testing.T) {
	t.Parallel()
	classes, functions, err := ParseStubs(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, classes)
	assert.Empty(t, functions)
}

func TestParseStubsRejectsBadYaml(t *testing.T) {
	t.Parallel()
	_, _, err := ParseStubs(strings.NewReader("classes: [whoops"))
	require.Error(t, err)

	var perr *perrors.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, perrors.StubErr, perr.Kind)
}
