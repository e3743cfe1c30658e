package main

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/pararang/phan/src/builtin"
	"github.com/pararang/phan/src/types"
)

// session evaluates query lines against one registry. Results go to out,
// problems come back as errors for the caller to report, and a line that
// fails still leaves the session usable for the next one.
type session struct {
	registry *builtin.Registry
	out      io.Writer
}

func (s *session) run(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)
	switch verb {
	case "norm":
		return s.normalize(rest)
	case "cast":
		return s.cast(args)
	case "generics", "asgeneric", "nongeneric":
		return s.project(verb, rest)
	case "sig":
		return s.signature(args)
	case "prop":
		return s.property(args)
	case "value":
		return s.value(rest)
	case "funcs":
		return s.list(s.registry.FunctionNames())
	case "classes":
		return s.list(s.registry.ClassNames())
	case "help":
		fmt.Fprint(s.out, queryHelp)
		return nil
	default:
		return errors.Errorf("unknown query %q, try help", verb)
	}
}

// normalize parses a union expression and prints it back in canonical form.
// Bad alternatives degrade to none, so the canonical form still prints and
// the parse problems are returned alongside it.
func (s *session) normalize(expr string) error {
	if expr == "" {
		return errors.New("norm expects a type expression")
	}
	union, err := types.FromString(expr)
	fmt.Fprintln(s.out, union)
	return err
}

func (s *session) cast(args []string) error {
	if len(args) != 2 {
		return errors.New("cast expects a source and a target type expression")
	}
	from, fromErr := types.FromString(args[0])
	to, toErr := types.FromString(args[1])
	fmt.Fprintln(s.out, from.CanCast(to, nil))
	if fromErr != nil {
		return fromErr
	}
	return toErr
}

func (s *session) project(verb, expr string) error {
	if expr == "" {
		return errors.Errorf("%v expects a type expression", verb)
	}
	union, err := types.FromString(expr)
	switch verb {
	case "generics":
		union = union.GenericTypes()
	case "asgeneric":
		union = union.AsGenericTypes()
	case "nongeneric":
		union = union.NonGenericTypes()
	}
	fmt.Fprintln(s.out, union)
	return err
}

func (s *session) signature(args []string) error {
	if len(args) != 1 {
		return errors.New("sig expects one qualified function name")
	}
	name := types.QualifiedName(args[0])
	sig, ok := s.registry.FunctionSignature(name)
	if !ok {
		return errors.Errorf("unknown function %v", name)
	}
	params := make([]string, 0, len(sig.Params))
	for _, p := range sig.Params {
		union, _ := types.FromString(p.Type)
		params = append(params, p.Name+" "+union.String())
	}
	ret, _ := types.FromString(sig.Return)
	fmt.Fprintf(s.out, "%v(%v) %v\n", name, strings.Join(params, ", "), ret)
	return nil
}

func (s *session) property(args []string) error {
	if len(args) != 2 {
		return errors.New("prop expects a class name and a property name")
	}
	class, prop := types.QualifiedName(args[0]), args[1]
	if !s.registry.ClassExists(class) {
		return errors.Errorf("unknown class %v", class)
	}
	if !s.registry.PropertyExists(class, prop) {
		return errors.Errorf("unknown property %v.%v", class, prop)
	}
	fmt.Fprintln(s.out, s.registry.ClassPropertyType(class, prop))
	return nil
}

// value types a literal written as json, the closest notation at hand for
// "some runtime value", and prints the type the engine gives it.
func (s *session) value(src string) error {
	if src == "" {
		return errors.New("value expects a literal")
	}
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return errors.Wrapf(err, "cannot read literal %q", src)
	}
	fmt.Fprintln(s.out, types.FromValue(plainValue(v)))
	return nil
}

// plainValue rewrites decoder specific number values into the int64 and
// float64 the engine types, keeping whole numbers integral.
func plainValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case []any:
		for i, item := range val {
			val[i] = plainValue(item)
		}
		return val
	case map[string]any:
		for key, item := range val {
			val[key] = plainValue(item)
		}
		return val
	default:
		return v
	}
}

func (s *session) list(names []string) error {
	for _, name := range names {
		fmt.Fprintln(s.out, name)
	}
	return nil
}

const queryHelp = `norm <type>          canonical form of a union type expression
cast <from> <to>     whether the first type may be used as the second
generics <type>      element types of the generic array alternatives
asgeneric <type>     each alternative mapped to its generic array
nongeneric <type>    alternatives that are not generic arrays
sig <function>       declared signature of a builtin function
prop <class> <name>  declared type of a builtin class property
value <literal>      type of a literal value written as json
funcs                all builtin function names
classes              all builtin class names
help                 this summary
`
