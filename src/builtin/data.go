package builtin

import (
	_ "embed"
	"io"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pararang/phan/src/perrors"
)

// dataset is the on disk shape of the tables, shared by the embedded json
// and the yaml stub documents users write.
type dataset struct {
	Classes   map[string]map[string]string `json:"classes" yaml:"classes"`
	Functions map[string]Signature         `json:"functions" yaml:"functions"`
}

var (
	//go:embed signatures.json
	rawTables []byte

	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process wide registry built from the embedded
// signature tables. The first call decodes them; every later call returns
// the same instance. A corrupt embedded dataset is a packaging defect, so
// decoding failure panics rather than surfacing an error to every caller.
func Default() *Registry {
	defaultOnce.Do(func() {
		ds, err := decodeTables(rawTables)
		if err != nil {
			panic(err)
		}
		defaultRegistry = New(ds.Classes, ds.Functions)
	})
	return defaultRegistry
}

func decodeTables(raw []byte) (dataset, error) {
	var ds dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return ds, errors.Wrap(err, "embedded signature tables")
	}
	return ds, nil
}

// ParseStubs reads a user supplied stub document, the yaml mirror of the
// embedded tables, used to extend the defaults with project specific
// classes and functions. Feed the result to Registry.Merge. An empty
// document yields empty tables, not an error.
func ParseStubs(src io.Reader) (map[string]map[string]string, map[string]Signature, error) {
	var ds dataset
	if err := yaml.NewDecoder(src).Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, &perrors.Error{Kind: perrors.StubErr, Err: err}
	}
	return ds.Classes, ds.Functions, nil
}
