package types

import "strings"

// QualifiedName is the fully namespace qualified identity of a class or
// function, such as `\Phan\Language\Type` or `\strlen`. It is used verbatim
// as a lookup key into the builtin tables, so equality is exact string
// equality of the qualified form.
type QualifiedName string

func (q QualifiedName) String() string { return string(q) }

// Lower returns the lowercased form used for class lookups, which are case
// insensitive. Function lookups stay case sensitive and never use this.
func (q QualifiedName) Lower() string { return strings.ToLower(string(q)) }

// Equal reports exact, case sensitive equality with another name.
func (q QualifiedName) Equal(other QualifiedName) bool { return q == other }
