// Package phan is the type representation and subtyping engine of a static
// analyzer for PHP source. It models the union types of expressions, decides
// cast compatibility between them, and carries the signature tables of the
// PHP standard library.
//
//	The engine is deliberately permissive: analysis should flag code that is
//	certainly wrong, not code it merely cannot prove right, so unknown types
//	and `mixed` cast freely and `int` quietly widens to `float`.
//
//	Parsing the source language, inferring node types, and building the class
//	hierarchy live in the analysis layer above this module; their boundaries
//	appear here only as small interfaces. This package is a thin convenience
//	facade, most of the machinery lives in the packages under src.
package phan
