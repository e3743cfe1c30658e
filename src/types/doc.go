// Package types contains all the structures used to represent the possible
// types of analyzed expressions, and to check them against each other. A
// Union is built up member by member while an expression is inferred, and is
// treated as read only afterwards for cast checks, projection and
// serialization. Atomic values are interned so that every mention of one
// canonical type name shares a single immutable instance.
// One sidenote on cast checking: the relation is deliberately permissive on
// unknown, mixed and null inputs so that unresolved types never produce a
// false error. That bias loses some true errors and is the intended trade
// off, not something to tighten.
package types //nolint:revive
