package types

// Hierarchy answers class to class compatibility questions. It is owned by
// the analysis layer, which holds the full class graph; the engine only
// consumes this narrow view of it. A nil Hierarchy permits no class casts
// beyond exact name equality.
type Hierarchy interface {
	CanCast(from, to QualifiedName) bool
}

// CanCast reports whether a value of this type may be used where the target
// type is expected. The relation is permissive and directional: int widens
// to float but not back, null, mixed and none cast freely both ways, typed
// and untyped arrays cross over each other and iterable, and class to class
// casts defer to the injected Hierarchy.
func (t *Atomic) CanCast(target *Atomic, h Hierarchy) bool {
	if t == target {
		return true
	}
	a, b := t.base, target.base
	if a == b {
		return true
	}
	if a == Null || b == Null || a == Mixed || b == Mixed || a == None || b == None {
		return true
	}
	if a == Int && b == Float {
		return true
	}
	if a.kind == kindGeneric {
		if b == Array || b == Iterable {
			return true
		}
		if b.kind == kindGeneric {
			return a.elem.CanCast(b.elem, h)
		}
		return false
	}
	if (a == Array || a == Iterable) && (b.kind == kindGeneric || b == Array || b == Iterable) {
		return true
	}
	if a.kind == kindClass {
		if b == Object {
			return true
		}
		if b.kind == kindClass && h != nil {
			return h.CanCast(a.QualifiedName(), b.QualifiedName())
		}
		return false
	}
	if a == Object && b.kind == kindClass {
		return true
	}
	return false
}

// CanCast decides whether an expression of this union type may be used where
// the target union type is expected. The rules run in fixed priority order
// and short circuit on the first match:
//
//  1. identical canonical forms cast
//  2. an empty union on either side casts, so unresolved types never error
//  3. a union that is exactly null casts on either side
//  4. a union containing mixed casts on either side
//  5. exactly int casts to exactly float, and not the other way around
//  6. otherwise any source member castable to any target member decides it
//
// The permissiveness of rules 2 through 5 trades missed true errors for
// fewer false positives and is part of the contract, not a soft spot.
func (u *Union) CanCast(target *Union, h Hierarchy) bool {
	if u.String() == target.String() {
		return true
	}
	if u.Size() == 0 || target.Size() == 0 {
		return true
	}
	if u.IsType(Null) || target.IsType(Null) {
		return true
	}
	if u.HasType(Mixed) || target.HasType(Mixed) {
		return true
	}
	if u.IsType(Int) && target.IsType(Float) {
		return true
	}
	for _, from := range u.members {
		for _, to := range target.members {
			if from.CanCast(to, h) {
				return true
			}
		}
	}
	return false
}
