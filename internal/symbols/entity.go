package symbols

import (
	"sync/atomic"

	"github.com/hdlvibe/vhdlang/internal/token"
)

// EntityID is a stable, process-unique identity for a declared entity.
// Identity equality is by id.
type EntityID uint64

var nextEntityID atomic.Uint64

// AnyEnt is an immutable descriptor of a declared thing: its identity, its
// designator, its optional declaration position and its kind-specific
// payload. Entities are shared freely between regions and AST reference
// slots and are never freed individually; an analysis session owns them all.
type AnyEnt struct {
	id         EntityID
	designator Designator
	declPos    token.Pos
	kind       Kind
	parent     *AnyEnt

	// implicitOf links an implicit declaration back to the entity that
	// triggered it (the user type for synthesized operators, to_string,
	// file subprograms...). nil for explicit declarations.
	implicitOf *AnyEnt

	// implicits are the subprograms synthesized when this entity is a type
	// declaration. Populated before the entity is published to a region.
	implicits []*AnyEnt
}

// NewEntity allocates an entity with a fresh id.
func NewEntity(designator Designator, kind Kind, declPos token.Pos) *AnyEnt {
	return &AnyEnt{
		id:         EntityID(nextEntityID.Add(1)),
		designator: designator,
		declPos:    declPos,
		kind:       kind,
	}
}

// NewImplicit allocates an implicit declaration pointing back at the entity
// that gave rise to it.
func NewImplicit(of *AnyEnt, designator Designator, kind Kind, declPos token.Pos) *AnyEnt {
	ent := NewEntity(designator, kind, declPos)
	ent.implicitOf = of
	return ent
}

// WithKind returns a copy of the entity carrying a new kind but the same id.
// Supports two-phase declarations where a placeholder entity is later
// upgraded (incomplete types, subprogram declaration vs body).
func (e *AnyEnt) WithKind(kind Kind) *AnyEnt {
	clone := *e
	clone.kind = kind
	return &clone
}

func (e *AnyEnt) ID() EntityID           { return e.id }
func (e *AnyEnt) Designator() Designator { return e.designator }
func (e *AnyEnt) DeclPos() token.Pos     { return e.declPos }
func (e *AnyEnt) Kind() Kind             { return e.kind }
func (e *AnyEnt) Parent() *AnyEnt        { return e.parent }

// SetParent records the owning entity. Called before publication only.
func (e *AnyEnt) SetParent(parent *AnyEnt) { e.parent = parent }

// SetImplicits attaches the synthesized subprograms of a type entity.
// Called before publication only.
func (e *AnyEnt) SetImplicits(implicits []*AnyEnt) { e.implicits = implicits }

// Implicits returns the subprograms synthesized for this entity.
func (e *AnyEnt) Implicits() []*AnyEnt { return e.implicits }

// IsImplicit reports whether the entity was synthesized rather than written
// by the user.
func (e *AnyEnt) IsImplicit() bool { return e.implicitOf != nil }

// ImplicitOf returns the entity that triggered this implicit declaration.
func (e *AnyEnt) ImplicitOf() *AnyEnt { return e.implicitOf }

// ActualKind unwraps overloaded alias chains and returns the kind of the
// entity ultimately referred to.
func (e *AnyEnt) ActualKind() Kind {
	return e.Actual().kind
}

// Actual follows overloaded alias chains to the designated entity.
func (e *AnyEnt) Actual() *AnyEnt {
	ent := e
	for {
		alias, ok := ent.kind.(*OverloadedAlias)
		if !ok {
			return ent
		}
		ent = alias.Of.ent
	}
}

// IsOverloadable reports whether the entity participates in overload sets.
func (e *AnyEnt) IsOverloadable() bool {
	_, ok := e.kind.(OverloadedKind)
	return ok
}

// IsDeferredConstant reports whether this is a deferred constant declared in
// a package specification.
func (e *AnyEnt) IsDeferredConstant() bool {
	_, ok := e.kind.(*DeferredConstant)
	return ok
}

// IsNonDeferredConstant reports whether this is a full constant declaration.
func (e *AnyEnt) IsNonDeferredConstant() bool {
	obj, ok := e.kind.(*Object)
	return ok && obj.Class == ClassConstant
}
