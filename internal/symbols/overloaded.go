package symbols

import (
	"sort"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
)

// OverloadedKind marks entity kinds that participate in overload sets.
type OverloadedKind interface {
	Kind
	Signature() *Signature
}

// Subprogram is a function or procedure body (or a declaration that has been
// superseded by its body).
type Subprogram struct {
	Sig *Signature
}

func (s *Subprogram) kindName() string {
	if s.Sig.Return != nil {
		return "function"
	}
	return "procedure"
}
func (s *Subprogram) Signature() *Signature { return s.Sig }

// SubprogramDecl is a subprogram declaration awaiting its body.
type SubprogramDecl struct {
	Sig *Signature
}

func (s *SubprogramDecl) kindName() string {
	if s.Sig.Return != nil {
		return "function"
	}
	return "procedure"
}
func (s *SubprogramDecl) Signature() *Signature { return s.Sig }

// EnumLiteral is an enumeration literal; its signature is the parameterless
// function returning the enumeration type.
type EnumLiteral struct {
	Sig *Signature
}

func (*EnumLiteral) kindName() string          { return "enumeration literal" }
func (e *EnumLiteral) Signature() *Signature   { return e.Sig }

// OverloadedAlias is an alias of an overloaded entity; implicit declarations
// are published as aliases of the true subprogram entities.
type OverloadedAlias struct {
	Of OverloadedEnt
}

func (a *OverloadedAlias) kindName() string        { return a.Of.ent.Actual().kind.kindName() }
func (a *OverloadedAlias) Signature() *Signature   { return a.Of.Signature() }

// OverloadedEnt wraps an entity whose kind is overloadable.
type OverloadedEnt struct {
	ent *AnyEnt
}

// OverloadedFromAny wraps the entity if it is overloadable.
func OverloadedFromAny(ent *AnyEnt) (OverloadedEnt, bool) {
	if _, ok := ent.kind.(OverloadedKind); ok {
		return OverloadedEnt{ent: ent}, true
	}
	return OverloadedEnt{}, false
}

func (o OverloadedEnt) Ent() *AnyEnt           { return o.ent }
func (o OverloadedEnt) Designator() Designator { return o.ent.designator }

func (o OverloadedEnt) Signature() *Signature {
	return o.ent.kind.(OverloadedKind).Signature()
}

// AsActual follows alias chains to the designated subprogram entity.
func (o OverloadedEnt) AsActual() *AnyEnt {
	return o.ent.Actual()
}

func (o OverloadedEnt) IsImplicit() bool { return o.ent.IsImplicit() }
func (o OverloadedEnt) IsExplicit() bool { return !o.ent.IsImplicit() }

func (o OverloadedEnt) IsSubprogramDecl() bool {
	_, ok := o.ent.kind.(*SubprogramDecl)
	return ok
}

func (o OverloadedEnt) IsSubprogram() bool {
	_, ok := o.ent.kind.(*Subprogram)
	return ok
}

// IsProcedure reports whether the designated subprogram has no return type.
func (o OverloadedEnt) IsProcedure() bool {
	sig := o.Signature()
	if sig == nil {
		return false
	}
	if _, isEnum := o.AsActual().kind.(*EnumLiteral); isEnum {
		return false
	}
	return sig.Return == nil
}

// OverloadedSet is a non-empty collection of identically-designated
// overloadable entities keyed by signature.
type OverloadedSet struct {
	entities map[SignatureKey]OverloadedEnt
}

func newOverloadedSet(ents ...OverloadedEnt) *OverloadedSet {
	set := &OverloadedSet{entities: make(map[SignatureKey]OverloadedEnt, len(ents))}
	for _, ent := range ents {
		set.entities[ent.Signature().Key()] = ent
	}
	return set
}

func (s *OverloadedSet) Len() int { return len(s.entities) }

// First returns an arbitrary member; useful when any representative will do.
func (s *OverloadedSet) First() OverloadedEnt {
	for _, ent := range s.entities {
		return ent
	}
	panic("empty overload set")
}

func (s *OverloadedSet) Designator() Designator {
	return s.First().Designator()
}

// Entities returns the members in unspecified order.
func (s *OverloadedSet) Entities() []OverloadedEnt {
	ents := make([]OverloadedEnt, 0, len(s.entities))
	for _, ent := range s.entities {
		ents = append(ents, ent)
	}
	return ents
}

// SortedEntities returns the members ordered by declaration position, for
// stable reporting.
func (s *OverloadedSet) SortedEntities() []OverloadedEnt {
	ents := s.Entities()
	sort.SliceStable(ents, func(i, j int) bool {
		return ents[i].ent.declPos.Before(ents[j].ent.declPos)
	})
	return ents
}

// Get returns the member with the exact signature key.
func (s *OverloadedSet) Get(key SignatureKey) (OverloadedEnt, bool) {
	ent, ok := s.entities[key]
	return ent, ok
}

// AsUnique returns the sole member, if the set has exactly one.
func (s *OverloadedSet) AsUnique() (OverloadedEnt, bool) {
	if len(s.entities) == 1 {
		return s.First(), true
	}
	return OverloadedEnt{}, false
}

// insert applies the overload-set insertion rules. A returned diagnostic is
// a duplicate-declaration error with a cross-reference to the earlier
// declaration; nil means the insert was accepted or silently merged.
func (s *OverloadedSet) insert(ent OverloadedEnt) *diagnostics.Diagnostic {
	key := ent.Signature().Key()
	old, occupied := s.entities[key]
	if !occupied {
		s.entities[key] = ent
		return nil
	}

	switch {
	case old.IsImplicit() && ent.IsExplicit(),
		old.IsSubprogramDecl() && ent.IsSubprogram():
		// Explicit replaces implicit; body replaces declaration.
		s.entities[key] = ent
		return nil
	case old.IsImplicit() && ent.IsImplicit() && old.AsActual().id == ent.AsActual().id:
		// The same implicit republished through a type alias.
		return nil
	case old.IsExplicit() && ent.IsImplicit():
		return nil
	}

	diag := diagnostics.NewError(
		diagnostics.Duplicate,
		ent.ent.declPos,
		"Duplicate declaration of '"+ent.Designator().String()+"' with signature "+ent.Signature().Describe(),
	)
	if old.ent.declPos.Valid() {
		diag.AddRelated(old.ent.declPos, "Previously defined here")
	}
	return &diag
}

// withVisible merges potentially-visible members into an enclosing set.
// The merge is left-biased: the enclosing set wins on signature collision.
func (s *OverloadedSet) withVisible(visible *OverloadedSet) *OverloadedSet {
	merged := newOverloadedSet()
	for key, ent := range s.entities {
		merged.entities[key] = ent
	}
	for key, ent := range visible.entities {
		if _, taken := merged.entities[key]; !taken {
			merged.entities[key] = ent
		}
	}
	return merged
}
