package symbols

import (
	"sort"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/token"
)

type RegionKind int

const (
	RegionOther RegionKind = iota
	RegionPackageDeclaration
	RegionPackageBody
)

// Region is a flat declarative namespace: designator to entity or overload
// set. The kind flag governs the deferred-constant and protected-type-body
// rules.
type Region struct {
	visibility Visibility
	entities   map[Designator]*NamedEntities
	kind       RegionKind
}

func NewRegion() *Region {
	return &Region{entities: make(map[Designator]*NamedEntities)}
}

// InPackageDeclaration marks the region as a package specification.
func (r *Region) InPackageDeclaration() *Region {
	r.kind = RegionPackageDeclaration
	return r
}

func (r *Region) Kind() RegionKind { return r.kind }

// Clone produces a copy whose kind is promoted for body analysis:
// package-declaration becomes package-body, everything else becomes other.
func (r *Region) Clone() *Region {
	kind := RegionOther
	if r.kind == RegionPackageDeclaration {
		kind = RegionPackageBody
	}
	entities := make(map[Designator]*NamedEntities, len(r.entities))
	for des, named := range r.entities {
		if named.IsOverloaded() {
			entities[des] = newNamedOverloaded(named.overloaded.withVisible(newOverloadedSet()))
		} else {
			entities[des] = named.clone()
		}
	}
	return &Region{
		visibility: r.visibility.clone(),
		entities:   entities,
		kind:       kind,
	}
}

// Add inserts a newly-declared entity, reporting duplicate declarations and
// misplaced deferred constants.
func (r *Region) Add(ent *AnyEnt, diags diagnostics.Handler) {
	if ent.IsDeferredConstant() && r.kind != RegionPackageDeclaration {
		diags.Push(diagnostics.NewError(
			diagnostics.DeclarationNotAllowed,
			ent.declPos,
			"Deferred constants are only allowed in package declarations (not body)",
		))
		return
	}

	prev, occupied := r.entities[ent.designator]
	if !occupied {
		r.entities[ent.designator] = NewNamed(ent)
		return
	}

	if prev.IsOverloaded() {
		over, ok := OverloadedFromAny(ent)
		if !ok {
			first := prev.overloaded.First()
			if ent.declPos.Valid() {
				diags.Push(duplicateError(first.Designator(), ent.declPos, first.ent.declPos))
			}
			return
		}
		if diag := prev.overloaded.insert(over); diag != nil {
			diags.Push(*diag)
		}
		return
	}

	prevEnt := prev.single
	switch {
	case prevEnt.id == ent.id:
		// Updated definition of the previous entity (two-phase declaration).
		prev.single = ent
	case prevEnt.IsDeferredConstant() && ent.IsNonDeferredConstant():
		if r.kind == RegionPackageBody {
			prev.single = ent
		} else {
			diags.Push(diagnostics.NewError(
				diagnostics.DeclarationNotAllowed,
				ent.declPos,
				"Full declaration of deferred constant is only allowed in a package body",
			))
		}
	default:
		if ent.declPos.Valid() {
			diags.Push(duplicateError(prevEnt.designator, ent.declPos, prevEnt.declPos))
		}
	}
}

// LookupImmediate finds a designator declared in this region, without
// consulting parents or visibility.
func (r *Region) LookupImmediate(designator Designator) *NamedEntities {
	return r.entities[designator]
}

// Immediates returns every name declared in the region, ordered by the
// representative entity's declaration position.
func (r *Region) Immediates() []*NamedEntities {
	named := make([]*NamedEntities, 0, len(r.entities))
	for _, n := range r.entities {
		named = append(named, n)
	}
	sort.SliceStable(named, func(i, j int) bool {
		return named[i].First().declPos.Before(named[j].First().declPos)
	})
	return named
}

// Close runs the end-of-region checks: deferred constants must have been
// fulfilled and protected types must have bodies.
func (r *Region) Close(diags diagnostics.Handler) {
	r.checkDeferredConstantPairs(diags)
	r.checkProtectedTypesHaveBody(diags)
}

func (r *Region) checkDeferredConstantPairs(diags diagnostics.Handler) {
	if r.kind == RegionOther {
		return
	}
	for _, named := range r.Immediates() {
		ent := named.First()
		if ent.IsDeferredConstant() {
			diags.Push(diagnostics.NewError(
				diagnostics.MissingDeferredConstant,
				ent.declPos,
				"Deferred constant '"+ent.designator.Name+"' lacks corresponding full constant declaration in package body",
			))
		}
	}
}

func (r *Region) checkProtectedTypesHaveBody(diags diagnostics.Handler) {
	for _, named := range r.Immediates() {
		ent := named.First()
		if prot, ok := ent.kind.(*ProtectedType); ok && prot.BodyPos() == nil {
			diags.Push(diagnostics.NewError(
				diagnostics.MissingProtectedBody,
				ent.declPos,
				"Missing body for protected type '"+ent.designator.String()+"'",
			))
		}
	}
}

// ToEntityFormal snapshots the region's interface items as two ordered
// lists. Ports are interface objects of class signal; generics are the
// remaining interface items. Sorting by source start offset gives
// declaration order.
func (r *Region) ToEntityFormal() (generics, ports []*AnyEnt) {
	for _, named := range r.entities {
		ent := named.single
		if ent == nil {
			continue
		}
		switch kind := ent.kind.(type) {
		case *Object:
			if !kind.IsInterface() {
				continue
			}
			if kind.Class == ClassSignal {
				ports = append(ports, ent)
			} else {
				generics = append(generics, ent)
			}
		case *InterfaceFile, *InterfaceType:
			generics = append(generics, ent)
		}
	}
	byDeclPos := func(ents []*AnyEnt) {
		sort.SliceStable(ents, func(i, j int) bool {
			return ents[i].declPos.Before(ents[j].declPos)
		})
	}
	byDeclPos(generics)
	byDeclPos(ports)
	return generics, ports
}

func duplicateError(designator Designator, pos, prevPos token.Pos) diagnostics.Diagnostic {
	diag := diagnostics.NewError(
		diagnostics.Duplicate,
		pos,
		"Duplicate declaration of '"+designator.String()+"'",
	)
	if prevPos.Valid() {
		diag.AddRelated(prevPos, "Previously defined here")
	}
	return diag
}
