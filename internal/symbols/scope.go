package symbols

import (
	"maps"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// Scope is a lexical stack frame over a region. A scope either owns its
// region (a freshly-entered declarative part) or borrows a closed one;
// mutating a borrowed region is a programmer error.
//
// The cache records fully-resolved lookups (region + parents + visibility)
// and is invalidated on any mutation that could change a lookup outcome at
// this scope.
type Scope struct {
	parent *Scope
	region *Region
	owned  bool

	cache map[Designator]*NamedEntities
}

// NewScope creates a root scope owning a fresh region.
func NewScope(region *Region) *Scope {
	return &Scope{region: region, owned: true, cache: make(map[Designator]*NamedEntities)}
}

// NewBorrowedScope wraps an already-closed region for read-only lookup.
func NewBorrowedScope(region *Region) *Scope {
	return &Scope{region: region, owned: false, cache: make(map[Designator]*NamedEntities)}
}

// Region exposes the scope's region.
func (s *Scope) Region() *Region { return s.region }

// Nested produces a child scope with an empty owned region. The child
// starts from a snapshot of the parent's cache: cached results stay valid
// in the child until the child itself mutates.
func (s *Scope) Nested() *Scope {
	return &Scope{
		parent: s,
		region: NewRegion(),
		owned:  true,
		cache:  maps.Clone(s.cache),
	}
}

// Extend re-enters a previously-closed region for body analysis: the region
// is cloned with its kind promoted (package-declaration becomes
// package-body) and the clone is owned by the new scope.
func Extend(region *Region, parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		region: region.Clone(),
		owned:  true,
		cache:  make(map[Designator]*NamedEntities),
	}
}

// WithParent rebinds the scope under a new parent, restarting the cache.
func (s *Scope) WithParent(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		region: s.region,
		owned:  s.owned,
		cache:  make(map[Designator]*NamedEntities),
	}
}

// InPackageDeclaration marks the owned region as a package specification.
func (s *Scope) InPackageDeclaration() *Scope {
	s.mustOwn()
	s.region.InPackageDeclaration()
	return s
}

func (s *Scope) mustOwn() {
	if !s.owned {
		panic("mutating a borrowed region")
	}
}

// Add declares an entity in this scope's region.
func (s *Scope) Add(ent *AnyEnt, diags diagnostics.Handler) {
	s.mustOwn()
	delete(s.cache, ent.designator)
	s.region.Add(ent, diags)
}

// AddImplicitAliases publishes the implicit declarations of a type entity as
// implicit aliases in this scope.
func (s *Scope) AddImplicitAliases(ent *AnyEnt, diags diagnostics.Handler) {
	for _, implicit := range ent.Actual().Implicits() {
		over, ok := OverloadedFromAny(implicit)
		if !ok {
			continue
		}
		alias := NewImplicit(ent, implicit.designator, &OverloadedAlias{Of: over}, ent.declPos)
		s.Add(alias, diags)
	}
}

// MakePotentiallyVisible adds one entity to this scope's visibility set.
func (s *Scope) MakePotentiallyVisible(visiblePos *token.Pos, ent *AnyEnt) {
	s.MakePotentiallyVisibleWithName(visiblePos, ent.designator, ent)
}

// MakePotentiallyVisibleWithName adds an entity under an explicit designator
// (aliasing through use clauses).
func (s *Scope) MakePotentiallyVisibleWithName(visiblePos *token.Pos, designator Designator, ent *AnyEnt) {
	s.mustOwn()
	delete(s.cache, designator)
	s.region.visibility.makePotentiallyVisibleWithName(visiblePos, designator, ent)
}

// MakeAllPotentiallyVisible makes every name of a region potentially
// visible (`use lib.pkg.all`).
func (s *Scope) MakeAllPotentiallyVisible(visiblePos *token.Pos, region *Region) {
	s.mustOwn()
	clear(s.cache)
	s.region.visibility.makeAllPotentiallyVisible(visiblePos, region)
}

// AddContextVisibility merges a context declaration's visibility into this
// scope.
func (s *Scope) AddContextVisibility(visiblePos *token.Pos, region *Region) {
	s.mustOwn()
	clear(s.cache)
	s.region.visibility.addContextVisibility(visiblePos, &region.visibility)
}

// Close runs the region's end-of-region checks.
func (s *Scope) Close(diags diagnostics.Handler) {
	s.region.Close(diags)
}

// LookupImmediate searches only this scope's region.
func (s *Scope) LookupImmediate(designator Designator) *NamedEntities {
	return s.region.LookupImmediate(designator)
}

// Lookup resolves a designator from within this scope: the enclosing
// regions first, then the visibility sets. The error return is the
// diagnostic to report (no declaration, or ambiguity).
func (s *Scope) Lookup(pos token.Pos, designator Designator) (*NamedEntities, *diagnostics.Diagnostic) {
	if cached, ok := s.cache[designator]; ok {
		return cached, nil
	}
	named, diag := s.lookupUncached(pos, designator)
	if diag != nil {
		return nil, diag
	}
	s.cache[designator] = named
	return named, nil
}

// lookupEnclosing searches this region and then the parent chain. A Single
// in the immediate region shadows everything above; an overloaded result is
// merged left-biased with overloaded results from enclosing regions.
func (s *Scope) lookupEnclosing(designator Designator) *NamedEntities {
	named := s.region.LookupImmediate(designator)
	if named == nil {
		if s.parent != nil {
			return s.parent.lookupEnclosing(designator)
		}
		return nil
	}
	if !named.IsOverloaded() {
		// A non-overloaded name in the immediate region; no need to look
		// further up.
		return named
	}
	if s.parent != nil {
		if enclosing := s.parent.lookupEnclosing(designator); enclosing != nil && enclosing.IsOverloaded() {
			return newNamedOverloaded(named.overloaded.withVisible(enclosing.overloaded))
		}
	}
	return named
}

func (s *Scope) lookupVisibilityInto(designator Designator, visible *Visible) {
	s.region.visibility.lookupInto(designator, visible)
	if s.parent != nil {
		s.parent.lookupVisibilityInto(designator, visible)
	}
}

// lookupVisible searches what use and context clauses made potentially
// visible, across the whole scope chain.
func (s *Scope) lookupVisible(pos token.Pos, designator Designator) (*NamedEntities, *diagnostics.Diagnostic) {
	var visible Visible
	s.lookupVisibilityInto(designator, &visible)
	return visible.IntoUnambiguous(pos, designator)
}

func (s *Scope) lookupUncached(pos token.Pos, designator Designator) (*NamedEntities, *diagnostics.Diagnostic) {
	enclosing := s.lookupEnclosing(designator)
	if enclosing != nil && !enclosing.IsOverloaded() {
		// A non-overloaded name in an enclosing region ignores any visible
		// overloaded names.
		return enclosing, nil
	}

	visible, diag := s.lookupVisible(pos, designator)
	if enclosing != nil {
		// In case of an overloaded local, non-conflicting visible names are
		// still relevant.
		if diag == nil && visible != nil && visible.IsOverloaded() {
			return newNamedOverloaded(enclosing.overloaded.withVisible(visible.overloaded)), nil
		}
		return enclosing, nil
	}
	if diag != nil {
		return nil, diag
	}
	if visible != nil {
		return visible, nil
	}

	var message string
	switch designator.Kind {
	case DesignatorOperator:
		message = "No declaration of operator '" + designator.Name + "'"
	default:
		message = "No declaration of '" + designator.Name + "'"
	}
	missing := diagnostics.NewError(diagnostics.NoDeclaration, pos, message)
	return nil, &missing
}
