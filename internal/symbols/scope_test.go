package symbols

import (
	"testing"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
)

func lookupOK(t *testing.T, scope *Scope, designator Designator) *NamedEntities {
	t.Helper()
	named, diag := scope.Lookup(pos(999), designator)
	if diag != nil {
		t.Fatalf("lookup of %s failed: %s", designator, diag.Message)
	}
	return named
}

func TestLookupWalksEnclosingRegions(t *testing.T) {
	bag := diagnostics.NewBag()
	typ := newTestType("integer", 0)

	outer := NewScope(NewRegion())
	obj := newObject("clk", typ, 10)
	outer.Add(obj, bag)

	inner := outer.Nested()
	named := lookupOK(t, inner, Identifier("clk"))
	if named.Single() == nil || named.Single().ID() != obj.ID() {
		t.Fatal("nested scope must find names in enclosing regions")
	}
}

func TestInnerSingleShadowsOuter(t *testing.T) {
	bag := diagnostics.NewBag()
	typ := newTestType("integer", 0)

	outer := NewScope(NewRegion())
	outer.Add(newObject("clk", typ, 10), bag)

	inner := outer.Nested()
	shadow := newObject("clk", typ, 50)
	inner.Add(shadow, bag)
	expectNoDiags(t, bag)

	named := lookupOK(t, inner, Identifier("clk"))
	if named.Single().ID() != shadow.ID() {
		t.Fatal("an inner declaration must shadow the outer one")
	}
}

func TestOverloadMergeIsLeftBiased(t *testing.T) {
	bag := diagnostics.NewBag()
	int1 := newTestType("integer", 0)
	real1 := newTestType("real", 1)

	outer := NewScope(NewRegion())
	outerSame := newProcedure("p", []*TypeEnt{int1}, 10)
	outerOnly := newProcedure("p", []*TypeEnt{real1}, 20)
	outer.Add(outerSame, bag)
	outer.Add(outerOnly, bag)

	inner := outer.Nested()
	innerSame := newProcedure("p", []*TypeEnt{int1}, 50)
	inner.Add(innerSame, bag)
	expectNoDiags(t, bag)

	named := lookupOK(t, inner, Identifier("p"))
	set := named.Overloaded()
	if set.Len() != 2 {
		t.Fatalf("expected merged set of 2, got %d", set.Len())
	}
	same, _ := set.Get(NewSignature([]*TypeEnt{int1}, nil).Key())
	if same.Ent().ID() != innerSame.ID() {
		t.Error("on a signature collision the inner declaration must win")
	}
	if _, ok := set.Get(NewSignature([]*TypeEnt{real1}, nil).Key()); !ok {
		t.Error("non-conflicting outer overloads must be merged in")
	}
}

func TestSingleInParentDoesNotBlockCloserOverloads(t *testing.T) {
	bag := diagnostics.NewBag()
	typ := newTestType("integer", 0)

	outer := NewScope(NewRegion())
	outer.Add(newObject("p", typ, 10), bag)

	inner := outer.Nested()
	proc := newProcedure("p", []*TypeEnt{typ}, 50)
	inner.Add(proc, bag)

	named := lookupOK(t, inner, Identifier("p"))
	if !named.IsOverloaded() {
		t.Fatal("an overload set found closer in must win over a Single farther out")
	}
}

func TestSingleShadowsVisibleOverloads(t *testing.T) {
	bag := diagnostics.NewBag()
	typ := newTestType("integer", 0)

	used := NewRegion()
	used.Add(newProcedure("p", []*TypeEnt{typ}, 10), bag)

	scope := NewScope(NewRegion())
	scope.MakeAllPotentiallyVisible(nil, used)
	single := newObject("p", typ, 50)
	scope.Add(single, bag)
	expectNoDiags(t, bag)

	named := lookupOK(t, scope, Identifier("p"))
	if named.IsOverloaded() || named.Single().ID() != single.ID() {
		t.Fatal("a Single in the immediate region must beat any visible overload set")
	}
}

func TestVisibleOverloadsUnionWithEnclosing(t *testing.T) {
	bag := diagnostics.NewBag()
	int1 := newTestType("integer", 0)
	real1 := newTestType("real", 1)

	used := NewRegion()
	used.Add(newProcedure("p", []*TypeEnt{real1}, 10), bag)

	scope := NewScope(NewRegion())
	scope.MakeAllPotentiallyVisible(nil, used)
	scope.Add(newProcedure("p", []*TypeEnt{int1}, 50), bag)

	named := lookupOK(t, scope, Identifier("p"))
	if named.Overloaded().Len() != 2 {
		t.Fatal("visible overloads must union with the enclosing overload set")
	}
}

func TestVisibilityAmbiguity(t *testing.T) {
	bag := diagnostics.NewBag()
	typ := newTestType("integer", 0)

	pkg1 := NewRegion()
	pkg1.Add(newObject("k", typ, 10), bag)
	pkg2 := NewRegion()
	pkg2.Add(newObject("k", typ, 20), bag)

	scope := NewScope(NewRegion())
	scope.MakeAllPotentiallyVisible(nil, pkg1)
	scope.MakeAllPotentiallyVisible(nil, pkg2)

	_, diag := scope.Lookup(pos(99), Identifier("k"))
	if diag == nil {
		t.Fatal("conflicting non-overloadable visible names must be ambiguous")
	}
	if diag.Code != diagnostics.Ambiguous {
		t.Errorf("expected ambiguous_reference, got %s", diag.Code)
	}
	if len(diag.Related) != 2 {
		t.Errorf("expected one note per candidate, got %d", len(diag.Related))
	}
	if len(diag.Related) == 2 && !diag.Related[0].Pos.Before(diag.Related[1].Pos) {
		t.Error("candidates must be listed in declaration order")
	}
}

func TestNoDeclarationMessageShape(t *testing.T) {
	scope := NewScope(NewRegion())

	_, diag := scope.Lookup(pos(0), Identifier("missing"))
	if diag == nil || diag.Message != "No declaration of 'missing'" {
		t.Errorf("unexpected identifier message: %v", diag)
	}
	_, diag = scope.Lookup(pos(0), OperatorSymbol("+"))
	if diag == nil || diag.Message != "No declaration of operator '+'" {
		t.Errorf("unexpected operator message: %v", diag)
	}
}

func TestCacheInvalidationOnAdd(t *testing.T) {
	bag := diagnostics.NewBag()
	typ := newTestType("integer", 0)
	scope := NewScope(NewRegion())

	if _, diag := scope.Lookup(pos(0), Identifier("clk")); diag == nil {
		t.Fatal("expected a lookup failure before the declaration")
	}

	obj := newObject("clk", typ, 10)
	scope.Add(obj, bag)
	named := lookupOK(t, scope, Identifier("clk"))
	if named.Single().ID() != obj.ID() {
		t.Fatal("add must invalidate the cached miss for the designator")
	}
}

func TestCacheInvalidationOnVisibility(t *testing.T) {
	bag := diagnostics.NewBag()
	typ := newTestType("integer", 0)

	used := NewRegion()
	obj := newObject("k", typ, 10)
	used.Add(obj, bag)

	scope := NewScope(NewRegion())
	if _, diag := scope.Lookup(pos(0), Identifier("k")); diag == nil {
		t.Fatal("expected a lookup failure before the use clause")
	}
	scope.MakeAllPotentiallyVisible(nil, used)
	named := lookupOK(t, scope, Identifier("k"))
	if named.Single().ID() != obj.ID() {
		t.Fatal("make_all_potentially_visible must flush the cache")
	}
}

func TestLookupIsIdempotent(t *testing.T) {
	bag := diagnostics.NewBag()
	typ := newTestType("integer", 0)
	scope := NewScope(NewRegion())
	obj := newObject("clk", typ, 10)
	scope.Add(obj, bag)

	first := lookupOK(t, scope, Identifier("clk"))
	second := lookupOK(t, scope, Identifier("clk"))
	if first.Single().ID() != second.Single().ID() {
		t.Fatal("repeated lookups must resolve identically")
	}
}

func TestExtendPromotesKindAndSharesEntities(t *testing.T) {
	bag := diagnostics.NewBag()
	typ := newTestType("integer", 0)

	pkg := NewScope(NewRegion()).InPackageDeclaration()
	obj := newObject("k", typ, 10)
	pkg.Add(obj, bag)

	body := Extend(pkg.Region(), nil)
	if body.Region().Kind() != RegionPackageBody {
		t.Fatal("extend must promote package-declaration to package-body")
	}
	named := lookupOK(t, body, Identifier("k"))
	if named.Single().ID() != obj.ID() {
		t.Fatal("extended region must see the original declarations")
	}
	if prev := pkg.Region().Kind(); prev != RegionPackageDeclaration {
		t.Fatalf("extend must not mutate the source region, kind is now %d", prev)
	}
}

func TestBorrowedRegionRejectsMutation(t *testing.T) {
	typ := newTestType("integer", 0)
	region := NewRegion()
	scope := NewBorrowedScope(region)

	defer func() {
		if recover() == nil {
			t.Fatal("adding to a borrowed region must panic")
		}
	}()
	scope.Add(newObject("clk", typ, 10), diagnostics.NewBag())
}
