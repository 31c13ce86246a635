package symbols

import (
	"strings"
	"testing"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/token"
)

func pos(offset int) token.Pos {
	return token.Pos{File: "t.vhd", Line: 1, Column: offset + 1, Offset: offset, EndOffset: offset + 1}
}

func newTestType(name string, offset int) *TypeEnt {
	ent := NewEntity(Identifier(name), &IntegerType{}, pos(offset))
	typ, ok := TypeEntFromAny(ent)
	if !ok {
		panic("not a type")
	}
	return typ
}

func newObject(name string, typ *TypeEnt, offset int) *AnyEnt {
	return NewEntity(Identifier(name), &Object{
		Class:   ClassSignal,
		Subtype: NewSubtype(typ),
	}, pos(offset))
}

func newProcedure(name string, params []*TypeEnt, offset int) *AnyEnt {
	return NewEntity(Identifier(name), &Subprogram{
		Sig: NewSignature(params, nil),
	}, pos(offset))
}

func newFunction(name string, params []*TypeEnt, ret *TypeEnt, offset int) *AnyEnt {
	return NewEntity(Identifier(name), &Subprogram{
		Sig: NewSignature(params, ret),
	}, pos(offset))
}

func expectNoDiags(t *testing.T, bag *diagnostics.Bag) {
	t.Helper()
	if bag.Len() != 0 {
		var msgs []string
		for _, d := range bag.Items() {
			msgs = append(msgs, d.String())
		}
		t.Fatalf("expected no diagnostics, got:\n%s", strings.Join(msgs, "\n"))
	}
}

func expectOneDiag(t *testing.T, bag *diagnostics.Bag, code diagnostics.Code, contains string) diagnostics.Diagnostic {
	t.Helper()
	if bag.Len() != 1 {
		var msgs []string
		for _, d := range bag.Items() {
			msgs = append(msgs, d.String())
		}
		t.Fatalf("expected exactly one diagnostic, got %d:\n%s", bag.Len(), strings.Join(msgs, "\n"))
	}
	diag := bag.Items()[0]
	if diag.Code != code {
		t.Errorf("expected code %s, got %s (%s)", code, diag.Code, diag.Message)
	}
	if !strings.Contains(diag.Message, contains) {
		t.Errorf("expected message to contain %q, got %q", contains, diag.Message)
	}
	return diag
}

func TestDesignatorCaseInsensitivity(t *testing.T) {
	if Identifier("Clk") != Identifier("CLK") {
		t.Error("identifiers must compare case-insensitively")
	}
	if OperatorSymbol("AND") != OperatorSymbol("and") {
		t.Error("operator symbols are case-insensitive keywords")
	}
	if CharacterLiteral('a') == CharacterLiteral('A') {
		t.Error("character literals compare exactly")
	}
}

func TestAddAndLookupImmediate(t *testing.T) {
	bag := diagnostics.NewBag()
	region := NewRegion()
	typ := newTestType("integer", 0)
	obj := newObject("clk", typ, 10)
	region.Add(obj, bag)
	expectNoDiags(t, bag)

	named := region.LookupImmediate(Identifier("CLK"))
	if named == nil || named.Single() == nil || named.Single().ID() != obj.ID() {
		t.Fatal("lookup_immediate must find the declared entity under a case-folded designator")
	}
}

func TestDuplicateNonOverloadable(t *testing.T) {
	bag := diagnostics.NewBag()
	region := NewRegion()
	typ := newTestType("integer", 0)
	region.Add(newObject("clk", typ, 10), bag)
	region.Add(newObject("clk", typ, 20), bag)

	diag := expectOneDiag(t, bag, diagnostics.Duplicate, "Duplicate declaration of 'clk'")
	if diag.Pos.Offset != 20 {
		t.Errorf("error must be at the second declaration, got offset %d", diag.Pos.Offset)
	}
	if len(diag.Related) != 1 || diag.Related[0].Message != "Previously defined here" {
		t.Errorf("expected a 'Previously defined here' note, got %v", diag.Related)
	}
	if len(diag.Related) == 1 && diag.Related[0].Pos.Offset != 10 {
		t.Errorf("related note must point at the first declaration, got offset %d", diag.Related[0].Pos.Offset)
	}
}

func TestDuplicateWithSignature(t *testing.T) {
	bag := diagnostics.NewBag()
	region := NewRegion()
	typ := newTestType("integer", 0)
	region.Add(newProcedure("p", []*TypeEnt{typ}, 10), bag)
	region.Add(newProcedure("p", []*TypeEnt{typ}, 30), bag)

	diag := expectOneDiag(t, bag, diagnostics.Duplicate, "Duplicate declaration of 'p' with signature")
	if diag.Pos.Offset != 30 {
		t.Errorf("error must be at the second declaration, got offset %d", diag.Pos.Offset)
	}
	if len(diag.Related) != 1 || diag.Related[0].Pos.Offset != 10 {
		t.Errorf("related note must point at the first declaration, got %v", diag.Related)
	}
}

func TestDistinctSignaturesOverload(t *testing.T) {
	bag := diagnostics.NewBag()
	region := NewRegion()
	int1 := newTestType("integer", 0)
	int2 := newTestType("real", 1)
	region.Add(newProcedure("p", []*TypeEnt{int1}, 10), bag)
	region.Add(newProcedure("p", []*TypeEnt{int2}, 30), bag)
	expectNoDiags(t, bag)

	named := region.LookupImmediate(Identifier("p"))
	if named == nil || !named.IsOverloaded() || named.Overloaded().Len() != 2 {
		t.Fatal("distinct signatures must accumulate in one overload set")
	}
}

func TestBodyReplacesDeclaration(t *testing.T) {
	bag := diagnostics.NewBag()
	region := NewRegion()
	typ := newTestType("integer", 0)

	decl := NewEntity(Identifier("p"), &SubprogramDecl{Sig: NewSignature([]*TypeEnt{typ}, nil)}, pos(10))
	body := NewEntity(Identifier("p"), &Subprogram{Sig: NewSignature([]*TypeEnt{typ}, nil)}, pos(30))
	region.Add(decl, bag)
	region.Add(body, bag)
	expectNoDiags(t, bag)

	named := region.LookupImmediate(Identifier("p"))
	over, _ := named.Overloaded().AsUnique()
	if over.Ent().ID() != body.ID() {
		t.Error("a subprogram body must silently replace its declaration")
	}
}

func TestExplicitReplacesImplicit(t *testing.T) {
	bag := diagnostics.NewBag()
	region := NewRegion()
	typ := newTestType("t", 0)
	str := newTestType("string", 1)

	source := NewImplicit(typ.Ent(), Identifier("to_string"), &Subprogram{
		Sig: NewSignature([]*TypeEnt{typ}, str),
	}, token.Pos{})
	region.Add(source, bag)
	explicit := newFunction("to_string", []*TypeEnt{typ}, str, 40)
	region.Add(explicit, bag)
	expectNoDiags(t, bag)

	named := region.LookupImmediate(Identifier("to_string"))
	over, _ := named.Overloaded().AsUnique()
	if over.Ent().ID() != explicit.ID() {
		t.Error("an explicit declaration must silently replace the implicit one")
	}

	// And the implicit arriving second is silently ignored.
	region.Add(NewImplicit(typ.Ent(), Identifier("to_string"), &Subprogram{
		Sig: NewSignature([]*TypeEnt{typ}, str),
	}, token.Pos{}), bag)
	expectNoDiags(t, bag)
	named = region.LookupImmediate(Identifier("to_string"))
	over, _ = named.Overloaded().AsUnique()
	if over.Ent().ID() != explicit.ID() {
		t.Error("an implicit arriving after an explicit must be ignored")
	}
}

func TestSameImplicitSourceMergesSilently(t *testing.T) {
	bag := diagnostics.NewBag()
	region := NewRegion()
	typ := newTestType("t", 0)
	boolean := newTestType("boolean", 1)

	eq := NewImplicit(typ.Ent(), OperatorSymbol("="), &Subprogram{
		Sig: NewSignature([]*TypeEnt{typ, typ}, boolean),
	}, token.Pos{})
	over, _ := OverloadedFromAny(eq)

	first := NewImplicit(typ.Ent(), OperatorSymbol("="), &OverloadedAlias{Of: over}, pos(10))
	second := NewImplicit(typ.Ent(), OperatorSymbol("="), &OverloadedAlias{Of: over}, pos(20))
	region.Add(first, bag)
	region.Add(second, bag)
	expectNoDiags(t, bag)
}

func TestTwoPhaseReplaceSameID(t *testing.T) {
	bag := diagnostics.NewBag()
	region := NewRegion()
	placeholder := NewEntity(Identifier("t"), &IncompleteType{}, pos(5))
	region.Add(placeholder, bag)

	full := placeholder.WithKind(&IntegerType{})
	region.Add(full, bag)
	expectNoDiags(t, bag)

	named := region.LookupImmediate(Identifier("t"))
	if _, ok := named.Single().Kind().(*IntegerType); !ok {
		t.Error("same-id add must upgrade the placeholder in place")
	}
}

func TestDeferredConstantRules(t *testing.T) {
	typ := newTestType("integer", 0)
	newDeferred := func(offset int) *AnyEnt {
		return NewEntity(Identifier("k"), &DeferredConstant{Subtype: NewSubtype(typ)}, pos(offset))
	}
	newFull := func(offset int) *AnyEnt {
		return NewEntity(Identifier("k"), &Object{Class: ClassConstant, Subtype: NewSubtype(typ)}, pos(offset))
	}

	t.Run("rejected outside package declarations", func(t *testing.T) {
		bag := diagnostics.NewBag()
		region := NewRegion()
		region.Add(newDeferred(10), bag)
		expectOneDiag(t, bag, diagnostics.DeclarationNotAllowed, "Deferred constants are only allowed in package declarations")
	})

	t.Run("full declaration allowed in package body", func(t *testing.T) {
		bag := diagnostics.NewBag()
		region := NewRegion().InPackageDeclaration()
		region.Add(newDeferred(10), bag)
		expectNoDiags(t, bag)

		body := region.Clone()
		if body.Kind() != RegionPackageBody {
			t.Fatal("cloning a package declaration must promote it to a package body")
		}
		body.Add(newFull(50), bag)
		expectNoDiags(t, bag)

		body.Close(bag)
		expectNoDiags(t, bag)
	})

	t.Run("full declaration rejected in package declaration", func(t *testing.T) {
		bag := diagnostics.NewBag()
		region := NewRegion().InPackageDeclaration()
		region.Add(newDeferred(10), bag)
		region.Add(newFull(50), bag)
		expectOneDiag(t, bag, diagnostics.DeclarationNotAllowed, "only allowed in a package body")
	})

	t.Run("unfulfilled deferred constant reported at close", func(t *testing.T) {
		bag := diagnostics.NewBag()
		region := NewRegion().InPackageDeclaration()
		region.Add(newDeferred(10), bag)
		body := region.Clone()
		body.Close(bag)
		diag := expectOneDiag(t, bag, diagnostics.MissingDeferredConstant,
			"Deferred constant 'k' lacks corresponding full constant declaration in package body")
		if diag.Pos.Offset != 10 {
			t.Errorf("error must be at the deferred declaration, got offset %d", diag.Pos.Offset)
		}
	})
}

func TestProtectedTypeBodyTracking(t *testing.T) {
	t.Run("missing body reported at close", func(t *testing.T) {
		bag := diagnostics.NewBag()
		region := NewRegion()
		prot := NewEntity(Identifier("shared_t"), &ProtectedType{Region: NewRegion()}, pos(10))
		region.Add(prot, bag)
		region.Close(bag)
		expectOneDiag(t, bag, diagnostics.MissingProtectedBody, "Missing body for protected type 'shared_t'")
	})

	t.Run("body position set once", func(t *testing.T) {
		bag := diagnostics.NewBag()
		region := NewRegion()
		kind := &ProtectedType{Region: NewRegion()}
		region.Add(NewEntity(Identifier("shared_t"), kind, pos(10)), bag)

		if !kind.SetBodyPos(pos(50)) {
			t.Fatal("first body position must be accepted")
		}
		if kind.SetBodyPos(pos(90)) {
			t.Fatal("second body position must be rejected")
		}
		if got := kind.BodyPos(); got == nil || got.Offset != 50 {
			t.Fatalf("body position must stay at the first value, got %v", got)
		}

		region.Close(bag)
		expectNoDiags(t, bag)
	})
}

func TestToEntityFormalOrdering(t *testing.T) {
	bag := diagnostics.NewBag()
	region := NewRegion()
	typ := newTestType("bit", 0)

	mode := ModeIn
	addInterface := func(name string, class ObjectClass, offset int) {
		m := mode
		region.Add(NewEntity(Identifier(name), &Object{
			Class:   class,
			Mode:    &m,
			Subtype: NewSubtype(typ),
		}, pos(offset)), bag)
	}

	// Declared out of offset order on purpose.
	addInterface("clk", ClassSignal, 40)
	addInterface("depth", ClassConstant, 10)
	addInterface("rst", ClassSignal, 20)
	addInterface("width", ClassConstant, 30)
	expectNoDiags(t, bag)

	generics, ports := region.ToEntityFormal()
	wantGenerics := []string{"depth", "width"}
	wantPorts := []string{"rst", "clk"}
	for i, want := range wantGenerics {
		if generics[i].Designator().Name != want {
			t.Errorf("generic %d: want %s, got %s", i, want, generics[i].Designator().Name)
		}
	}
	for i, want := range wantPorts {
		if ports[i].Designator().Name != want {
			t.Errorf("port %d: want %s, got %s", i, want, ports[i].Designator().Name)
		}
	}
}
