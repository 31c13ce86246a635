package analyzer

import (
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

func tokenlessPos() token.Pos {
	return token.Pos{}
}

// bootstrapStd builds the std library with the standard and textio packages
// the way user packages are built, minus parsing: predefined types, their
// enumeration literals and physical units, and the implicit subprograms
// every type brings with it.
func (r *Root) bootstrapStd() {
	std := r.EnsureLibrary("std")
	sink := discardDiagnostics{}

	standard := symbols.NewRegion().InPackageDeclaration()
	scope := symbols.NewScope(standard)

	declare := func(ent *symbols.AnyEnt) {
		scope.Add(ent, sink)
	}

	newType := func(name string, def symbols.TypeDef) *symbols.TypeEnt {
		ent := symbols.NewEntity(symbols.Identifier(name), def, tokenlessPos())
		typ, _ := symbols.TypeEntFromAny(ent)
		return typ
	}

	enumType := func(name string, literals ...symbols.Designator) *symbols.TypeEnt {
		def := &symbols.EnumerationType{}
		typ := newType(name, def)
		for _, lit := range literals {
			litEnt := symbols.NewEntity(lit, &symbols.EnumLiteral{
				Sig: symbols.NewSignature(nil, typ),
			}, tokenlessPos())
			litEnt.SetParent(typ.Ent())
			def.Literals = append(def.Literals, litEnt)
		}
		return typ
	}

	idents := func(names ...string) []symbols.Designator {
		des := make([]symbols.Designator, len(names))
		for i, name := range names {
			des[i] = symbols.Identifier(name)
		}
		return des
	}

	chars := func(cs ...rune) []symbols.Designator {
		des := make([]symbols.Designator, len(cs))
		for i, c := range cs {
			des[i] = symbols.CharacterLiteral(c)
		}
		return des
	}

	// Scalar types. Character covers the printable ASCII range; that is
	// what character-literal matching needs in practice.
	boolean := enumType("boolean", idents("false", "true")...)
	bit := enumType("bit", chars('0', '1')...)
	var printable []symbols.Designator
	for c := rune(' '); c <= '~'; c++ {
		printable = append(printable, symbols.CharacterLiteral(c))
	}
	character := enumType("character", printable...)
	severityLevel := enumType("severity_level", idents("note", "warning", "error", "failure")...)
	integer := newType("integer", &symbols.IntegerType{})
	realType := newType("real", &symbols.FloatingType{})

	timeDef := &symbols.PhysicalType{}
	timeType := newType("time", timeDef)
	for _, unit := range []string{"fs", "ps", "ns", "us", "ms", "sec", "min", "hr"} {
		unitEnt := symbols.NewEntity(symbols.Identifier(unit), &symbols.PhysicalLiteral{BaseType: timeType}, tokenlessPos())
		unitEnt.SetParent(timeType.Ent())
		timeDef.Units = append(timeDef.Units, unitEnt)
	}

	natural := newType("natural", &symbols.SubtypeDef{Subtype: symbols.NewSubtype(integer)})
	positive := newType("positive", &symbols.SubtypeDef{Subtype: symbols.NewSubtype(integer)})

	str := newType("string", &symbols.ArrayType{
		Indexes:  []*symbols.TypeEnt{positive},
		ElemType: character,
	})
	bitVector := newType("bit_vector", &symbols.ArrayType{
		Indexes:  []*symbols.TypeEnt{natural},
		ElemType: bit,
	})

	fileOpenKind := enumType("file_open_kind", idents("read_mode", "write_mode", "append_mode")...)
	fileOpenStatus := enumType("file_open_status", idents("open_ok", "status_error", "name_error", "mode_error")...)

	r.std = stdTypes{
		boolean:        boolean,
		bit:            bit,
		character:      character,
		severityLevel:  severityLevel,
		integer:        integer,
		natural:        natural,
		positive:       positive,
		real:           realType,
		timeType:       timeType,
		str:            str,
		bitVector:      bitVector,
		fileOpenKind:   fileOpenKind,
		fileOpenStatus: fileOpenStatus,
		standardRegion: standard,
	}

	types := []*symbols.TypeEnt{
		boolean, bit, character, severityLevel, integer, realType,
		timeType, natural, positive, str, bitVector,
		fileOpenKind, fileOpenStatus,
	}
	for _, typ := range types {
		typ.Ent().SetImplicits(r.implicitsFor(typ))
		declare(typ.Ent())
		declareTypeCompanions(scope, typ, sink)
	}

	stdPkg := symbols.NewEntity(
		symbols.Identifier("standard"),
		&symbols.Design{Kind: symbols.DesignPackage, Region: standard},
		tokenlessPos(),
	)
	r.RegisterUnit(std, stdPkg, sink)

	r.bootstrapTextio(std, sink)
}

// declareTypeCompanions publishes the entities a type declaration carries
// with it: enumeration literals, physical units and implicit subprograms.
func declareTypeCompanions(scope *symbols.Scope, typ *symbols.TypeEnt, diags diagnostics.Handler) {
	switch def := typ.Def().(type) {
	case *symbols.EnumerationType:
		for _, lit := range def.Literals {
			scope.Add(lit, diags)
		}
	case *symbols.PhysicalType:
		for _, unit := range def.Units {
			scope.Add(unit, diags)
		}
	}
	scope.AddImplicitAliases(typ.Ent(), diags)
}

func (r *Root) bootstrapTextio(std *LibraryData, sink diagnostics.Handler) {
	region := symbols.NewRegion().InPackageDeclaration()
	scope := symbols.NewScope(region)

	lineEnt := symbols.NewEntity(
		symbols.Identifier("line"),
		&symbols.AccessType{Subtype: symbols.NewSubtype(r.std.str)},
		tokenlessPos(),
	)
	lineType, _ := symbols.TypeEntFromAny(lineEnt)
	lineType.Ent().SetImplicits(r.implicitsFor(lineType))
	scope.Add(lineEnt, sink)
	declareTypeCompanions(scope, lineType, sink)

	textEnt := symbols.NewEntity(
		symbols.Identifier("text"),
		&symbols.FileType{Subtype: symbols.NewSubtype(r.std.str)},
		tokenlessPos(),
	)
	textType, _ := symbols.TypeEntFromAny(textEnt)
	textType.Ent().SetImplicits(r.implicitsFor(textType))
	scope.Add(textEnt, sink)
	declareTypeCompanions(scope, textType, sink)

	textio := symbols.NewEntity(
		symbols.Identifier("textio"),
		&symbols.Design{Kind: symbols.DesignPackage, Region: region},
		tokenlessPos(),
	)
	r.RegisterUnit(std, textio, sink)
}

// discardDiagnostics swallows diagnostics produced while bootstrapping the
// predefined packages; by construction there are none worth reporting.
type discardDiagnostics struct{}

func (discardDiagnostics) Push(diagnostics.Diagnostic) {}
