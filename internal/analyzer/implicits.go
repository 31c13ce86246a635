package analyzer

import (
	"github.com/hdlvibe/vhdlang/internal/symbols"
)

// implicitsFor synthesizes the implicit subprograms a type declaration
// brings into its region: predefined operators, to_string, the file
// operations of file types and deallocate for access types. The entities
// are attached to the type; scopes publish them as implicit aliases.
func (r *Root) implicitsFor(typ *symbols.TypeEnt) []*symbols.AnyEnt {
	if _, isSubtype := typ.Def().(*symbols.SubtypeDef); isSubtype {
		// Subtypes share the operations of their base type.
		return nil
	}

	var implicits []*symbols.AnyEnt

	subprogram := func(designator symbols.Designator, params []*symbols.TypeEnt, ret *symbols.TypeEnt) {
		ent := symbols.NewImplicit(typ.Ent(), designator, &symbols.Subprogram{
			Sig: symbols.NewSignature(params, ret),
		}, tokenlessPos())
		ent.SetParent(typ.Ent())
		implicits = append(implicits, ent)
	}
	operator := func(op string, params []*symbols.TypeEnt, ret *symbols.TypeEnt) {
		subprogram(symbols.OperatorSymbol(op), params, ret)
	}

	tt := []*symbols.TypeEnt{typ, typ}
	boolean := r.std.boolean
	str := r.std.str

	equality := func() {
		operator("=", tt, boolean)
		operator("/=", tt, boolean)
	}
	ordering := func() {
		operator("<", tt, boolean)
		operator("<=", tt, boolean)
		operator(">", tt, boolean)
		operator(">=", tt, boolean)
		subprogram(symbols.Identifier("minimum"), tt, typ)
		subprogram(symbols.Identifier("maximum"), tt, typ)
	}
	toString := func() {
		subprogram(symbols.Identifier("to_string"), []*symbols.TypeEnt{typ}, str)
	}

	switch typ.BaseType().Def().(type) {
	case *symbols.EnumerationType:
		equality()
		ordering()
		toString()
	case *symbols.IntegerType:
		equality()
		ordering()
		toString()
		operator("+", tt, typ)
		operator("-", tt, typ)
		operator("*", tt, typ)
		operator("/", tt, typ)
		operator("mod", tt, typ)
		operator("rem", tt, typ)
		operator("+", []*symbols.TypeEnt{typ}, typ)
		operator("-", []*symbols.TypeEnt{typ}, typ)
		operator("abs", []*symbols.TypeEnt{typ}, typ)
	case *symbols.FloatingType:
		equality()
		ordering()
		toString()
		operator("+", tt, typ)
		operator("-", tt, typ)
		operator("*", tt, typ)
		operator("/", tt, typ)
		operator("+", []*symbols.TypeEnt{typ}, typ)
		operator("-", []*symbols.TypeEnt{typ}, typ)
		operator("abs", []*symbols.TypeEnt{typ}, typ)
	case *symbols.PhysicalType:
		equality()
		ordering()
		toString()
		operator("+", tt, typ)
		operator("-", tt, typ)
	case *symbols.ArrayType:
		equality()
		operator("&", tt, typ)
		toString()
	case *symbols.RecordType:
		equality()
	case *symbols.AccessType:
		equality()
		subprogram(symbols.Identifier("deallocate"), []*symbols.TypeEnt{typ}, nil)
	case *symbols.FileType:
		subprogram(symbols.Identifier("file_open"), []*symbols.TypeEnt{typ, str}, nil)
		subprogram(symbols.Identifier("file_open"), []*symbols.TypeEnt{r.std.fileOpenStatus, typ, str}, nil)
		subprogram(symbols.Identifier("file_close"), []*symbols.TypeEnt{typ}, nil)
		subprogram(symbols.Identifier("endfile"), []*symbols.TypeEnt{typ}, boolean)
	}

	return implicits
}
