package analyzer

import (
	"fmt"

	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
)

// analyzeAliasDeclaration declares an alias: of an object, of a type
// (republishing its implicit operations) or of one overload selected by
// signature.
func (a *Analyzer) analyzeAliasDeclaration(scope *symbols.Scope, decl *ast.AliasDeclaration, diags diagnostics.Handler) {
	named := a.resolveName(scope, ast.Pos(decl.Name), decl.Name, diags)
	if named == nil {
		return
	}
	designator := decl.Designator.Designator()
	pos := ast.Pos(decl.Designator)

	if decl.Subtype != nil {
		a.analyzeSubtypeIndication(scope, decl.Subtype, diags)
	}

	if decl.Signature != nil {
		if !named.IsOverloaded() {
			diags.Push(kindError(named.Single(), ast.Pos(decl.Name), "subprogram or enumeration literal"))
			return
		}
		sig, diag := a.resolveSignature(scope, decl.Signature)
		if diag != nil {
			diags.Push(*diag)
			return
		}
		ent, ok := named.Overloaded().Get(sig.Key())
		if !ok {
			diag := diagnostics.NewError(
				diagnostics.NoDeclaration,
				ast.Pos(decl.Name),
				fmt.Sprintf("Could not find declaration of '%s' with given signature", named.Designator()),
			)
			addSubprogramCandidates(&diag, named.Overloaded())
			diags.Push(diag)
			return
		}
		alias := symbols.NewEntity(designator, &symbols.OverloadedAlias{Of: ent}, pos)
		decl.Designator.Ref = alias
		scope.Add(alias, diags)
		return
	}

	if named.IsOverloaded() {
		diags.Push(diagnostics.NewError(
			diagnostics.MismatchedKind,
			ast.Pos(decl.Name),
			fmt.Sprintf("Signature required for alias of overloaded name '%s'", named.Designator()),
		))
		return
	}

	aliased := named.Single()
	if typ, isType := symbols.TypeEntFromAny(aliased.Actual()); isType {
		// A non-object alias of a type republishes the type's implicit
		// operations; sharing the source entities keeps the republication
		// silent.
		alias := symbols.NewEntity(designator, typ.Ent().Kind(), pos)
		alias.SetImplicits(typ.Ent().Implicits())
		decl.Designator.Ref = alias
		scope.Add(alias, diags)
		scope.AddImplicitAliases(alias, diags)
		return
	}

	typeMark := typeMarkOfSlicedOrIndexed(aliased)
	if typeMark == nil {
		if file, isFile := aliased.Kind().(*symbols.FileEnt); isFile {
			typeMark = file.Subtype.TypeMark()
		}
	}
	alias := symbols.NewEntity(designator, &symbols.ObjectAlias{
		Aliased:  aliased,
		TypeMark: typeMark,
	}, pos)
	decl.Designator.Ref = alias
	scope.Add(alias, diags)
}
