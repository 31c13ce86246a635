package analyzer

import (
	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
)

// analyzeTypeDeclaration declares a type and everything it carries with it:
// enumeration literals, physical units, implicit subprograms.
func (a *Analyzer) analyzeTypeDeclaration(scope *symbols.Scope, decl *ast.TypeDeclaration, diags diagnostics.Handler) {
	designator := decl.Ident.Designator()

	if decl.Def == nil {
		// Incomplete type declaration: publish a placeholder that the full
		// declaration later upgrades under the same id.
		ent := symbols.NewEntity(designator, &symbols.IncompleteType{}, ast.Pos(decl.Ident))
		decl.Ident.Ref = ent
		scope.Add(ent, diags)
		return
	}

	if body, isBody := decl.Def.(*ast.ProtectedTypeBody); isBody {
		a.analyzeProtectedTypeBody(scope, decl, body, diags)
		return
	}

	var def symbols.TypeDef
	var literals []*symbols.AnyEnt
	var units []*symbols.AnyEnt
	var protectedDecls []ast.Declaration

	switch td := decl.Def.(type) {
	case *ast.EnumerationTypeDef:
		def = &symbols.EnumerationType{}

	case *ast.IntegerTypeDef:
		a.analyzeRange(scope, td.Range, diags)
		if isRealRange(td.Range) {
			def = &symbols.FloatingType{}
		} else {
			def = &symbols.IntegerType{}
		}

	case *ast.PhysicalTypeDef:
		a.analyzeRange(scope, td.Range, diags)
		def = &symbols.PhysicalType{}

	case *ast.ArrayTypeDef:
		indexes := make([]*symbols.TypeEnt, 0, len(td.Indexes))
		for _, index := range td.Indexes {
			indexes = append(indexes, a.analyzeArrayIndex(scope, index, diags))
		}
		elem := a.analyzeSubtypeIndication(scope, td.Elem, diags)
		def = &symbols.ArrayType{Indexes: indexes, ElemType: elem}

	case *ast.RecordTypeDef:
		region := symbols.NewRegion()
		recordScope := symbols.NewScope(region)
		for _, elem := range td.Elements {
			elemType := a.analyzeSubtypeIndication(scope, elem.Subtype, diags)
			elemEnt := symbols.NewEntity(elem.Ident.Designator(), &symbols.ElementDecl{
				Subtype: symbols.NewSubtype(elemType),
			}, ast.Pos(elem.Ident))
			elem.Ident.Ref = elemEnt
			recordScope.Add(elemEnt, diags)
		}
		def = &symbols.RecordType{Region: region}

	case *ast.AccessTypeDef:
		designated := a.analyzeSubtypeIndication(scope, td.Subtype, diags)
		def = &symbols.AccessType{Subtype: symbols.NewSubtype(designated)}

	case *ast.FileTypeDef:
		var marked *symbols.TypeEnt
		if typ, diag := a.resolveTypeMarkName(scope, td.TypeMark); diag != nil {
			diags.Push(*diag)
		} else {
			marked = typ
		}
		def = &symbols.FileType{Subtype: symbols.NewSubtype(marked)}

	case *ast.ProtectedTypeDef:
		def = &symbols.ProtectedType{Region: symbols.NewRegion()}
		protectedDecls = td.Decls

	default:
		return
	}

	ent := symbols.NewEntity(designator, def, ast.Pos(decl.Ident))
	if prev := scope.LookupImmediate(designator); prev != nil {
		if prevEnt := prev.Single(); prevEnt != nil {
			if _, incomplete := prevEnt.Kind().(*symbols.IncompleteType); incomplete {
				// Full declaration of an incomplete type keeps its identity.
				ent = prevEnt.WithKind(def)
			}
		}
	}
	decl.Ident.Ref = ent
	typ, _ := symbols.TypeEntFromAny(ent)

	// Companion entities need the final type entity.
	switch td := decl.Def.(type) {
	case *ast.EnumerationTypeDef:
		enumDef := def.(*symbols.EnumerationType)
		for _, lit := range td.Literals {
			litEnt := symbols.NewEntity(lit.Designator(), &symbols.EnumLiteral{
				Sig: symbols.NewSignature(nil, typ),
			}, lit.Token.Pos())
			litEnt.SetParent(ent)
			enumDef.Literals = append(enumDef.Literals, litEnt)
			literals = append(literals, litEnt)
		}
	case *ast.PhysicalTypeDef:
		physDef := def.(*symbols.PhysicalType)
		for _, unit := range td.Units {
			unitEnt := symbols.NewEntity(unit.Ident.Designator(), &symbols.PhysicalLiteral{
				BaseType: typ,
			}, ast.Pos(unit.Ident))
			unitEnt.SetParent(ent)
			unit.Ident.Ref = unitEnt
			physDef.Units = append(physDef.Units, unitEnt)
			units = append(units, unitEnt)
			if unit.Value != nil {
				a.analyzeExpression(scope, unit.Value, diags)
			}
			if unit.UnitName != nil {
				unitName := &ast.SimpleName{Token: unit.UnitName.Token, Designator: unit.UnitName.Designator()}
				if diag := a.resolvePhysicalUnit(scope, unitName); diag == nil {
					unit.UnitName.Ref = unitName.Ref
				}
			}
		}
	}

	ent.SetImplicits(a.root.implicitsFor(typ))
	scope.Add(ent, diags)
	for _, lit := range literals {
		scope.Add(lit, diags)
	}
	for _, unit := range units {
		scope.Add(unit, diags)
	}
	scope.AddImplicitAliases(ent, diags)

	if protectedDecls != nil {
		prot := def.(*symbols.ProtectedType)
		protScope := symbols.NewScope(prot.Region)
		a.analyzeDeclarativePart(protScope.WithParent(scope), protectedDecls, declProtectedBody, diags)
	}
}

// analyzeProtectedTypeBody records the body position on the protected type
// declared in the same region and analyzes the body's declarations against
// the type's method region.
func (a *Analyzer) analyzeProtectedTypeBody(scope *symbols.Scope, decl *ast.TypeDeclaration, body *ast.ProtectedTypeBody, diags diagnostics.Handler) {
	designator := decl.Ident.Designator()
	named := scope.LookupImmediate(designator)
	if named == nil {
		diags.Push(diagnostics.NewError(
			diagnostics.NoDeclaration,
			ast.Pos(decl.Ident),
			"No declaration of protected type '"+designator.String()+"'",
		))
		return
	}
	ent, ok := named.AsUnique()
	if !ok {
		diags.Push(diagnostics.NewError(
			diagnostics.MismatchedKind,
			ast.Pos(decl.Ident),
			"Expected protected type, got overloaded name",
		))
		return
	}
	prot, isProtected := ent.Kind().(*symbols.ProtectedType)
	if !isProtected {
		diags.Push(kindError(ent, ast.Pos(decl.Ident), "protected type"))
		return
	}
	decl.Ident.Ref = ent

	if !prot.SetBodyPos(ast.Pos(decl.Ident)) {
		diag := diagnostics.NewError(
			diagnostics.Duplicate,
			ast.Pos(decl.Ident),
			"Duplicate body for protected type '"+designator.String()+"'",
		)
		if prev := prot.BodyPos(); prev != nil && prev.Valid() {
			diag.AddRelated(*prev, "Previously defined here")
		}
		diags.Push(diag)
	}

	bodyScope := symbols.Extend(prot.Region, scope)
	a.analyzeDeclarativePart(bodyScope, body.Decls, declProtectedBody, diags)
}

// analyzeArrayIndex resolves one array index definition to its index type.
func (a *Analyzer) analyzeArrayIndex(scope *symbols.Scope, index *ast.ArrayIndexNode, diags diagnostics.Handler) *symbols.TypeEnt {
	if index.TypeMark != nil {
		typ, diag := a.resolveTypeMarkName(scope, index.TypeMark)
		if diag != nil {
			diags.Push(*diag)
			return nil
		}
		return typ
	}
	if index.Range != nil {
		a.analyzeDiscreteRange(scope, index.Range, diags)
		if sub, ok := index.Range.(*ast.DiscreteSubtype); ok {
			if typ, diag := a.resolveTypeMarkName(scope, sub.Mark); diag == nil {
				return typ
			}
		}
	}
	return nil
}

func isRealRange(rng ast.RangeExpr) bool {
	constraint, ok := rng.(*ast.RangeConstraint)
	if !ok {
		return false
	}
	_, leftReal := constraint.Left.(*ast.RealLiteral)
	_, rightReal := constraint.Right.(*ast.RealLiteral)
	return leftReal || rightReal
}
