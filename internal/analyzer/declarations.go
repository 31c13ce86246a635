package analyzer

import (
	"fmt"

	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
)

// declContext names the kind of declarative part being analyzed; it decides
// which object classes may be declared there.
type declContext int

const (
	declPackage declContext = iota
	declPackageBody
	declEntity
	declArchitecture
	declBlock
	declProcess
	declSubprogram
	declProtectedBody
)

// signalAllowed reports whether signal declarations may appear here.
func (c declContext) signalAllowed() bool {
	switch c {
	case declEntity, declArchitecture, declBlock, declPackage:
		return true
	default:
		return false
	}
}

// variableAllowed reports whether non-shared variable declarations may
// appear here.
func (c declContext) variableAllowed() bool {
	switch c {
	case declSubprogram, declProcess, declProtectedBody, declPackageBody:
		return true
	default:
		return false
	}
}

// analyzeDeclarativePart populates the scope's region from a declarative
// part, in order.
func (a *Analyzer) analyzeDeclarativePart(scope *symbols.Scope, decls []ast.Declaration, ctx declContext, diags diagnostics.Handler) {
	for _, decl := range decls {
		a.analyzeDeclaration(scope, decl, ctx, diags)
	}
}

func (a *Analyzer) analyzeDeclaration(scope *symbols.Scope, decl ast.Declaration, ctx declContext, diags diagnostics.Handler) {
	switch d := decl.(type) {
	case *ast.ObjectDeclaration:
		a.analyzeObjectDeclaration(scope, d, ctx, diags)
	case *ast.FileDeclaration:
		a.analyzeFileDeclaration(scope, d, diags)
	case *ast.TypeDeclaration:
		a.analyzeTypeDeclaration(scope, d, diags)
	case *ast.SubtypeDeclaration:
		typ := a.analyzeSubtypeIndication(scope, d.Subtype, diags)
		ent := symbols.NewEntity(d.Ident.Designator(), &symbols.SubtypeDef{
			Subtype: symbols.NewSubtype(typ),
		}, ast.Pos(d.Ident))
		d.Ident.Ref = ent
		scope.Add(ent, diags)
	case *ast.AliasDeclaration:
		a.analyzeAliasDeclaration(scope, d, diags)
	case *ast.AttributeDeclaration:
		var typ *symbols.TypeEnt
		if resolved, diag := a.resolveTypeMarkName(scope, d.TypeMark); diag != nil {
			diags.Push(*diag)
		} else {
			typ = resolved
		}
		ent := symbols.NewEntity(d.Ident.Designator(), &symbols.AttributeEnt{TypeMark: typ}, ast.Pos(d.Ident))
		d.Ident.Ref = ent
		scope.Add(ent, diags)
	case *ast.AttributeSpecification:
		a.analyzeAttributeSpecification(scope, d, diags)
	case *ast.SubprogramDeclaration:
		sig := a.signatureOfSpec(scope, d.Spec, diags, diags)
		ent := symbols.NewEntity(d.Spec.Designate(), &symbols.SubprogramDecl{Sig: sig}, ast.Pos(d.Spec.Designator))
		scope.Add(ent, diags)
	case *ast.SubprogramBody:
		a.analyzeSubprogramBody(scope, d, diags)
	case *ast.UseClause:
		a.analyzeUseClause(scope, d, diags)
	}
}

func (a *Analyzer) analyzeObjectDeclaration(scope *symbols.Scope, decl *ast.ObjectDeclaration, ctx declContext, diags diagnostics.Handler) {
	switch decl.Class {
	case ast.ClassSignal:
		if !ctx.signalAllowed() {
			diags.Push(diagnostics.NewError(
				diagnostics.DeclarationNotAllowed,
				ast.Pos(decl),
				"signal declaration not allowed here",
			))
			return
		}
	case ast.ClassVariable:
		if !ctx.variableAllowed() {
			diags.Push(diagnostics.NewError(
				diagnostics.DeclarationNotAllowed,
				ast.Pos(decl),
				"variable declaration not allowed here",
			))
			return
		}
	}

	typ := a.analyzeSubtypeIndication(scope, decl.Subtype, diags)
	subtype := symbols.NewSubtype(typ)

	// A constant without a value is deferred; whether that is allowed here
	// is the region's decision.
	deferred := decl.Class == ast.ClassConstant && decl.Value == nil

	var kind symbols.Kind
	if deferred {
		kind = &symbols.DeferredConstant{Subtype: subtype}
	} else {
		kind = &symbols.Object{Class: objectClass(decl.Class), Subtype: subtype}
	}
	ent := symbols.NewEntity(decl.Ident.Designator(), kind, ast.Pos(decl.Ident))
	decl.Ident.Ref = ent
	scope.Add(ent, diags)

	if decl.Value != nil {
		if typ != nil {
			a.analyzeExpressionWithTargetType(scope, typ, ast.Pos(decl.Value), decl.Value, diags)
		} else {
			a.analyzeExpression(scope, decl.Value, diags)
		}
	}
}

func objectClass(class ast.ObjectClass) symbols.ObjectClass {
	switch class {
	case ast.ClassConstant:
		return symbols.ClassConstant
	case ast.ClassSignal:
		return symbols.ClassSignal
	case ast.ClassSharedVariable:
		return symbols.ClassSharedVariable
	default:
		return symbols.ClassVariable
	}
}

func (a *Analyzer) analyzeFileDeclaration(scope *symbols.Scope, decl *ast.FileDeclaration, diags diagnostics.Handler) {
	typ := a.analyzeSubtypeIndication(scope, decl.Subtype, diags)
	if typ != nil {
		if _, isFile := typ.BaseType().Def().(*symbols.FileType); !isFile {
			diags.Push(kindError(typ.Ent(), ast.Pos(decl.Subtype.Mark), "file type"))
		}
	}
	ent := symbols.NewEntity(decl.Ident.Designator(), &symbols.FileEnt{
		Subtype: symbols.NewSubtype(typ),
	}, ast.Pos(decl.Ident))
	decl.Ident.Ref = ent
	scope.Add(ent, diags)

	if decl.OpenInfo != nil {
		a.analyzeExpression(scope, decl.OpenInfo, diags)
	}
	if decl.FileName != nil {
		a.analyzeExpressionWithTargetType(scope, a.root.std.str, ast.Pos(decl.FileName), decl.FileName, diags)
	}
}

// analyzeAttributeSpecification checks the decorated entity's class,
// seeing through aliases.
func (a *Analyzer) analyzeAttributeSpecification(scope *symbols.Scope, spec *ast.AttributeSpecification, diags diagnostics.Handler) {
	spec.Ident.Ref = nil
	attrNamed, diag := scope.Lookup(ast.Pos(spec.Ident), spec.Ident.Designator())
	var attrType *symbols.TypeEnt
	if diag != nil {
		diags.Push(*diag)
	} else if attrEnt, ok := attrNamed.AsUnique(); ok {
		spec.Ident.Ref = attrEnt
		if attr, isAttr := attrEnt.ActualKind().(*symbols.AttributeEnt); isAttr {
			attrType = attr.TypeMark
		} else {
			diags.Push(kindError(attrEnt, ast.Pos(spec.Ident), "attribute"))
		}
	}

	spec.EntityName.Ref = nil
	named, diag := scope.Lookup(ast.Pos(spec.EntityName), spec.EntityName.Designator())
	if diag != nil {
		diags.Push(*diag)
	} else if ent, ok := named.AsUnique(); ok {
		spec.EntityName.Ref = ent
		decorated := seeThroughAliases(ent)
		if entityClassOf(decorated) != spec.Class {
			diags.Push(diagnostics.NewError(
				diagnostics.MismatchedEntityClass,
				ast.Pos(spec.EntityName),
				fmt.Sprintf("%s is not of class %s", decorated.Describe(), spec.Class),
			))
		}
	}

	if spec.Value != nil {
		if attrType != nil {
			a.analyzeExpressionWithTargetType(scope, attrType, ast.Pos(spec.Value), spec.Value, diags)
		} else {
			a.analyzeExpression(scope, spec.Value, diags)
		}
	}
}

// seeThroughAliases unwraps object and overloaded aliases to the designated
// entity.
func seeThroughAliases(ent *symbols.AnyEnt) *symbols.AnyEnt {
	for {
		switch kind := ent.Kind().(type) {
		case *symbols.ObjectAlias:
			ent = kind.Aliased
		case *symbols.OverloadedAlias:
			ent = kind.Of.AsActual()
		default:
			return ent
		}
	}
}

// entityClassOf maps an entity kind to the class an attribute specification
// names.
func entityClassOf(ent *symbols.AnyEnt) ast.EntityClass {
	switch kind := ent.Kind().(type) {
	case *symbols.Design:
		switch kind.Kind {
		case symbols.DesignEntity:
			return ast.EntityClassEntity
		case symbols.DesignArchitecture:
			return ast.EntityClassArchitecture
		case symbols.DesignConfiguration:
			return ast.EntityClassConfiguration
		default:
			return ast.EntityClassPackage
		}
	case *symbols.Object:
		switch kind.Class {
		case symbols.ClassSignal:
			return ast.EntityClassSignal
		case symbols.ClassConstant:
			return ast.EntityClassConstant
		default:
			return ast.EntityClassVariable
		}
	case *symbols.DeferredConstant:
		return ast.EntityClassConstant
	case *symbols.FileEnt, *symbols.InterfaceFile:
		return ast.EntityClassFile
	case *symbols.SubtypeDef:
		return ast.EntityClassSubtype
	case symbols.TypeDef:
		return ast.EntityClassType
	case *symbols.Subprogram:
		if kind.Sig.Return != nil {
			return ast.EntityClassFunction
		}
		return ast.EntityClassProcedure
	case *symbols.SubprogramDecl:
		if kind.Sig.Return != nil {
			return ast.EntityClassFunction
		}
		return ast.EntityClassProcedure
	case *symbols.LabelEnt:
		return ast.EntityClassLabel
	default:
		return ast.EntityClassType
	}
}

// signatureOfSpec resolves the parameter and result types of a subprogram
// specification into a signature. Parameter diagnostics go to paramDiags so
// that bodies, which re-analyze their interface items, do not report them
// twice.
func (a *Analyzer) signatureOfSpec(scope *symbols.Scope, spec *ast.SubprogramSpec, paramDiags, retDiags diagnostics.Handler) *symbols.Signature {
	params := make([]*symbols.TypeEnt, 0, len(spec.Params))
	for _, param := range spec.Params {
		params = append(params, a.analyzeSubtypeIndication(scope, param.Subtype, paramDiags))
	}
	var ret *symbols.TypeEnt
	if spec.Return != nil {
		typ, diag := a.resolveTypeMarkName(scope, spec.Return)
		if diag != nil {
			retDiags.Push(*diag)
		} else {
			ret = typ
		}
	}
	return symbols.NewSignature(params, ret)
}

// analyzeSubprogramBody declares the subprogram, then analyzes its interface
// items, declarative part and statements in a nested scope.
func (a *Analyzer) analyzeSubprogramBody(scope *symbols.Scope, body *ast.SubprogramBody, diags diagnostics.Handler) {
	spec := body.Spec
	sig := a.signatureOfSpec(scope, spec, discardDiagnostics{}, diags)
	ent := symbols.NewEntity(spec.Designate(), &symbols.Subprogram{Sig: sig}, ast.Pos(spec.Designator))
	scope.Add(ent, diags)

	nested := scope.Nested()
	for _, param := range spec.Params {
		a.addInterfaceItem(nested, param, true, diags)
	}
	a.analyzeDeclarativePart(nested, body.Decls, declSubprogram, diags)
	a.analyzeSequentialStatements(nested, body.Stmts, diags)
	nested.Close(diags)
}

// addInterfaceItem declares one generic, port or parameter in the scope.
// Subprogram parameters default to class constant; in a parameter list the
// default mode is in.
func (a *Analyzer) addInterfaceItem(scope *symbols.Scope, item *ast.InterfaceDeclaration, parameter bool, diags diagnostics.Handler) *symbols.AnyEnt {
	typ := a.analyzeSubtypeIndication(scope, item.Subtype, diags)

	var kind symbols.Kind
	if item.File {
		kind = &symbols.InterfaceFile{TypeMark: typ}
	} else {
		mode := symbolMode(item.Mode)
		class := objectClass(item.Class)
		if parameter && !item.HasMode && item.Class == ast.ClassConstant {
			mode = symbols.ModeIn
		}
		kind = &symbols.Object{
			Class:      class,
			Mode:       &mode,
			Subtype:    symbols.NewSubtype(typ),
			HasDefault: item.Default != nil,
		}
	}

	ent := symbols.NewEntity(item.Ident.Designator(), kind, ast.Pos(item.Ident))
	item.Ident.Ref = ent
	scope.Add(ent, diags)

	if item.Default != nil {
		if typ != nil {
			a.analyzeExpressionWithTargetType(scope, typ, ast.Pos(item.Default), item.Default, diags)
		} else {
			a.analyzeExpression(scope, item.Default, diags)
		}
	}
	return ent
}

func symbolMode(mode ast.Mode) symbols.Mode {
	switch mode {
	case ast.ModeOut:
		return symbols.ModeOut
	case ast.ModeInOut:
		return symbols.ModeInOut
	case ast.ModeBuffer:
		return symbols.ModeBuffer
	case ast.ModeLinkage:
		return symbols.ModeLinkage
	default:
		return symbols.ModeIn
	}
}
