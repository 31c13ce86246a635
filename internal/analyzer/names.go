package analyzer

import (
	"fmt"

	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// lookupSelected interprets a selected-name suffix by the kind of the
// resolved prefix entity.
func (a *Analyzer) lookupSelected(prefixPos token.Pos, prefix *symbols.AnyEnt, suffix *ast.NamePart) (*symbols.NamedEntities, *diagnostics.Diagnostic) {
	switch kind := prefix.ActualKind().(type) {
	case *symbols.Library:
		ent, ok := a.root.LookupInLibrary(prefix.Designator().Name, suffix.Designator)
		if !ok {
			diag := noDeclarationWithin(prefix.Describe(), suffix.Token.Pos(), suffix.Designator)
			return nil, &diag
		}
		return symbols.NewNamed(ent), nil
	case *symbols.Object:
		return a.selectedInType(kind.Subtype.TypeMark(), prefixPos, prefix, suffix)
	case *symbols.ObjectAlias:
		return a.selectedInType(kind.TypeMark, prefixPos, prefix, suffix)
	case *symbols.ExternalAlias:
		return a.selectedInType(kind.TypeMark, prefixPos, prefix, suffix)
	case *symbols.ElementDecl:
		return a.selectedInType(kind.Subtype.TypeMark(), prefixPos, prefix, suffix)
	case *symbols.Design:
		switch kind.Kind {
		case symbols.DesignPackage, symbols.DesignPackageInstance, symbols.DesignLocalPackageInstance:
			if named := kind.Region.LookupImmediate(suffix.Designator); named != nil {
				return named, nil
			}
			diag := noDeclarationWithin(prefix.Describe(), suffix.Token.Pos(), suffix.Designator)
			return nil, &diag
		default:
			diag := invalidSelectedPrefix(prefix, prefixPos)
			return nil, &diag
		}
	default:
		diag := invalidSelectedPrefix(prefix, prefixPos)
		return nil, &diag
	}
}

// selectedInType looks a suffix up inside the selected region of a prefix
// object's type: record elements, or the designated type of an access type
// after one implicit dereference.
func (a *Analyzer) selectedInType(typeMark *symbols.TypeEnt, prefixPos token.Pos, prefix *symbols.AnyEnt, suffix *ast.NamePart) (*symbols.NamedEntities, *diagnostics.Diagnostic) {
	if typeMark == nil {
		diag := invalidSelectedPrefix(prefix, prefixPos)
		return nil, &diag
	}
	region := typeMark.SelectedRegion()
	if region == nil {
		diag := invalidSelectedPrefix(prefix, prefixPos)
		return nil, &diag
	}
	if named := region.LookupImmediate(suffix.Designator); named != nil {
		return named, nil
	}
	diag := noDeclarationWithin(typeMark.Describe(), suffix.Token.Pos(), suffix.Designator)
	return nil, &diag
}

// resolveSelectedName resolves the restricted dotted-name form used where a
// selected name is syntactically required (use clauses, type marks).
func (a *Analyzer) resolveSelectedName(scope *symbols.Scope, name *ast.SelectedName) (*symbols.NamedEntities, *diagnostics.Diagnostic) {
	var named *symbols.NamedEntities
	for i, part := range name.Parts {
		part.Ref = nil
		if i == 0 {
			found, diag := scope.Lookup(part.Token.Pos(), part.Designator)
			if diag != nil {
				return nil, diag
			}
			named = found
		} else {
			prefix := name.Parts[i-1]
			prefixEnt, ok := named.AsUnique()
			if !ok {
				diag := diagnostics.NewError(
					diagnostics.InvalidSelectedPrefix,
					prefix.Token.Pos(),
					"Invalid prefix for selected name",
				)
				return nil, &diag
			}
			found, diag := a.lookupSelected(prefix.Token.Pos(), prefixEnt, part)
			if diag != nil {
				return nil, diag
			}
			named = found
		}
		setRef(func(e *symbols.AnyEnt) { part.Ref = e }, named)
	}
	return named, nil
}

// resolveName resolves a name in any syntactic form. The result is nil when
// the form does not by itself produce a resolvable entity (indexed, sliced,
// attribute, external names) or when resolution failed; failures are pushed
// as diagnostics and analysis of sub-terms continues.
func (a *Analyzer) resolveName(scope *symbols.Scope, namePos token.Pos, name ast.Name, diags diagnostics.Handler) *symbols.NamedEntities {
	switch n := name.(type) {
	case *ast.SimpleName:
		n.Ref = nil
		named, diag := scope.Lookup(namePos, n.Designator)
		if diag != nil {
			diags.Push(*diag)
			return nil
		}
		setRef(func(e *symbols.AnyEnt) { n.Ref = e }, named)
		return named

	case *ast.Selected:
		n.Suffix.Ref = nil
		prefix := a.resolveName(scope, ast.Pos(n.Prefix), n.Prefix, diags)
		if prefix == nil || prefix.IsOverloaded() {
			return nil
		}
		named, diag := a.lookupSelected(ast.Pos(n.Prefix), prefix.Single(), n.Suffix)
		if diag != nil {
			diags.Push(*diag)
			return nil
		}
		setRef(func(e *symbols.AnyEnt) { n.Suffix.Ref = e }, named)
		return named

	case *ast.SelectedAll:
		a.resolveName(scope, ast.Pos(n.Prefix), n.Prefix, diags)
		return nil

	case *ast.CallOrIndexed:
		a.analyzeFunctionCallOrIndexed(scope, namePos, n, diags)
		return nil

	case *ast.SliceName:
		a.resolveName(scope, ast.Pos(n.Prefix), n.Prefix, diags)
		a.analyzeDiscreteRange(scope, n.Range, diags)
		return nil

	case *ast.AttributeName:
		a.analyzeAttributeName(scope, n, diags)
		return nil

	case *ast.ExternalName:
		a.analyzeSubtypeIndication(scope, n.Subtype, diags)
		return nil

	default:
		return nil
	}
}

// resolveNonOverloaded insists the name resolved to a single entity.
func (a *Analyzer) resolveNonOverloaded(named *symbols.NamedEntities, pos token.Pos, expected string) (*symbols.AnyEnt, *diagnostics.Diagnostic) {
	if !named.IsOverloaded() {
		return named.Single(), nil
	}
	diag := diagnostics.NewError(
		diagnostics.MismatchedKind,
		pos,
		fmt.Sprintf("Expected %s, got overloaded name", expected),
	)
	for _, ent := range named.Overloaded().SortedEntities() {
		if ent.Ent().DeclPos().Valid() {
			diag.AddRelated(ent.Ent().DeclPos(), "Defined here")
		}
	}
	return nil, &diag
}

// resolveTypeMarkName resolves a selected name that must denote a type.
func (a *Analyzer) resolveTypeMarkName(scope *symbols.Scope, name *ast.SelectedName) (*symbols.TypeEnt, *diagnostics.Diagnostic) {
	named, diag := a.resolveSelectedName(scope, name)
	if diag != nil {
		return nil, diag
	}
	pos := name.SuffixPos()
	ent, diag := a.resolveNonOverloaded(named, pos, "type")
	if diag != nil {
		return nil, diag
	}
	typ, ok := symbols.TypeEntFromAny(ent)
	if !ok {
		err := kindError(ent, pos, "type")
		return nil, &err
	}
	return typ, nil
}

// resolveTypeMark resolves a type mark; the 'subtype form peels objects,
// aliases and record elements down to their type.
func (a *Analyzer) resolveTypeMark(scope *symbols.Scope, mark *ast.TypeMark) (*symbols.TypeEnt, *diagnostics.Diagnostic) {
	if !mark.Subtype {
		return a.resolveTypeMarkName(scope, mark.Name)
	}

	named, diag := a.resolveSelectedName(scope, mark.Name)
	if diag != nil {
		return nil, diag
	}
	pos := mark.Name.SuffixPos()
	const expected = "object or alias"
	ent, diag := a.resolveNonOverloaded(named, pos, expected)
	if diag != nil {
		return nil, diag
	}
	switch kind := ent.Kind().(type) {
	case *symbols.Object:
		return kind.Subtype.TypeMark(), nil
	case *symbols.ObjectAlias:
		return kind.TypeMark, nil
	case *symbols.ElementDecl:
		return kind.Subtype.TypeMark(), nil
	default:
		err := kindError(ent, pos, expected)
		return nil, &err
	}
}

// analyzeAttributeName analyzes `prefix'attr [signature] [(expr)]`.
func (a *Analyzer) analyzeAttributeName(scope *symbols.Scope, attr *ast.AttributeName, diags diagnostics.Handler) {
	a.resolveName(scope, ast.Pos(attr.Prefix), attr.Prefix, diags)

	if attr.Signature != nil {
		if _, diag := a.resolveSignature(scope, attr.Signature); diag != nil {
			diags.Push(*diag)
		}
	}
	if attr.Expr != nil {
		a.analyzeExpression(scope, attr.Expr, diags)
	}
}

// resolveSignature resolves the bracketed signature of an alias or
// attribute name into signature form.
func (a *Analyzer) resolveSignature(scope *symbols.Scope, sig *ast.SignatureNode) (*symbols.Signature, *diagnostics.Diagnostic) {
	params := make([]*symbols.TypeEnt, 0, len(sig.Params))
	var firstErr *diagnostics.Diagnostic
	for _, mark := range sig.Params {
		typ, diag := a.resolveTypeMarkName(scope, mark)
		if diag != nil && firstErr == nil {
			firstErr = diag
		}
		params = append(params, typ)
	}
	var ret *symbols.TypeEnt
	if sig.Return != nil {
		typ, diag := a.resolveTypeMarkName(scope, sig.Return)
		if diag != nil && firstErr == nil {
			firstErr = diag
		}
		ret = typ
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return symbols.NewSignature(params, ret), nil
}

// typeMarkOfSlicedOrIndexed returns the type through which an entity can be
// indexed or sliced, if any.
func typeMarkOfSlicedOrIndexed(ent *symbols.AnyEnt) *symbols.TypeEnt {
	switch kind := ent.Kind().(type) {
	case *symbols.Object:
		return kind.Subtype.TypeMark()
	case *symbols.DeferredConstant:
		return kind.Subtype.TypeMark()
	case *symbols.ElementDecl:
		return kind.Subtype.TypeMark()
	case *symbols.ObjectAlias:
		return kind.TypeMark
	default:
		return nil
	}
}

// analyzeIndexedName checks an indexed name whose prefix entity is known,
// returning the element type. Access prefixes are dereferenced once.
func (a *Analyzer) analyzeIndexedName(scope *symbols.Scope, namePos, suffixPos token.Pos, typeMark *symbols.TypeEnt, indexes []ast.Expression, diags diagnostics.Handler) (*symbols.TypeEnt, *diagnostics.Diagnostic) {
	baseType := typeMark.BaseType()
	if access, ok := baseType.Def().(*symbols.AccessType); ok {
		if mark := access.Subtype.TypeMark(); mark != nil {
			baseType = mark.BaseType()
		}
	}

	array, ok := baseType.Def().(*symbols.ArrayType)
	if !ok {
		diag := diagnostics.NewError(
			diagnostics.DimensionMismatch,
			suffixPos,
			fmt.Sprintf("%s cannot be indexed", typeMark.Describe()),
		)
		return nil, &diag
	}

	if len(indexes) != len(array.Indexes) {
		diags.Push(dimensionMismatch(namePos, baseType, len(indexes), len(array.Indexes)))
	}
	for _, index := range indexes {
		a.analyzeExpression(scope, index, diags)
	}
	return array.ElemType, nil
}

// analyzeSlicedName checks that a sliced prefix is of array type.
func (a *Analyzer) analyzeSlicedName(suffixPos token.Pos, typeMark *symbols.TypeEnt, diags diagnostics.Handler) {
	baseType := typeMark.BaseType()
	if access, ok := baseType.Def().(*symbols.AccessType); ok {
		if mark := access.Subtype.TypeMark(); mark != nil {
			baseType = mark.BaseType()
		}
	}
	if _, ok := baseType.Def().(*symbols.ArrayType); !ok {
		diags.Push(diagnostics.NewError(
			diagnostics.MismatchedKind,
			suffixPos,
			fmt.Sprintf("%s cannot be sliced", typeMark.Describe()),
		))
	}
}

// analyzeFunctionCallOrIndexed disambiguates `prefix(...)` by the resolved
// prefix: a type is a conversion, an array object rewrites to an indexed
// name in place, an overloaded name stays a call.
func (a *Analyzer) analyzeFunctionCallOrIndexed(scope *symbols.Scope, namePos token.Pos, call *ast.CallOrIndexed, diags diagnostics.Handler) {
	named := a.resolveName(scope, ast.Pos(call.Prefix), call.Prefix, diags)
	switch {
	case named == nil:
		a.analyzeAssocElems(scope, call.Params, diags)

	case !named.IsOverloaded():
		ent := named.Single()
		if _, isType := ent.ActualKind().(symbols.TypeDef); isType {
			// A type conversion; the inner expression is not target-typed.
			a.analyzeAssocElems(scope, call.Params, diags)
			return
		}
		if indexes, ok := call.ToIndexed(); ok {
			call.IndexedForm = indexes
			suffixPos := ast.Pos(call.Prefix)
			if typeMark := typeMarkOfSlicedOrIndexed(ent); typeMark != nil {
				if _, diag := a.analyzeIndexedName(scope, namePos, suffixPos, typeMark, indexes, diags); diag != nil {
					diags.Push(*diag)
				}
			} else {
				diags.Push(diagnostics.NewError(
					diagnostics.MismatchedKind,
					suffixPos,
					fmt.Sprintf("%s cannot be indexed", ent.Describe()),
				))
			}
			return
		}
		diags.Push(diagnostics.NewError(
			diagnostics.InvalidCall,
			ast.Pos(call.Prefix),
			fmt.Sprintf("%s cannot be the prefix of a function call", ent.Describe()),
		))
		a.analyzeAssocElems(scope, call.Params, diags)

	default:
		// Overloaded prefix without an expected type: analyze the actuals
		// generically.
		a.analyzeAssocElems(scope, call.Params, diags)
	}
}
