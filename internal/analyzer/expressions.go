package analyzer

import (
	"fmt"

	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
)

// analyzeExpression analyzes an expression without an expected type:
// references still resolve, operators and literals are not constrained.
func (a *Analyzer) analyzeExpression(scope *symbols.Scope, expr ast.Expression, diags diagnostics.Handler) {
	switch e := expr.(type) {
	case *ast.Binary:
		a.analyzeExpression(scope, e.Left, diags)
		a.analyzeExpression(scope, e.Right, diags)
	case *ast.Unary:
		a.analyzeExpression(scope, e.Operand, diags)
	case ast.Name:
		a.resolveName(scope, ast.Pos(e), e, diags)
	case *ast.Aggregate:
		a.analyzeAggregate(scope, e.Assocs, diags)
	case *ast.QualifiedExpression:
		a.analyzeQualifiedExpression(scope, e, diags)
	case *ast.Allocator:
		a.analyzeAllocation(scope, e, diags)
	case *ast.PhysicalLiteralExpr:
		if diag := a.resolvePhysicalUnit(scope, e.Unit); diag != nil {
			diags.Push(*diag)
		}
	}
}

// analyzeQualifiedExpression resolves the type mark and flows it into the
// inner expression; on failure the inner expression is still analyzed for
// its own errors.
func (a *Analyzer) analyzeQualifiedExpression(scope *symbols.Scope, qexpr *ast.QualifiedExpression, diags diagnostics.Handler) *symbols.TypeEnt {
	targetType, diag := a.resolveTypeMark(scope, qexpr.TypeMark)
	if diag != nil {
		a.analyzeExpression(scope, qexpr.Expr, diags)
		diags.Push(*diag)
		return nil
	}
	a.analyzeExpressionWithTargetType(scope, targetType, ast.Pos(qexpr.Expr), qexpr.Expr, diags)
	return targetType
}

// analyzeAllocation analyzes `new ...`.
func (a *Analyzer) analyzeAllocation(scope *symbols.Scope, alloc *ast.Allocator, diags diagnostics.Handler) {
	if alloc.Qualified != nil {
		a.analyzeQualifiedExpression(scope, alloc.Qualified, diags)
	}
	if alloc.Subtype != nil {
		a.analyzeSubtypeIndication(scope, alloc.Subtype, diags)
	}
}

// resolvePhysicalUnit binds the unit name of a physical literal.
func (a *Analyzer) resolvePhysicalUnit(scope *symbols.Scope, unit *ast.SimpleName) *diagnostics.Diagnostic {
	unit.Ref = nil
	named, diag := scope.Lookup(unit.Token.Pos(), unit.Designator)
	if diag != nil {
		return diag
	}
	ent, ok := named.AsUnique()
	if !ok {
		err := diagnostics.NewError(
			diagnostics.MismatchedKind,
			unit.Token.Pos(),
			fmt.Sprintf("Expected physical unit, got overloaded name '%s'", unit.Designator),
		)
		return &err
	}
	if _, isUnit := ent.ActualKind().(*symbols.PhysicalLiteral); !isUnit {
		err := kindError(ent, unit.Token.Pos(), "physical unit")
		return &err
	}
	unit.Ref = ent
	return nil
}

// analyzeSubtypeIndication resolves the type mark and analyzes constraint
// ranges; it returns the resolved type (nil when unresolved).
func (a *Analyzer) analyzeSubtypeIndication(scope *symbols.Scope, indication *ast.SubtypeIndication, diags diagnostics.Handler) *symbols.TypeEnt {
	if indication == nil {
		return nil
	}
	typ, diag := a.resolveTypeMarkName(scope, indication.Mark)
	if diag != nil {
		diags.Push(*diag)
		typ = nil
	}
	switch constraint := indication.Constraint.(type) {
	case *ast.RangeConstraintNode:
		a.analyzeRange(scope, constraint.Range, diags)
	case *ast.IndexConstraintNode:
		for _, drange := range constraint.Ranges {
			a.analyzeDiscreteRange(scope, drange, diags)
		}
	}
	return typ
}

// analyzeRange analyzes a range without an expected type.
func (a *Analyzer) analyzeRange(scope *symbols.Scope, rng ast.RangeExpr, diags diagnostics.Handler) {
	switch r := rng.(type) {
	case *ast.RangeConstraint:
		a.analyzeExpression(scope, r.Left, diags)
		a.analyzeExpression(scope, r.Right, diags)
	case *ast.RangeAttribute:
		a.analyzeAttributeName(scope, r.Attr, diags)
	}
}

// analyzeRangeWithTargetType flows an expected type into both bounds.
func (a *Analyzer) analyzeRangeWithTargetType(scope *symbols.Scope, targetType *symbols.TypeEnt, rng ast.RangeExpr, diags diagnostics.Handler) TypeCheck {
	switch r := rng.(type) {
	case *ast.RangeConstraint:
		check := a.analyzeExpressionWithTargetType(scope, targetType, ast.Pos(r.Left), r.Left, diags)
		return check.Combine(a.analyzeExpressionWithTargetType(scope, targetType, ast.Pos(r.Right), r.Right, diags))
	case *ast.RangeAttribute:
		a.analyzeAttributeName(scope, r.Attr, diags)
		return TypeUnknown
	default:
		return TypeUnknown
	}
}

// analyzeDiscreteRange analyzes a discrete range without an expected type.
func (a *Analyzer) analyzeDiscreteRange(scope *symbols.Scope, drange ast.DiscreteRange, diags diagnostics.Handler) {
	switch d := drange.(type) {
	case *ast.DiscreteSubtype:
		if _, diag := a.resolveTypeMarkName(scope, d.Mark); diag != nil {
			diags.Push(*diag)
		}
		if d.Range != nil {
			a.analyzeRange(scope, d.Range, diags)
		}
	case *ast.DiscreteRangeExpr:
		a.analyzeRange(scope, d.Range, diags)
	}
}

// analyzeDiscreteRangeWithTargetType flows an expected index type into a
// discrete range.
func (a *Analyzer) analyzeDiscreteRangeWithTargetType(scope *symbols.Scope, targetType *symbols.TypeEnt, drange ast.DiscreteRange, diags diagnostics.Handler) TypeCheck {
	switch d := drange.(type) {
	case *ast.DiscreteSubtype:
		if _, diag := a.resolveTypeMarkName(scope, d.Mark); diag != nil {
			diags.Push(*diag)
		}
		if d.Range != nil {
			a.analyzeRangeWithTargetType(scope, targetType, d.Range, diags)
		}
		return TypeUnknown
	case *ast.DiscreteRangeExpr:
		return a.analyzeRangeWithTargetType(scope, targetType, d.Range, diags)
	default:
		return TypeUnknown
	}
}

// analyzeChoices analyzes choice lists without an expected type.
func (a *Analyzer) analyzeChoices(scope *symbols.Scope, choices []ast.Choice, diags diagnostics.Handler) {
	for _, choice := range choices {
		switch c := choice.(type) {
		case *ast.ChoiceExpression:
			a.analyzeExpression(scope, c.Expr, diags)
		case *ast.ChoiceRange:
			a.analyzeDiscreteRange(scope, c.Range, diags)
		case *ast.ChoiceOthers:
		}
	}
}

// analyzeAssocElems analyzes association-list actuals without formal
// context.
func (a *Analyzer) analyzeAssocElems(scope *symbols.Scope, elems []*ast.AssociationElement, diags diagnostics.Handler) {
	for _, elem := range elems {
		if elem.Open || elem.Actual == nil {
			continue
		}
		a.analyzeExpression(scope, elem.Actual, diags)
	}
}

// analyzeWaveform analyzes waveform elements generically.
func (a *Analyzer) analyzeWaveform(scope *symbols.Scope, wavf *ast.Waveform, diags diagnostics.Handler) {
	if wavf == nil || wavf.Unaffected {
		return
	}
	for _, elem := range wavf.Elements {
		a.analyzeExpression(scope, elem.Value, diags)
		if elem.After != nil {
			a.analyzeExpression(scope, elem.After, diags)
		}
	}
}
