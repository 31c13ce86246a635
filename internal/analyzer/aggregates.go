package analyzer

import (
	"fmt"

	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// analyzeAggregate analyzes an aggregate without a target type: choices and
// element expressions are resolved for their own errors only.
func (a *Analyzer) analyzeAggregate(scope *symbols.Scope, assocs []*ast.ElementAssociation, diags diagnostics.Handler) {
	for _, assoc := range assocs {
		for _, choice := range assoc.Choices {
			switch c := choice.(type) {
			case *ast.ChoiceExpression:
				// Could be a record field; nothing more can be done without
				// a target type.
			case *ast.ChoiceRange:
				a.analyzeDiscreteRange(scope, c.Range, diags)
			case *ast.ChoiceOthers:
			}
		}
		if assoc.Expr != nil {
			a.analyzeExpression(scope, assoc.Expr, diags)
		}
	}
}

// analyzeAggregateWithTargetType dispatches an aggregate against the base
// of the expected type: 1-D arrays get element contexts, records get field
// contexts, everything else degrades to generic analysis.
func (a *Analyzer) analyzeAggregateWithTargetType(scope *symbols.Scope, targetType *symbols.TypeEnt, exprPos token.Pos, agg *ast.Aggregate, diags diagnostics.Handler) TypeCheck {
	targetBase := targetType.BaseType()

	switch def := targetBase.Def().(type) {
	case *symbols.ArrayType:
		if len(def.Indexes) == 1 {
			check := TypeOk
			for _, assoc := range agg.Assocs {
				check.Add(a.analyze1DArrayAssocElem(scope, targetBase, def.Indexes[0], def.ElemType, assoc, diags))
			}
			return check
		}
		// Multi-dimensional aggregates only receive generic analysis.
		a.analyzeAggregate(scope, agg.Assocs, diags)
		return TypeUnknown

	case *symbols.RecordType:
		a.analyzeRecordAggregate(scope, targetBase, def.Region, agg.Assocs, diags)
		return TypeUnknown

	default:
		a.analyzeAggregate(scope, agg.Assocs, diags)
		diags.Push(diagnostics.NewError(
			diagnostics.TypeMismatch,
			exprPos,
			fmt.Sprintf("Composite does not match %s", targetType.Describe()),
		))
		return TypeUnknown
	}
}

// analyzeRecordAggregate resolves each named choice in the record's element
// region and flows the element type into the associated expression.
func (a *Analyzer) analyzeRecordAggregate(scope *symbols.Scope, recordType *symbols.TypeEnt, elems *symbols.Region, assocs []*ast.ElementAssociation, diags diagnostics.Handler) TypeCheck {
	for _, assoc := range assocs {
		if assoc.Choices == nil {
			a.analyzeExpression(scope, assoc.Expr, diags)
			continue
		}

		var elem *symbols.AnyEnt
		if len(assoc.Choices) == 1 {
			switch choice := assoc.Choices[0].(type) {
			case *ast.ChoiceExpression:
				if simple, ok := choice.Expr.(*ast.SimpleName); ok {
					simple.Ref = nil
					if named := elems.LookupImmediate(simple.Designator); named != nil {
						elem = named.Single()
						simple.Ref = elem
					} else {
						diags.Push(noDeclarationWithin(recordType.Describe(), ast.Pos(simple), simple.Designator))
					}
				} else {
					diags.Push(diagnostics.NewError(
						diagnostics.MismatchedKind,
						ast.Pos(choice.Expr),
						"Record aggregate choice must be a simple name",
					))
				}
			case *ast.ChoiceRange:
				// Not allowed for records; nothing to resolve.
			case *ast.ChoiceOthers:
				// Accepted without content typing for now.
			}
		}

		if elem != nil {
			if decl, ok := elem.Kind().(*symbols.ElementDecl); ok && decl.Subtype.TypeMark() != nil {
				a.analyzeExpressionWithTargetType(scope, decl.Subtype.TypeMark(), ast.Pos(assoc.Expr), assoc.Expr, diags)
				continue
			}
		}
		a.analyzeExpression(scope, assoc.Expr, diags)
	}
	return TypeUnknown
}

// analyze1DArrayAssocElem types one association of a one-dimensional array
// aggregate. Positional and range-choice elements may themselves be arrays:
// the element type is kept when it checks Ok, otherwise the whole-array type
// when that checks Ok; when neither does, the element-type diagnostics are
// reported.
func (a *Analyzer) analyze1DArrayAssocElem(scope *symbols.Scope, arrayType *symbols.TypeEnt, indexType *symbols.TypeEnt, elemType *symbols.TypeEnt, assoc *ast.ElementAssociation, diags diagnostics.Handler) TypeCheck {
	canBeArray := true
	check := TypeOk

	for _, choice := range assoc.Choices {
		switch c := choice.(type) {
		case *ast.ChoiceExpression:
			if indexType != nil {
				check.Add(a.analyzeExpressionWithTargetType(scope, indexType, ast.Pos(c.Expr), c.Expr, diags))
			}
			canBeArray = false
		case *ast.ChoiceRange:
			if indexType != nil {
				check.Add(a.analyzeDiscreteRangeWithTargetType(scope, indexType, c.Range, diags))
			} else {
				a.analyzeDiscreteRange(scope, c.Range, diags)
				check.Add(TypeUnknown)
			}
		case *ast.ChoiceOthers:
			check.Add(TypeUnknown)
			canBeArray = false
		}
	}

	expr := assoc.Expr
	if expr == nil {
		return check
	}
	if elemType == nil {
		a.analyzeExpression(scope, expr, diags)
		return check.Combine(TypeUnknown)
	}

	if !canBeArray {
		check.Add(a.analyzeExpressionWithTargetType(scope, elemType, ast.Pos(expr), expr, diags))
		return check
	}

	// With only a range or positional choice the expression can be a whole
	// array; keep the first branch whose check is Ok.
	elemDiags := diagnostics.NewBag()
	elemCheck := a.analyzeExpressionWithTargetType(scope, elemType, ast.Pos(expr), expr, elemDiags)
	if elemCheck == TypeOk {
		drain(diags, elemDiags)
		check.Add(elemCheck)
		return check
	}

	arrayDiags := diagnostics.NewBag()
	arrayCheck := a.analyzeExpressionWithTargetType(scope, arrayType, ast.Pos(expr), expr, arrayDiags)
	if arrayCheck == TypeOk {
		drain(diags, arrayDiags)
		check.Add(arrayCheck)
		return check
	}

	drain(diags, elemDiags)
	check.Add(elemCheck)
	return check
}

func drain(into diagnostics.Handler, from *diagnostics.Bag) {
	for _, diag := range from.Items() {
		into.Push(diag)
	}
}
