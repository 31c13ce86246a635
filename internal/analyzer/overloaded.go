package analyzer

import (
	"fmt"

	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// callParams carries the actuals of an overloaded application: an
// association list, the operands of a binary operator or the operand of a
// unary operator.
type callParams struct {
	assoc   []*ast.AssociationElement
	left    ast.Expression
	right   ast.Expression
	operand ast.Expression
}

func (p *callParams) count() int {
	switch {
	case p.left != nil:
		return 2
	case p.operand != nil:
		return 1
	default:
		return len(p.assoc)
	}
}

// positional returns the actual expression at formal index i, or nil when
// the association at that position is named or open.
func (p *callParams) positional(i int) ast.Expression {
	switch {
	case p.left != nil:
		if i == 0 {
			return p.left
		}
		return p.right
	case p.operand != nil:
		return p.operand
	default:
		elem := p.assoc[i]
		if elem.Formal != nil || elem.Open {
			return nil
		}
		return elem.Actual
	}
}

// analyzeParamsUntargeted analyzes every actual without formal context.
func (a *Analyzer) analyzeParamsUntargeted(scope *symbols.Scope, params *callParams, diags diagnostics.Handler) {
	for i := 0; i < params.count(); i++ {
		if expr := params.positional(i); expr != nil {
			a.analyzeExpression(scope, expr, diags)
		}
	}
}

// analyzeParamsWithFormals flows each formal parameter type into the
// corresponding positional actual.
func (a *Analyzer) analyzeParamsWithFormals(scope *symbols.Scope, params *callParams, formals []*symbols.TypeEnt, diags diagnostics.Handler) TypeCheck {
	check := TypeOk
	for i := 0; i < params.count(); i++ {
		expr := params.positional(i)
		if expr == nil {
			continue
		}
		if i >= len(formals) || formals[i] == nil {
			a.analyzeExpression(scope, expr, diags)
			check.Add(TypeUnknown)
			continue
		}
		check.Add(a.analyzeExpressionWithTargetType(scope, formals[i], ast.Pos(expr), expr, diags))
	}
	return check
}

// arityMatches reports whether the actual count can satisfy the signature.
func arityMatches(params *callParams, sig *symbols.Signature) bool {
	return params.count() == len(sig.Params)
}

// returnMatches filters candidates by result type. A nil target type means
// a procedure context.
func returnMatches(targetType *symbols.TypeEnt, sig *symbols.Signature) bool {
	if targetType == nil {
		return sig.Return == nil
	}
	if sig.Return == nil {
		return false
	}
	if isInterfaceType(sig.Return.BaseType()) || isInterfaceType(targetType.BaseType()) {
		return true
	}
	return sig.Return.SameBase(targetType)
}

// resolveOverloadedWithTargetType narrows an overload set by the expected
// result type and the actuals. Outcomes: a unique match binds the reference
// and returns Ok; no match reports the candidate list and returns NotOk;
// several surviving candidates leave the reference cleared and return
// Unknown for the caller's context to settle.
func (a *Analyzer) resolveOverloadedWithTargetType(
	scope *symbols.Scope,
	set *symbols.OverloadedSet,
	targetType *symbols.TypeEnt,
	pos token.Pos,
	designator symbols.Designator,
	setRef func(*symbols.AnyEnt),
	params *callParams,
	diags diagnostics.Handler,
) TypeCheck {
	setRef(nil)

	var viable []symbols.OverloadedEnt
	for _, ent := range set.SortedEntities() {
		sig := ent.Signature()
		if arityMatches(params, sig) && returnMatches(targetType, sig) {
			viable = append(viable, ent)
		}
	}

	noMatch := func() TypeCheck {
		diag := diagnostics.NewError(
			diagnostics.InvalidCall,
			pos,
			fmt.Sprintf("Could not resolve '%s'", designator),
		)
		addSubprogramCandidates(&diag, set)
		diags.Push(diag)
		a.analyzeParamsUntargeted(scope, params, diags)
		return TypeNotOk
	}

	switch len(viable) {
	case 0:
		return noMatch()
	case 1:
		ent := viable[0]
		setRef(ent.Ent())
		a.analyzeParamsWithFormals(scope, params, ent.Signature().Params, diags)
		return TypeOk
	}

	// Several candidates fit the result type; narrow by how the actuals
	// type against each candidate's formals, judging silently.
	var matching []symbols.OverloadedEnt
	for _, ent := range viable {
		scratch := diagnostics.NewBag()
		check := a.analyzeParamsWithFormals(scope, params, ent.Signature().Params, scratch)
		if check != TypeNotOk && !scratch.HasErrors() {
			matching = append(matching, ent)
		}
	}

	switch len(matching) {
	case 0:
		return noMatch()
	case 1:
		ent := matching[0]
		setRef(ent.Ent())
		a.analyzeParamsWithFormals(scope, params, ent.Signature().Params, diags)
		return TypeOk
	default:
		// Still ambiguous; re-analyze generically so sub-expressions carry
		// their own diagnostics and references.
		a.analyzeParamsUntargeted(scope, params, diags)
		return TypeUnknown
	}
}
