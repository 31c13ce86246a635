package analyzer

import (
	"fmt"

	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
)

// analyzeTarget resolves the left-hand side of an assignment.
func (a *Analyzer) analyzeTarget(scope *symbols.Scope, target ast.Name, diags diagnostics.Handler) {
	a.resolveName(scope, ast.Pos(target), target, diags)
}

// analyzeExprAssignment analyzes `target := rhs` in its simple, conditional
// and selected forms.
func (a *Analyzer) analyzeExprAssignment(scope *symbols.Scope, target ast.Name, rhs *ast.AssignmentRightHand[ast.Expression], diags diagnostics.Handler) {
	switch {
	case rhs.Simple != nil:
		a.analyzeTarget(scope, target, diags)
		a.analyzeExpression(scope, rhs.Simple, diags)
	case rhs.Conditional != nil:
		a.analyzeTarget(scope, target, diags)
		for _, cond := range rhs.Conditional.Conditionals {
			a.analyzeExpression(scope, cond.Item, diags)
			a.analyzeExpression(scope, cond.Condition, diags)
		}
		if rhs.Conditional.Else != nil {
			a.analyzeExpression(scope, rhs.Conditional.Else, diags)
		}
	case rhs.Selected != nil:
		a.analyzeExpression(scope, rhs.Selected.Expression, diags)
		// The target is located after the selector expression.
		a.analyzeTarget(scope, target, diags)
		for _, alt := range rhs.Selected.Alternatives {
			a.analyzeExpression(scope, alt.Item, diags)
			a.analyzeChoices(scope, alt.Choices, diags)
		}
	}
}

// analyzeWaveformAssignment analyzes `target <= rhs` in its simple,
// conditional and selected forms.
func (a *Analyzer) analyzeWaveformAssignment(scope *symbols.Scope, target ast.Name, rhs *ast.AssignmentRightHand[*ast.Waveform], diags diagnostics.Handler) {
	switch {
	case rhs.Simple != nil:
		a.analyzeTarget(scope, target, diags)
		a.analyzeWaveform(scope, rhs.Simple, diags)
	case rhs.Conditional != nil:
		a.analyzeTarget(scope, target, diags)
		for _, cond := range rhs.Conditional.Conditionals {
			a.analyzeWaveform(scope, cond.Item, diags)
			a.analyzeExpression(scope, cond.Condition, diags)
		}
		if rhs.Conditional.Else != nil {
			a.analyzeWaveform(scope, rhs.Conditional.Else, diags)
		}
	case rhs.Selected != nil:
		a.analyzeExpression(scope, rhs.Selected.Expression, diags)
		a.analyzeTarget(scope, target, diags)
		for _, alt := range rhs.Selected.Alternatives {
			a.analyzeWaveform(scope, alt.Item, diags)
			a.analyzeChoices(scope, alt.Choices, diags)
		}
	}
}

// analyzeProcedureCall resolves a procedure call statement: the name must
// lead to an overload set containing at least one procedure.
func (a *Analyzer) analyzeProcedureCall(scope *symbols.Scope, call *ast.CallOrIndexed, diags diagnostics.Handler) {
	named := a.resolveName(scope, ast.Pos(call.Prefix), call.Prefix, diags)
	if named == nil {
		a.analyzeAssocElems(scope, call.Params, diags)
		return
	}

	if !named.IsOverloaded() {
		ent := named.Single()
		diag := diagnostics.NewError(
			diagnostics.InvalidCall,
			ast.Pos(call.Prefix),
			"Invalid procedure call",
		)
		if ent.DeclPos().Valid() {
			diag.AddRelated(ent.DeclPos(), fmt.Sprintf("%s is not a procedure", ent.Describe()))
		}
		diags.Push(diag)
		a.analyzeAssocElems(scope, call.Params, diags)
		return
	}

	set := named.Overloaded()
	anyProcedure := false
	for _, ent := range set.Entities() {
		if ent.IsProcedure() {
			anyProcedure = true
			break
		}
	}

	if !anyProcedure {
		diag := diagnostics.NewError(
			diagnostics.InvalidCall,
			ast.Pos(call.Prefix),
			"Invalid procedure call",
		)
		for _, ent := range set.SortedEntities() {
			if ent.Ent().DeclPos().Valid() {
				diag.AddRelated(ent.Ent().DeclPos(), fmt.Sprintf("%s is not a procedure", ent.Ent().Describe()))
			}
		}
		diags.Push(diag)
		a.analyzeAssocElems(scope, call.Params, diags)
		return
	}

	suffix := call.SuffixRef()
	if suffix == nil {
		a.analyzeAssocElems(scope, call.Params, diags)
		return
	}
	a.resolveOverloadedWithTargetType(scope, set, nil, ast.Pos(call.Prefix), suffix.Designator,
		suffix.Set, &callParams{assoc: call.Params}, diags)
}

// analyzeSequentialStatements walks the statements of a process or
// subprogram body.
func (a *Analyzer) analyzeSequentialStatements(scope *symbols.Scope, stmts []ast.SequentialStatement, diags diagnostics.Handler) {
	for _, stmt := range stmts {
		a.analyzeSequentialStatement(scope, stmt, diags)
	}
}

func (a *Analyzer) analyzeSequentialStatement(scope *symbols.Scope, stmt ast.SequentialStatement, diags diagnostics.Handler) {
	switch s := stmt.(type) {
	case *ast.VariableAssignment:
		a.analyzeExprAssignment(scope, s.Target, &s.Rhs, diags)
	case *ast.SignalAssignment:
		a.analyzeWaveformAssignment(scope, s.Target, &s.Rhs, diags)
	case *ast.ProcedureCallStatement:
		a.analyzeProcedureCall(scope, s.Call, diags)
	case *ast.AssertStatement:
		a.analyzeExpression(scope, s.Condition, diags)
		if s.Report != nil {
			a.analyzeExpression(scope, s.Report, diags)
		}
		if s.Severity != nil {
			a.analyzeExpressionWithTargetType(scope, a.root.std.severityLevel, ast.Pos(s.Severity), s.Severity, diags)
		}
	case *ast.ReturnStatement:
		if s.Expr != nil {
			a.analyzeExpression(scope, s.Expr, diags)
		}
	case *ast.WaitStatement:
		if s.Condition != nil {
			a.analyzeExpression(scope, s.Condition, diags)
		}
	case *ast.IfStatement:
		for _, branch := range s.Branches {
			a.analyzeExpression(scope, branch.Condition, diags)
			a.analyzeSequentialStatements(scope, branch.Stmts, diags)
		}
		a.analyzeSequentialStatements(scope, s.Else, diags)
	case *ast.NullStatement:
	}
}

// analyzeConcurrentStatements walks the statements of an architecture,
// entity or block.
func (a *Analyzer) analyzeConcurrentStatements(scope *symbols.Scope, stmts []ast.ConcurrentStatement, diags diagnostics.Handler) {
	addLabel := func(label *ast.Ident) {
		if label == nil {
			return
		}
		ent := symbols.NewEntity(label.Designator(), &symbols.LabelEnt{}, ast.Pos(label))
		label.Ref = ent
		scope.Add(ent, diags)
	}

	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ProcessStatement:
			addLabel(s.Label)
			nested := scope.Nested()
			for _, name := range s.Sensitivity {
				a.resolveName(nested, ast.Pos(name), name, diags)
			}
			a.analyzeDeclarativePart(nested, s.Decls, declProcess, diags)
			a.analyzeSequentialStatements(nested, s.Stmts, diags)
			nested.Close(diags)
		case *ast.BlockStatement:
			addLabel(s.Label)
			nested := scope.Nested()
			a.analyzeDeclarativePart(nested, s.Decls, declBlock, diags)
			a.analyzeConcurrentStatements(nested, s.Stmts, diags)
			nested.Close(diags)
		case *ast.SignalAssignment:
			a.analyzeWaveformAssignment(scope, s.Target, &s.Rhs, diags)
		case *ast.ProcedureCallStatement:
			a.analyzeProcedureCall(scope, s.Call, diags)
		case *ast.AssertStatement:
			a.analyzeExpression(scope, s.Condition, diags)
			if s.Report != nil {
				a.analyzeExpression(scope, s.Report, diags)
			}
			if s.Severity != nil {
				a.analyzeExpressionWithTargetType(scope, a.root.std.severityLevel, ast.Pos(s.Severity), s.Severity, diags)
			}
		}
	}
}
