package parser

import (
	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/token"
)

func (p *Parser) sequentialEnd() bool {
	switch p.curToken.Type {
	case token.END, token.ELSIF, token.ELSE, token.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseSequentialStatements() []ast.SequentialStatement {
	var stmts []ast.SequentialStatement
	for !p.sequentialEnd() {
		stmt := p.parseSequentialStatement()
		if stmt == nil {
			p.errorf("expected statement, got '%s'", p.curToken.Lexeme)
			p.skipToSemi()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (p *Parser) parseSequentialStatement() ast.SequentialStatement {
	switch p.curToken.Type {
	case token.NULL:
		tok := p.curToken
		p.nextToken()
		p.expect(token.SEMI)
		return &ast.NullStatement{Token: tok}

	case token.RETURN:
		tok := p.curToken
		p.nextToken()
		stmt := &ast.ReturnStatement{Token: tok}
		if !p.curTokenIs(token.SEMI) {
			stmt.Expr = p.parseExpression()
		}
		p.expect(token.SEMI)
		return stmt

	case token.WAIT:
		tok := p.curToken
		p.nextToken()
		stmt := &ast.WaitStatement{Token: tok}
		if p.curTokenIs(token.IDENT) && p.curToken.Literal == "until" {
			p.nextToken()
			stmt.Condition = p.parseExpression()
		}
		p.expect(token.SEMI)
		return stmt

	case token.ASSERT:
		return p.parseAssert()

	case token.IF:
		return p.parseIfStatement()

	case token.IDENT:
		return p.parseNameStatement()

	default:
		return nil
	}
}

func (p *Parser) parseAssert() *ast.AssertStatement {
	tok := p.curToken
	p.nextToken() // assert
	stmt := &ast.AssertStatement{Token: tok}
	stmt.Condition = p.parseExpression()
	if p.accept(token.REPORT) {
		stmt.Report = p.parseExpression()
	}
	if p.accept(token.SEVERITY) {
		stmt.Severity = p.parseExpression()
	}
	p.expect(token.SEMI)
	return stmt
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	tok := p.curToken
	p.nextToken() // if
	stmt := &ast.IfStatement{Token: tok}

	branch := &ast.IfBranch{Condition: p.parseExpression()}
	p.expect(token.THEN)
	branch.Stmts = p.parseSequentialStatements()
	stmt.Branches = append(stmt.Branches, branch)

	for p.curTokenIs(token.ELSIF) {
		p.nextToken()
		branch := &ast.IfBranch{Condition: p.parseExpression()}
		p.expect(token.THEN)
		branch.Stmts = p.parseSequentialStatements()
		stmt.Branches = append(stmt.Branches, branch)
	}
	if p.accept(token.ELSE) {
		stmt.Else = p.parseSequentialStatements()
	}
	p.expect(token.END)
	p.expect(token.IF)
	p.expect(token.SEMI)
	return stmt
}

// parseNameStatement parses the statements that begin with a name: variable
// assignment, signal assignment and procedure call.
func (p *Parser) parseNameStatement() ast.SequentialStatement {
	startTok := p.curToken
	name := p.parseName()

	switch p.curToken.Type {
	case token.ASSIGN:
		p.nextToken()
		stmt := &ast.VariableAssignment{Token: startTok, Target: name}
		stmt.Rhs = p.parseExpressionRhs()
		p.expect(token.SEMI)
		return stmt

	case token.LTE:
		p.nextToken()
		stmt := &ast.SignalAssignment{Token: startTok, Target: name}
		stmt.Rhs = p.parseWaveformRhs()
		p.expect(token.SEMI)
		return stmt

	default:
		call := asProcedureCall(startTok, name)
		p.expect(token.SEMI)
		return &ast.ProcedureCallStatement{Token: startTok, Call: call}
	}
}

// asProcedureCall normalizes a parsed name into the call form: a bare name
// becomes a call without parameters.
func asProcedureCall(tok token.Token, name ast.Name) *ast.CallOrIndexed {
	if call, ok := name.(*ast.CallOrIndexed); ok {
		return call
	}
	return &ast.CallOrIndexed{Token: tok, Prefix: name}
}

func (p *Parser) parseExpressionRhs() ast.AssignmentRightHand[ast.Expression] {
	expr := p.parseExpression()
	if !p.curTokenIs(token.WHEN) {
		return ast.AssignmentRightHand[ast.Expression]{Simple: expr}
	}

	cond := &ast.ConditionalRhs[ast.Expression]{}
	p.nextToken() // when
	cond.Conditionals = append(cond.Conditionals, ast.Conditional[ast.Expression]{
		Item:      expr,
		Condition: p.parseExpression(),
	})
	for p.accept(token.ELSE) {
		item := p.parseExpression()
		if p.accept(token.WHEN) {
			cond.Conditionals = append(cond.Conditionals, ast.Conditional[ast.Expression]{
				Item:      item,
				Condition: p.parseExpression(),
			})
			continue
		}
		cond.Else = item
		break
	}
	return ast.AssignmentRightHand[ast.Expression]{Conditional: cond}
}

func (p *Parser) parseWaveformRhs() ast.AssignmentRightHand[*ast.Waveform] {
	wavf := p.parseWaveform()
	if !p.curTokenIs(token.WHEN) {
		return ast.AssignmentRightHand[*ast.Waveform]{Simple: wavf}
	}

	cond := &ast.ConditionalRhs[*ast.Waveform]{}
	p.nextToken() // when
	cond.Conditionals = append(cond.Conditionals, ast.Conditional[*ast.Waveform]{
		Item:      wavf,
		Condition: p.parseExpression(),
	})
	for p.accept(token.ELSE) {
		item := p.parseWaveform()
		if p.accept(token.WHEN) {
			cond.Conditionals = append(cond.Conditionals, ast.Conditional[*ast.Waveform]{
				Item:      item,
				Condition: p.parseExpression(),
			})
			continue
		}
		cond.Else = item
		break
	}
	return ast.AssignmentRightHand[*ast.Waveform]{Conditional: cond}
}

func (p *Parser) parseWaveform() *ast.Waveform {
	wavf := &ast.Waveform{Token: p.curToken}
	for {
		elem := &ast.WaveformElement{Value: p.parseExpression()}
		if p.accept(token.AFTER) {
			elem.After = p.parseExpression()
		}
		wavf.Elements = append(wavf.Elements, elem)
		if !p.accept(token.COMMA) {
			break
		}
	}
	return wavf
}

func (p *Parser) parseConcurrentStatements() []ast.ConcurrentStatement {
	var stmts []ast.ConcurrentStatement
	for !p.curTokenIs(token.END) && !p.curTokenIs(token.EOF) {
		stmt := p.parseConcurrentStatement()
		if stmt == nil {
			p.errorf("expected concurrent statement, got '%s'", p.curToken.Lexeme)
			p.skipToSemi()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (p *Parser) parseConcurrentStatement() ast.ConcurrentStatement {
	var label *ast.Ident
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.COLON) {
		label = &ast.Ident{Token: p.curToken, Value: p.curToken.Literal}
		p.nextToken()
		p.nextToken()
	}

	switch p.curToken.Type {
	case token.PROCESS:
		return p.parseProcess(label)
	case token.BLOCK:
		return p.parseBlock(label)
	case token.ASSERT:
		return p.parseAssert()
	case token.IDENT:
		startTok := p.curToken
		name := p.parseName()
		if p.accept(token.LTE) {
			stmt := &ast.SignalAssignment{Token: startTok, Target: name}
			stmt.Rhs = p.parseWaveformRhs()
			p.expect(token.SEMI)
			return stmt
		}
		call := asProcedureCall(startTok, name)
		p.expect(token.SEMI)
		return &ast.ProcedureCallStatement{Token: startTok, Call: call}
	default:
		return nil
	}
}

func (p *Parser) parseProcess(label *ast.Ident) *ast.ProcessStatement {
	tok := p.curToken
	p.nextToken() // process
	stmt := &ast.ProcessStatement{Token: tok, Label: label}

	if p.accept(token.LPAREN) {
		for {
			stmt.Sensitivity = append(stmt.Sensitivity, p.parseName())
			if !p.accept(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}
	p.accept(token.IS)
	stmt.Decls = p.parseDeclarativePart()
	p.expect(token.BEGIN)
	stmt.Stmts = p.parseSequentialStatements()
	p.expect(token.END)
	p.expect(token.PROCESS)
	if p.curTokenIs(token.IDENT) {
		p.nextToken()
	}
	p.expect(token.SEMI)
	return stmt
}

func (p *Parser) parseBlock(label *ast.Ident) *ast.BlockStatement {
	tok := p.curToken
	p.nextToken() // block
	stmt := &ast.BlockStatement{Token: tok, Label: label}
	p.accept(token.IS)
	stmt.Decls = p.parseDeclarativePart()
	p.expect(token.BEGIN)
	stmt.Stmts = p.parseConcurrentStatements()
	p.expect(token.END)
	p.expect(token.BLOCK)
	if p.curTokenIs(token.IDENT) {
		p.nextToken()
	}
	p.expect(token.SEMI)
	return stmt
}
