package parser

import (
	"strconv"
	"strings"

	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

func isLogicalOp(t token.TokenType) bool {
	switch t {
	case token.AND, token.OR, token.NAND, token.NOR, token.XOR, token.XNOR:
		return true
	}
	return false
}

func isRelationalOp(t token.TokenType) bool {
	switch t {
	case token.EQ, token.NE, token.LT, token.LTE, token.GT, token.GTE:
		return true
	}
	return false
}

func isShiftOp(t token.TokenType) bool {
	switch t {
	case token.SLL, token.SRL, token.SLA, token.SRA, token.ROL, token.ROR:
		return true
	}
	return false
}

// parseExpression parses with VHDL's fixed precedence levels: logical,
// relational, shift, adding, multiplying, and finally factors.
func (p *Parser) parseExpression() ast.Expression {
	left := p.parseRelation()
	for isLogicalOp(p.curToken.Type) {
		op := p.curToken
		p.nextToken()
		right := p.parseRelation()
		left = &ast.Binary{Token: op, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelation() ast.Expression {
	left := p.parseShift()
	for isRelationalOp(p.curToken.Type) {
		op := p.curToken
		p.nextToken()
		right := p.parseShift()
		left = &ast.Binary{Token: op, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseSimpleExpression()
	for isShiftOp(p.curToken.Type) {
		op := p.curToken
		p.nextToken()
		right := p.parseSimpleExpression()
		left = &ast.Binary{Token: op, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseSimpleExpression() ast.Expression {
	var left ast.Expression
	if p.curTokenIs(token.PLUS) || p.curTokenIs(token.MINUS) {
		op := p.curToken
		p.nextToken()
		left = &ast.Unary{Token: op, Op: op.Literal, Operand: p.parseTerm()}
	} else {
		left = p.parseTerm()
	}
	for p.curTokenIs(token.PLUS) || p.curTokenIs(token.MINUS) || p.curTokenIs(token.AMP) {
		op := p.curToken
		p.nextToken()
		right := p.parseTerm()
		left = &ast.Binary{Token: op, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for p.curTokenIs(token.STAR) || p.curTokenIs(token.SLASH) || p.curTokenIs(token.MOD) || p.curTokenIs(token.REM) {
		op := p.curToken
		p.nextToken()
		right := p.parseFactor()
		left = &ast.Binary{Token: op, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseFactor() ast.Expression {
	switch p.curToken.Type {
	case token.ABS, token.NOT:
		op := p.curToken
		p.nextToken()
		return &ast.Unary{Token: op, Op: op.Literal, Operand: p.parseFactor()}
	}
	left := p.parsePrimary()
	if p.curTokenIs(token.POW) {
		op := p.curToken
		p.nextToken()
		right := p.parsePrimary()
		return &ast.Binary{Token: op, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.INTEGER:
		tok := p.curToken
		p.nextToken()
		value, _ := strconv.ParseInt(strings.ReplaceAll(tok.Literal, "_", ""), 10, 64)
		lit := &ast.IntegerLiteral{Token: tok, Value: value}
		// An abstract literal followed by a unit name is a physical
		// literal.
		if p.curTokenIs(token.IDENT) {
			unit := &ast.SimpleName{Token: p.curToken, Designator: symbols.Identifier(p.curToken.Literal)}
			p.nextToken()
			return &ast.PhysicalLiteralExpr{Token: tok, Value: lit, Unit: unit}
		}
		return lit

	case token.REAL:
		tok := p.curToken
		p.nextToken()
		value, _ := strconv.ParseFloat(strings.ReplaceAll(tok.Literal, "_", ""), 64)
		lit := &ast.RealLiteral{Token: tok, Value: value}
		if p.curTokenIs(token.IDENT) {
			unit := &ast.SimpleName{Token: p.curToken, Designator: symbols.Identifier(p.curToken.Literal)}
			p.nextToken()
			return &ast.PhysicalLiteralExpr{Token: tok, Value: lit, Unit: unit}
		}
		return lit

	case token.CHARACTER:
		tok := p.curToken
		p.nextToken()
		return &ast.CharacterLiteral{Token: tok, Value: []rune(tok.Literal)[0]}

	case token.STRING:
		tok := p.curToken
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}

	case token.BITSTRING:
		tok := p.curToken
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}

	case token.NULL:
		tok := p.curToken
		p.nextToken()
		return &ast.NullLiteral{Token: tok}

	case token.NEW:
		tok := p.curToken
		p.nextToken()
		return p.parseAllocator(tok)

	case token.LPAREN:
		return p.parseAggregateOrParenthesized()

	case token.IDENT:
		return p.parseNameOrQualified()

	default:
		p.errorf("expected expression, got '%s'", p.curToken.Lexeme)
		tok := p.curToken
		p.nextToken()
		return &ast.IntegerLiteral{Token: tok}
	}
}

// parseAllocator parses `new mark` or `new mark'(expr)`.
func (p *Parser) parseAllocator(tok token.Token) ast.Expression {
	mark := p.parseSelectedName()
	if p.curTokenIs(token.TICK) && p.peekTokenIs(token.LPAREN) {
		p.nextToken() // tick
		p.nextToken() // lparen
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.Allocator{Token: tok, Qualified: &ast.QualifiedExpression{
			Token:    tok,
			TypeMark: &ast.TypeMark{Name: mark},
			Expr:     expr,
		}}
	}
	indication := &ast.SubtypeIndication{Token: mark.Token, Mark: mark}
	if p.curTokenIs(token.LPAREN) {
		constraintTok := p.curToken
		p.nextToken()
		constraint := &ast.IndexConstraintNode{Token: constraintTok}
		for {
			constraint.Ranges = append(constraint.Ranges, p.parseDiscreteRange())
			if !p.accept(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
		indication.Constraint = constraint
	}
	return &ast.Allocator{Token: tok, Subtype: indication}
}

// parseNameOrQualified parses a name; a tick-parenthesis turns it into a
// qualified expression.
func (p *Parser) parseNameOrQualified() ast.Expression {
	name := p.parseName()
	if p.curTokenIs(token.TICK) && p.peekTokenIs(token.LPAREN) {
		mark := selectedNameOf(name)
		if mark == nil {
			p.errorf("invalid type mark in qualified expression")
		}
		tok := p.curToken
		p.nextToken() // tick
		p.nextToken() // lparen
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.QualifiedExpression{Token: tok, TypeMark: &ast.TypeMark{Name: mark}, Expr: expr}
	}
	return name
}

// selectedNameOf converts a simple or selected name back to the restricted
// selected-name form used for type marks.
func selectedNameOf(name ast.Name) *ast.SelectedName {
	switch n := name.(type) {
	case *ast.SimpleName:
		return &ast.SelectedName{Token: n.Token, Parts: []*ast.NamePart{{Token: n.Token, Designator: n.Designator}}}
	case *ast.Selected:
		prefix := selectedNameOf(n.Prefix)
		if prefix == nil {
			return nil
		}
		prefix.Parts = append(prefix.Parts, &ast.NamePart{Token: n.Suffix.Token, Designator: n.Suffix.Designator})
		return prefix
	default:
		return nil
	}
}

// parseName parses a name in its general form: simple, selected, call or
// indexed, sliced, attribute.
func (p *Parser) parseName() ast.Name {
	var name ast.Name

	switch p.curToken.Type {
	case token.IDENT:
		name = &ast.SimpleName{Token: p.curToken, Designator: symbols.Identifier(p.curToken.Literal)}
		p.nextToken()
	case token.STRING:
		name = &ast.SimpleName{Token: p.curToken, Designator: symbols.OperatorSymbol(p.curToken.Literal)}
		p.nextToken()
	case token.CHARACTER:
		name = &ast.SimpleName{Token: p.curToken, Designator: symbols.CharacterLiteral([]rune(p.curToken.Literal)[0])}
		p.nextToken()
	default:
		p.errorf("expected name, got '%s'", p.curToken.Lexeme)
		tok := p.curToken
		p.nextToken()
		return &ast.SimpleName{Token: tok, Designator: symbols.Identifier(tok.Literal)}
	}

	for {
		switch {
		case p.curTokenIs(token.DOT):
			dot := p.curToken
			p.nextToken()
			if p.curTokenIs(token.ALL) {
				p.nextToken()
				name = &ast.SelectedAll{Token: dot, Prefix: name}
				continue
			}
			part := &ast.NamePart{Token: p.curToken}
			switch p.curToken.Type {
			case token.IDENT:
				part.Designator = symbols.Identifier(p.curToken.Literal)
			case token.STRING:
				part.Designator = symbols.OperatorSymbol(p.curToken.Literal)
			case token.CHARACTER:
				part.Designator = symbols.CharacterLiteral([]rune(p.curToken.Literal)[0])
			default:
				p.errorf("expected suffix, got '%s'", p.curToken.Lexeme)
				return name
			}
			p.nextToken()
			name = &ast.Selected{Token: dot, Prefix: name, Suffix: part}

		case p.curTokenIs(token.LPAREN):
			name = p.parseCallIndexedOrSlice(name)

		case p.curTokenIs(token.TICK):
			if p.peekTokenIs(token.LPAREN) {
				// Qualified expression; the caller handles it.
				return name
			}
			tick := p.curToken
			p.nextToken()
			attr := &ast.AttributeName{Token: tick, Prefix: name}
			switch p.curToken.Type {
			case token.IDENT, token.RANGE, token.SUBTYPE:
				attr.Attr = &ast.Ident{Token: p.curToken, Value: p.curToken.Literal}
				p.nextToken()
			default:
				p.errorf("expected attribute designator, got '%s'", p.curToken.Lexeme)
				return name
			}
			if p.curTokenIs(token.LPAREN) {
				p.nextToken()
				attr.Expr = p.parseExpression()
				p.expect(token.RPAREN)
			}
			name = attr

		default:
			return name
		}
	}
}

// parseCallIndexedOrSlice parses the parenthesized suffix of a name: a
// slice when the argument is syntactically a range, otherwise the
// call-or-indexed form the resolver disambiguates.
func (p *Parser) parseCallIndexedOrSlice(prefix ast.Name) ast.Name {
	lparen := p.curToken
	p.nextToken()

	call := &ast.CallOrIndexed{Token: lparen, Prefix: prefix}
	first := true
	for {
		elem := &ast.AssociationElement{Token: p.curToken}
		if p.curTokenIs(token.OPEN) {
			elem.Open = true
			p.nextToken()
		} else {
			expr := p.parseExpression()
			if first && (p.curTokenIs(token.TO) || p.curTokenIs(token.DOWNTO)) {
				dir := ast.To
				if p.curTokenIs(token.DOWNTO) {
					dir = ast.Downto
				}
				opTok := p.curToken
				p.nextToken()
				right := p.parseExpression()
				p.expect(token.RPAREN)
				return &ast.SliceName{
					Token:  lparen,
					Prefix: prefix,
					Range: &ast.DiscreteRangeExpr{Range: &ast.RangeConstraint{
						Token: opTok, Left: expr, Dir: dir, Right: right,
					}},
				}
			}
			if p.accept(token.ARROW) {
				if formal, ok := expr.(*ast.SimpleName); ok {
					elem.Formal = formal
				} else {
					p.errorf("formal part must be a simple name")
				}
				elem.Actual = p.parseExpression()
			} else {
				elem.Actual = expr
			}
		}
		call.Params = append(call.Params, elem)
		first = false
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return call
}

// parseAggregateOrParenthesized parses `( ... )`: a lone positional
// expression is just parentheses, anything else is an aggregate.
func (p *Parser) parseAggregateOrParenthesized() ast.Expression {
	lparen := p.curToken
	p.nextToken()

	agg := &ast.Aggregate{Token: lparen}
	plain := true
	for {
		assoc := p.parseElementAssociation()
		if assoc.Choices != nil {
			plain = false
		}
		agg.Assocs = append(agg.Assocs, assoc)
		if !p.accept(token.COMMA) {
			break
		}
		plain = false
	}
	p.expect(token.RPAREN)

	if plain && len(agg.Assocs) == 1 {
		return agg.Assocs[0].Expr
	}
	return agg
}

// parseElementAssociation parses `[choices =>] expr` where a choice is an
// expression, a discrete range or others.
func (p *Parser) parseElementAssociation() *ast.ElementAssociation {
	assoc := &ast.ElementAssociation{Token: p.curToken}

	if p.curTokenIs(token.OTHERS) {
		tok := p.curToken
		p.nextToken()
		assoc.Choices = []ast.Choice{&ast.ChoiceOthers{Token: tok}}
		p.expect(token.ARROW)
		assoc.Expr = p.parseExpression()
		return assoc
	}

	expr := p.parseExpression()
	if p.curTokenIs(token.TO) || p.curTokenIs(token.DOWNTO) {
		dir := ast.To
		if p.curTokenIs(token.DOWNTO) {
			dir = ast.Downto
		}
		opTok := p.curToken
		p.nextToken()
		right := p.parseExpression()
		choice := &ast.ChoiceRange{Range: &ast.DiscreteRangeExpr{Range: &ast.RangeConstraint{
			Token: opTok, Left: expr, Dir: dir, Right: right,
		}}}
		assoc.Choices = append(assoc.Choices, choice)
		p.expect(token.ARROW)
		assoc.Expr = p.parseExpression()
		return assoc
	}

	if p.curTokenIs(token.ARROW) || p.curTokenIs(token.BAR) {
		assoc.Choices = append(assoc.Choices, &ast.ChoiceExpression{Expr: expr})
		for p.accept(token.BAR) {
			assoc.Choices = append(assoc.Choices, &ast.ChoiceExpression{Expr: p.parseExpression()})
		}
		p.expect(token.ARROW)
		assoc.Expr = p.parseExpression()
		return assoc
	}

	assoc.Expr = expr
	return assoc
}

// parseRange parses `expr to/downto expr` or a range attribute.
func (p *Parser) parseRange() ast.RangeExpr {
	left := p.parseSimpleExpression()
	if attr, ok := left.(*ast.AttributeName); ok && !p.curTokenIs(token.TO) && !p.curTokenIs(token.DOWNTO) {
		return &ast.RangeAttribute{Attr: attr}
	}
	dir := ast.To
	opTok := p.curToken
	switch p.curToken.Type {
	case token.TO:
		p.nextToken()
	case token.DOWNTO:
		dir = ast.Downto
		p.nextToken()
	default:
		p.errorf("expected 'to' or 'downto', got '%s'", p.curToken.Lexeme)
	}
	right := p.parseSimpleExpression()
	return &ast.RangeConstraint{Token: opTok, Left: left, Dir: dir, Right: right}
}

// parseDiscreteRange parses `mark range ...`, a plain range or a range
// attribute.
func (p *Parser) parseDiscreteRange() ast.DiscreteRange {
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.RANGE) {
		tok := p.curToken
		mark := p.parseSelectedName()
		p.expect(token.RANGE)
		return &ast.DiscreteSubtype{Token: tok, Mark: mark, Range: p.parseRange()}
	}
	return &ast.DiscreteRangeExpr{Range: p.parseRange()}
}
