package parser

import (
	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/token"
)

func (p *Parser) parseTypeDeclaration() ast.Declaration {
	tok := p.curToken
	p.nextToken() // type
	decl := &ast.TypeDeclaration{Token: tok}
	decl.Ident = p.parseIdent()

	if p.accept(token.SEMI) {
		// Incomplete type declaration.
		return decl
	}
	p.expect(token.IS)
	decl.Def = p.parseTypeDefinition()
	p.expect(token.SEMI)
	return decl
}

func (p *Parser) parseTypeDefinition() ast.TypeDefinition {
	switch p.curToken.Type {
	case token.LPAREN:
		return p.parseEnumerationTypeDef()
	case token.RANGE:
		return p.parseRangeTypeDef()
	case token.ARRAY:
		return p.parseArrayTypeDef()
	case token.RECORD:
		return p.parseRecordTypeDef()
	case token.ACCESS:
		tok := p.curToken
		p.nextToken()
		return &ast.AccessTypeDef{Token: tok, Subtype: p.parseSubtypeIndication()}
	case token.FILE:
		tok := p.curToken
		p.nextToken()
		p.expect(token.OF)
		return &ast.FileTypeDef{Token: tok, TypeMark: p.parseSelectedName()}
	case token.PROTECTED:
		return p.parseProtectedTypeDef()
	default:
		p.errorf("expected type definition, got '%s'", p.curToken.Lexeme)
		return nil
	}
}

func (p *Parser) parseEnumerationTypeDef() ast.TypeDefinition {
	def := &ast.EnumerationTypeDef{Token: p.curToken}
	p.expect(token.LPAREN)
	for {
		lit := &ast.EnumLiteralNode{Token: p.curToken}
		switch p.curToken.Type {
		case token.IDENT:
			lit.Value = p.curToken.Literal
		case token.CHARACTER:
			lit.Character = true
			lit.Value = p.curToken.Literal
		default:
			p.errorf("expected enumeration literal, got '%s'", p.curToken.Lexeme)
			p.skipToSemi()
			return def
		}
		p.nextToken()
		def.Literals = append(def.Literals, lit)
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return def
}

// parseRangeTypeDef parses integer, floating and physical types.
func (p *Parser) parseRangeTypeDef() ast.TypeDefinition {
	tok := p.curToken
	p.nextToken() // range
	rng := p.parseRange()

	if !p.curTokenIs(token.UNITS) {
		return &ast.IntegerTypeDef{Token: tok, Range: rng}
	}

	def := &ast.PhysicalTypeDef{Token: tok, Range: rng}
	p.nextToken() // units
	primary := &ast.PhysicalUnitNode{Token: p.curToken}
	primary.Ident = p.parseIdent()
	p.expect(token.SEMI)
	def.Units = append(def.Units, primary)

	for p.curTokenIs(token.IDENT) {
		unit := &ast.PhysicalUnitNode{Token: p.curToken}
		unit.Ident = p.parseIdent()
		p.expect(token.EQ)
		if p.curTokenIs(token.INTEGER) {
			unit.Value = p.parseExpression()
			if p.curTokenIs(token.IDENT) {
				unit.UnitName = p.parseIdent()
			}
		} else {
			unit.UnitName = p.parseIdent()
		}
		p.expect(token.SEMI)
		def.Units = append(def.Units, unit)
	}
	p.expect(token.END)
	p.expect(token.UNITS)
	if p.curTokenIs(token.IDENT) {
		p.nextToken()
	}
	return def
}

func (p *Parser) parseArrayTypeDef() ast.TypeDefinition {
	def := &ast.ArrayTypeDef{Token: p.curToken}
	p.nextToken() // array
	p.expect(token.LPAREN)
	for {
		def.Indexes = append(def.Indexes, p.parseArrayIndex())
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.OF)
	def.Elem = p.parseSubtypeIndication()
	return def
}

// parseArrayIndex parses `mark range <>` or a discrete range.
func (p *Parser) parseArrayIndex() *ast.ArrayIndexNode {
	index := &ast.ArrayIndexNode{Token: p.curToken}
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.RANGE) {
		// Distinguish `natural range <>` from `natural range 0 to 1`.
		if p.pos < len(p.tokens) && p.tokens[p.pos].Type == token.BOX {
			index.TypeMark = p.parseSelectedName()
			p.expect(token.RANGE)
			p.expect(token.BOX)
			return index
		}
	}
	index.Range = p.parseDiscreteRange()
	return index
}

func (p *Parser) parseRecordTypeDef() ast.TypeDefinition {
	def := &ast.RecordTypeDef{Token: p.curToken}
	p.nextToken() // record
	for !p.curTokenIs(token.END) && !p.curTokenIs(token.EOF) {
		elem := &ast.ElementDeclarationNode{Token: p.curToken}
		elem.Ident = p.parseIdent()
		p.expect(token.COLON)
		elem.Subtype = p.parseSubtypeIndication()
		p.expect(token.SEMI)
		def.Elements = append(def.Elements, elem)
	}
	p.expect(token.END)
	p.expect(token.RECORD)
	if p.curTokenIs(token.IDENT) {
		p.nextToken()
	}
	return def
}

func (p *Parser) parseProtectedTypeDef() ast.TypeDefinition {
	tok := p.curToken
	p.nextToken() // protected
	isBody := p.accept(token.BODY)

	var decls []ast.Declaration
	for !p.curTokenIs(token.END) && !p.curTokenIs(token.EOF) {
		decl := p.parseDeclaration()
		if decl == nil {
			p.errorf("expected declaration, got '%s'", p.curToken.Lexeme)
			p.skipToSemi()
			continue
		}
		decls = append(decls, decl)
	}
	p.expect(token.END)
	p.expect(token.PROTECTED)
	if isBody {
		p.expect(token.BODY)
	}
	if p.curTokenIs(token.IDENT) {
		p.nextToken()
	}
	if isBody {
		return &ast.ProtectedTypeBody{Token: tok, Decls: decls}
	}
	return &ast.ProtectedTypeDef{Token: tok, Decls: decls}
}
