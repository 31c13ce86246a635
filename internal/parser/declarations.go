package parser

import (
	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// declarativeEnd lists the tokens that terminate a declarative part.
func (p *Parser) declarativeEnd() bool {
	switch p.curToken.Type {
	case token.BEGIN, token.END, token.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseDeclarativePart() []ast.Declaration {
	var decls []ast.Declaration
	for !p.declarativeEnd() {
		decl := p.parseDeclaration()
		if decl == nil {
			p.errorf("expected declaration, got '%s'", p.curToken.Lexeme)
			p.skipToSemi()
			continue
		}
		decls = append(decls, decl)
	}
	return decls
}

func (p *Parser) parseDeclaration() ast.Declaration {
	switch p.curToken.Type {
	case token.CONSTANT:
		return p.parseObjectDeclaration(ast.ClassConstant)
	case token.SIGNAL:
		return p.parseObjectDeclaration(ast.ClassSignal)
	case token.VARIABLE:
		return p.parseObjectDeclaration(ast.ClassVariable)
	case token.SHARED:
		p.nextToken()
		if !p.curTokenIs(token.VARIABLE) {
			p.errorf("expected 'variable' after 'shared'")
			return nil
		}
		return p.parseObjectDeclaration(ast.ClassSharedVariable)
	case token.FILE:
		return p.parseFileDeclaration()
	case token.TYPE:
		return p.parseTypeDeclaration()
	case token.SUBTYPE:
		return p.parseSubtypeDeclaration()
	case token.ALIAS:
		return p.parseAliasDeclaration()
	case token.ATTRIBUTE:
		return p.parseAttribute()
	case token.FUNCTION, token.PROCEDURE, token.PURE, token.IMPURE:
		return p.parseSubprogram()
	case token.USE:
		return p.parseUseClause()
	default:
		return nil
	}
}

func (p *Parser) parseObjectDeclaration(class ast.ObjectClass) ast.Declaration {
	tok := p.curToken
	p.nextToken() // class keyword
	decl := &ast.ObjectDeclaration{Token: tok, Class: class}
	decl.Ident = p.parseIdent()
	p.expect(token.COLON)
	decl.Subtype = p.parseSubtypeIndication()
	if p.accept(token.ASSIGN) {
		decl.Value = p.parseExpression()
	}
	p.expect(token.SEMI)
	return decl
}

func (p *Parser) parseFileDeclaration() ast.Declaration {
	tok := p.curToken
	p.nextToken() // file
	decl := &ast.FileDeclaration{Token: tok}
	decl.Ident = p.parseIdent()
	p.expect(token.COLON)
	decl.Subtype = p.parseSubtypeIndication()
	if p.accept(token.OPEN) {
		decl.OpenInfo = p.parseExpression()
	}
	if p.accept(token.IS) {
		decl.FileName = p.parseExpression()
	}
	p.expect(token.SEMI)
	return decl
}

func (p *Parser) parseSubtypeDeclaration() ast.Declaration {
	tok := p.curToken
	p.nextToken() // subtype
	decl := &ast.SubtypeDeclaration{Token: tok}
	decl.Ident = p.parseIdent()
	p.expect(token.IS)
	decl.Subtype = p.parseSubtypeIndication()
	p.expect(token.SEMI)
	return decl
}

// parseSubtypeIndication parses `mark [range ...] [(constraints)]`.
func (p *Parser) parseSubtypeIndication() *ast.SubtypeIndication {
	indication := &ast.SubtypeIndication{Token: p.curToken}
	indication.Mark = p.parseSelectedName()

	switch {
	case p.curTokenIs(token.RANGE):
		tok := p.curToken
		p.nextToken()
		indication.Constraint = &ast.RangeConstraintNode{Token: tok, Range: p.parseRange()}
	case p.curTokenIs(token.LPAREN):
		tok := p.curToken
		p.nextToken()
		constraint := &ast.IndexConstraintNode{Token: tok}
		for {
			constraint.Ranges = append(constraint.Ranges, p.parseDiscreteRange())
			if !p.accept(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
		indication.Constraint = constraint
	}
	return indication
}

func (p *Parser) parseAliasDeclaration() ast.Declaration {
	tok := p.curToken
	p.nextToken() // alias
	decl := &ast.AliasDeclaration{Token: tok}
	decl.Designator = p.parseIdent()
	if p.accept(token.COLON) {
		decl.Subtype = p.parseSubtypeIndication()
	}
	p.expect(token.IS)
	decl.Name = p.parseName()
	if p.curTokenIs(token.LBRACKET) {
		decl.Signature = p.parseSignature()
	}
	p.expect(token.SEMI)
	return decl
}

// parseSignature parses `[mark {, mark} [return mark]]`.
func (p *Parser) parseSignature() *ast.SignatureNode {
	sig := &ast.SignatureNode{Token: p.curToken}
	p.expect(token.LBRACKET)
	for !p.curTokenIs(token.RBRACKET) && !p.curTokenIs(token.EOF) {
		if p.accept(token.RETURN) {
			sig.Return = p.parseSelectedName()
			break
		}
		sig.Params = append(sig.Params, p.parseSelectedName())
		if !p.accept(token.COMMA) {
			if p.accept(token.RETURN) {
				sig.Return = p.parseSelectedName()
			}
			break
		}
	}
	p.expect(token.RBRACKET)
	return sig
}

// parseAttribute parses an attribute declaration or specification.
func (p *Parser) parseAttribute() ast.Declaration {
	tok := p.curToken
	p.nextToken() // attribute
	ident := p.parseIdent()

	if p.accept(token.COLON) {
		decl := &ast.AttributeDeclaration{Token: tok, Ident: ident}
		decl.TypeMark = p.parseSelectedName()
		p.expect(token.SEMI)
		return decl
	}

	p.expect(token.OF)
	spec := &ast.AttributeSpecification{Token: tok, Ident: ident}
	spec.EntityName = p.parseIdent()
	p.expect(token.COLON)
	spec.Class = p.parseEntityClass()
	p.expect(token.IS)
	spec.Value = p.parseExpression()
	p.expect(token.SEMI)
	return spec
}

func (p *Parser) parseEntityClass() ast.EntityClass {
	class := ast.EntityClassType
	switch p.curToken.Type {
	case token.ENTITY:
		class = ast.EntityClassEntity
	case token.ARCHITECTURE:
		class = ast.EntityClassArchitecture
	case token.PACKAGE:
		class = ast.EntityClassPackage
	case token.SIGNAL:
		class = ast.EntityClassSignal
	case token.VARIABLE:
		class = ast.EntityClassVariable
	case token.CONSTANT:
		class = ast.EntityClassConstant
	case token.TYPE:
		class = ast.EntityClassType
	case token.SUBTYPE:
		class = ast.EntityClassSubtype
	case token.PROCEDURE:
		class = ast.EntityClassProcedure
	case token.FUNCTION:
		class = ast.EntityClassFunction
	case token.FILE:
		class = ast.EntityClassFile
	case token.IDENT:
		if p.curToken.Literal == "label" {
			class = ast.EntityClassLabel
		} else {
			p.errorf("expected entity class, got '%s'", p.curToken.Lexeme)
		}
	default:
		p.errorf("expected entity class, got '%s'", p.curToken.Lexeme)
	}
	p.nextToken()
	return class
}

// parseInterfaceList parses `( item {; item} )`. Items without an explicit
// class default to defaultClass: constant in generic and parameter lists,
// signal in port lists.
func (p *Parser) parseInterfaceList(defaultClass ast.ObjectClass) []*ast.InterfaceDeclaration {
	var items []*ast.InterfaceDeclaration
	p.expect(token.LPAREN)
	for {
		item := p.parseInterfaceDeclaration(defaultClass)
		if item != nil {
			items = append(items, item)
		}
		if !p.accept(token.SEMI) {
			break
		}
	}
	p.expect(token.RPAREN)
	return items
}

func (p *Parser) parseInterfaceDeclaration(defaultClass ast.ObjectClass) *ast.InterfaceDeclaration {
	item := &ast.InterfaceDeclaration{Token: p.curToken}

	switch p.curToken.Type {
	case token.CONSTANT:
		item.Class = ast.ClassConstant
		p.nextToken()
	case token.SIGNAL:
		item.Class = ast.ClassSignal
		p.nextToken()
	case token.VARIABLE:
		item.Class = ast.ClassVariable
		p.nextToken()
	case token.FILE:
		item.File = true
		p.nextToken()
	default:
		item.Class = defaultClass
	}

	item.Ident = p.parseIdent()
	p.expect(token.COLON)

	switch p.curToken.Type {
	case token.IN:
		item.Mode, item.HasMode = ast.ModeIn, true
		p.nextToken()
	case token.OUT:
		item.Mode, item.HasMode = ast.ModeOut, true
		p.nextToken()
	case token.INOUT:
		item.Mode, item.HasMode = ast.ModeInOut, true
		p.nextToken()
	case token.BUFFER:
		item.Mode, item.HasMode = ast.ModeBuffer, true
		p.nextToken()
	case token.LINKAGE:
		item.Mode, item.HasMode = ast.ModeLinkage, true
		p.nextToken()
	}

	item.Subtype = p.parseSubtypeIndication()
	if p.accept(token.ASSIGN) {
		item.Default = p.parseExpression()
	}
	return item
}

// parseSubprogram parses a subprogram declaration or body.
func (p *Parser) parseSubprogram() ast.Declaration {
	spec := &ast.SubprogramSpec{Token: p.curToken}
	if p.curTokenIs(token.PURE) {
		p.nextToken()
	} else if p.curTokenIs(token.IMPURE) {
		spec.Impure = true
		p.nextToken()
	}

	switch p.curToken.Type {
	case token.FUNCTION:
		spec.Function = true
		p.nextToken()
	case token.PROCEDURE:
		p.nextToken()
	default:
		p.errorf("expected 'function' or 'procedure', got '%s'", p.curToken.Lexeme)
		p.skipToSemi()
		return &ast.SubprogramDeclaration{Spec: spec}
	}

	if p.curTokenIs(token.STRING) {
		spec.Operator = p.curToken.Literal
		spec.Designator = &ast.Ident{Token: p.curToken, Value: p.curToken.Literal}
		p.nextToken()
	} else {
		spec.Designator = p.parseIdent()
	}

	if p.curTokenIs(token.LPAREN) {
		spec.Params = p.parseInterfaceList(ast.ClassConstant)
	}
	if spec.Function {
		p.expect(token.RETURN)
		spec.Return = p.parseSelectedName()
	}

	if p.accept(token.SEMI) {
		return &ast.SubprogramDeclaration{Spec: spec}
	}

	p.expect(token.IS)
	body := &ast.SubprogramBody{Spec: spec}
	body.Decls = p.parseDeclarativePart()
	p.expect(token.BEGIN)
	body.Stmts = p.parseSequentialStatements()
	p.expect(token.END)
	p.accept(token.FUNCTION)
	p.accept(token.PROCEDURE)
	if p.curTokenIs(token.IDENT) || p.curTokenIs(token.STRING) {
		p.nextToken()
	}
	p.expect(token.SEMI)
	return body
}
