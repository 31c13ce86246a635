// Package parser builds the AST for a practical VHDL subset. It is the
// external collaborator of the analysis core: the analyzer depends only on
// the AST contract, never on parser internals.
package parser

import (
	"fmt"

	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	file  string
	diags *diagnostics.Bag
}

func New(tokens []token.Token, file string, diags *diagnostics.Bag) *Parser {
	p := &Parser{tokens: tokens, file: file, diags: diags}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) curPos() token.Pos {
	pos := p.curToken.Pos()
	pos.File = p.file
	return pos
}

// expect consumes the current token if it has the wanted type; otherwise it
// reports a syntax error and leaves the token in place.
func (p *Parser) expect(t token.TokenType) (token.Token, bool) {
	if !p.curTokenIs(t) {
		p.errorf("expected '%s', got '%s'", t, p.curToken.Lexeme)
		return p.curToken, false
	}
	tok := p.curToken
	p.nextToken()
	return tok, true
}

func (p *Parser) accept(t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.diags.Push(diagnostics.NewError(diagnostics.Syntax, p.curPos(), fmt.Sprintf(format, args...)))
}

// skipToSemi recovers from a syntax error by skipping past the next
// semicolon.
func (p *Parser) skipToSemi() {
	for !p.curTokenIs(token.SEMI) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
	p.accept(token.SEMI)
}

func (p *Parser) parseIdent() *ast.Ident {
	tok, ok := p.expect(token.IDENT)
	if !ok {
		p.nextToken()
	}
	return &ast.Ident{Token: tok, Value: tok.Literal}
}

// ParseDesignFile parses a whole source file.
func (p *Parser) ParseDesignFile() *ast.DesignFile {
	file := &ast.DesignFile{File: p.file}
	for !p.curTokenIs(token.EOF) {
		context := p.parseContextClause()
		unit := p.parseDesignUnit(context)
		if unit == nil {
			if p.curTokenIs(token.EOF) {
				break
			}
			p.errorf("expected design unit, got '%s'", p.curToken.Lexeme)
			p.skipToSemi()
			continue
		}
		file.Units = append(file.Units, unit)
	}
	return file
}

// parseContextClause parses the library/use/context items preceding a
// design unit.
func (p *Parser) parseContextClause() []ast.ContextItem {
	var items []ast.ContextItem
	for {
		switch {
		case p.curTokenIs(token.LIBRARY):
			tok := p.curToken
			p.nextToken()
			clause := &ast.LibraryClause{Token: tok}
			for {
				clause.Names = append(clause.Names, p.parseIdent())
				if !p.accept(token.COMMA) {
					break
				}
			}
			p.expect(token.SEMI)
			items = append(items, clause)
		case p.curTokenIs(token.USE):
			items = append(items, p.parseUseClause())
		case p.curTokenIs(token.CONTEXT) && p.peekTokenIs(token.IDENT) && !p.contextIsDeclaration():
			tok := p.curToken
			p.nextToken()
			ref := &ast.ContextReference{Token: tok}
			for {
				ref.Names = append(ref.Names, p.parseSelectedName())
				if !p.accept(token.COMMA) {
					break
				}
			}
			p.expect(token.SEMI)
			items = append(items, ref)
		default:
			return items
		}
	}
}

// contextIsDeclaration distinguishes `context c is ...` from a context
// reference `context lib.c;`.
func (p *Parser) contextIsDeclaration() bool {
	// cur is `context`, peek is the identifier; the token after decides.
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos].Type == token.IS
	}
	return false
}

func (p *Parser) parseDesignUnit(context []ast.ContextItem) ast.DesignUnit {
	switch {
	case p.curTokenIs(token.ENTITY):
		return p.parseEntityDeclaration(context)
	case p.curTokenIs(token.ARCHITECTURE):
		return p.parseArchitectureBody(context)
	case p.curTokenIs(token.PACKAGE) && p.peekTokenIs(token.BODY):
		return p.parsePackageBody(context)
	case p.curTokenIs(token.PACKAGE):
		return p.parsePackageDeclaration(context)
	case p.curTokenIs(token.CONTEXT):
		return p.parseContextDeclaration()
	default:
		return nil
	}
}

func (p *Parser) parseUseClause() *ast.UseClause {
	tok := p.curToken
	p.nextToken() // use
	clause := &ast.UseClause{Token: tok}
	for {
		clause.Names = append(clause.Names, p.parseSelectedName())
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.SEMI)
	return clause
}

// parseSelectedName parses `a.b.c` or `a.b.all` with a reference slot per
// part.
func (p *Parser) parseSelectedName() *ast.SelectedName {
	name := &ast.SelectedName{Token: p.curToken}
	for {
		part := &ast.NamePart{Token: p.curToken}
		switch p.curToken.Type {
		case token.IDENT:
			part.Designator = symbols.Identifier(p.curToken.Literal)
		case token.STRING:
			part.Designator = symbols.OperatorSymbol(p.curToken.Literal)
		case token.CHARACTER:
			part.Designator = symbols.CharacterLiteral([]rune(p.curToken.Literal)[0])
		default:
			p.errorf("expected name, got '%s'", p.curToken.Lexeme)
			return name
		}
		p.nextToken()
		name.Parts = append(name.Parts, part)

		if !p.curTokenIs(token.DOT) {
			return name
		}
		p.nextToken()
		if p.curTokenIs(token.ALL) {
			name.All = true
			p.nextToken()
			return name
		}
	}
}

func (p *Parser) parseEntityDeclaration(context []ast.ContextItem) *ast.EntityDeclaration {
	tok := p.curToken
	p.nextToken() // entity
	unit := &ast.EntityDeclaration{Token: tok, Context: context}
	unit.Ident = p.parseIdent()
	p.expect(token.IS)

	if p.curTokenIs(token.GENERIC) {
		p.nextToken()
		unit.Generics = p.parseInterfaceList(ast.ClassConstant)
		p.expect(token.SEMI)
	}
	if p.curTokenIs(token.PORT) {
		p.nextToken()
		unit.Ports = p.parseInterfaceList(ast.ClassSignal)
		p.expect(token.SEMI)
	}

	unit.Decls = p.parseDeclarativePart()
	if p.accept(token.BEGIN) {
		unit.Stmts = p.parseConcurrentStatements()
	}
	p.expect(token.END)
	p.accept(token.ENTITY)
	if p.curTokenIs(token.IDENT) {
		p.nextToken()
	}
	p.expect(token.SEMI)
	return unit
}

func (p *Parser) parseArchitectureBody(context []ast.ContextItem) *ast.ArchitectureBody {
	tok := p.curToken
	p.nextToken() // architecture
	unit := &ast.ArchitectureBody{Token: tok, Context: context}
	unit.Ident = p.parseIdent()
	p.expect(token.OF)
	unit.EntityName = p.parseIdent()
	p.expect(token.IS)
	unit.Decls = p.parseDeclarativePart()
	p.expect(token.BEGIN)
	unit.Stmts = p.parseConcurrentStatements()
	p.expect(token.END)
	p.accept(token.ARCHITECTURE)
	if p.curTokenIs(token.IDENT) {
		p.nextToken()
	}
	p.expect(token.SEMI)
	return unit
}

func (p *Parser) parsePackageDeclaration(context []ast.ContextItem) *ast.PackageDeclaration {
	tok := p.curToken
	p.nextToken() // package
	unit := &ast.PackageDeclaration{Token: tok, Context: context}
	unit.Ident = p.parseIdent()
	p.expect(token.IS)
	unit.Decls = p.parseDeclarativePart()
	p.expect(token.END)
	p.accept(token.PACKAGE)
	if p.curTokenIs(token.IDENT) {
		p.nextToken()
	}
	p.expect(token.SEMI)
	return unit
}

func (p *Parser) parsePackageBody(context []ast.ContextItem) *ast.PackageBody {
	tok := p.curToken
	p.nextToken() // package
	p.expect(token.BODY)
	unit := &ast.PackageBody{Token: tok, Context: context}
	unit.Ident = p.parseIdent()
	p.expect(token.IS)
	unit.Decls = p.parseDeclarativePart()
	p.expect(token.END)
	if p.accept(token.PACKAGE) {
		p.accept(token.BODY)
	}
	if p.curTokenIs(token.IDENT) {
		p.nextToken()
	}
	p.expect(token.SEMI)
	return unit
}

func (p *Parser) parseContextDeclaration() *ast.ContextDeclaration {
	tok := p.curToken
	p.nextToken() // context
	unit := &ast.ContextDeclaration{Token: tok}
	unit.Ident = p.parseIdent()
	p.expect(token.IS)
	unit.Items = p.parseContextClause()
	p.expect(token.END)
	p.accept(token.CONTEXT)
	if p.curTokenIs(token.IDENT) {
		p.nextToken()
	}
	p.expect(token.SEMI)
	return unit
}
