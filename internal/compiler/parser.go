package compiler

import (
	"fmt"

	"github.com/maranget/matchc/internal/model"
)

// ParseError is a syntax error in matchc surface syntax.
type ParseError struct {
	Pos     model.Position
	Message string
}

func (e ParseError) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Message) }

// OccElem is one element of the occurrences vector: either a bare name
// already bound in the caller's environment, or an arbitrary expression to
// be lifted to a fresh occurrence (spec §4.1.2).
type OccElem struct {
	Name string // set when the element was a bare identifier
	Expr model.HostExpr
	Pos  model.Position
}

func (o OccElem) IsSymbol() bool { return o.Expr == nil }

// elseMarker stands in for the :else row sentinel in a raw clause list.
type elseMarker struct{}

// RawClause is one (row, action) pair straight out of the parser, before
// front-end validation (spec §4.1) has run.
type RawClause struct {
	Row    any // elseMarker{} or []model.Pattern
	Action model.HostExpr
	Pos    model.Position
}

// Parser parses matchc surface syntax into occurrences + raw clauses.
type Parser struct {
	lexer  *Lexer
	tokens []model.Token
	pos    int
	errors []ParseError
}

// NewParser creates a parser for source with no associated filename.
func NewParser(source string) *Parser { return NewParserWithFilename(source, "") }

// NewParserWithFilename creates a parser tagging positions with filename.
func NewParserWithFilename(source, filename string) *Parser {
	lexer := NewLexerWithFilename(source, filename)
	tokens, _ := lexer.Tokenize()
	return &Parser{lexer: lexer, tokens: tokens}
}

func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) current() model.Token {
	if p.pos >= len(p.tokens) {
		return model.Token{Kind: model.TK_EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) model.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return model.Token{Kind: model.TK_EOF}
	}
	return p.tokens[i]
}

func (p *Parser) advance() model.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) isAtEnd() bool { return p.current().Kind == model.TK_EOF }

func (p *Parser) check(kind model.TokenKind) bool { return p.current().Kind == kind }

func (p *Parser) checkKeyword(lit string) bool {
	return p.current().Kind == model.TK_Keyword && p.current().Literal == lit
}

func (p *Parser) match(kind model.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchKeyword(lit string) bool {
	if p.checkKeyword(lit) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind model.TokenKind) model.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.addError(fmt.Sprintf("expected %s, got %s", kind, p.current().Kind))
	return p.current()
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, ParseError{Pos: p.current().Pos, Message: msg})
}

// ParseMatchForm parses the entire source as one `match [...] case ... `
// form and returns the occurrences vector and the raw (row, action)
// clause list, ready for front-end validation (EmitMatch).
func (p *Parser) ParseMatchForm(ctx *CompileCtx) ([]OccElem, []RawClause) {
	p.expect(model.TK_Match)
	occs := p.parseOccVector()

	var clauses []RawClause
	for p.check(model.TK_Case) {
		pos := p.current().Pos
		p.advance()
		row := p.parseRow(ctx)
		p.expect(model.TK_Colon)
		action := p.parseActionExpr()
		clauses = append(clauses, RawClause{Row: row, Action: action, Pos: pos})
	}
	return occs, clauses
}

func (p *Parser) parseOccVector() []OccElem {
	p.expect(model.TK_LBracket)
	var occs []OccElem
	for !p.check(model.TK_RBracket) && !p.isAtEnd() {
		pos := p.current().Pos
		if p.check(model.TK_Identifier) {
			tok := p.advance()
			occs = append(occs, OccElem{Name: tok.Literal, Pos: pos})
		} else {
			expr := p.parseActionExpr()
			occs = append(occs, OccElem{Expr: expr, Pos: pos})
		}
		if !p.match(model.TK_Comma) {
			break
		}
	}
	p.expect(model.TK_RBracket)
	return occs
}

// parseRow parses one case row: either the wildcard/else sentinel `_`, or
// a bracketed vector of patterns of the clause's arity.
func (p *Parser) parseRow(ctx *CompileCtx) any {
	if p.check(model.TK_Identifier) && p.current().Literal == "_" {
		p.advance()
		return elseMarker{}
	}
	p.expect(model.TK_LBracket)
	var pats []model.Pattern
	for !p.check(model.TK_RBracket) && !p.isAtEnd() {
		pats = append(pats, p.parsePattern(ctx))
		if !p.match(model.TK_Comma) {
			break
		}
	}
	p.expect(model.TK_RBracket)
	return pats
}
