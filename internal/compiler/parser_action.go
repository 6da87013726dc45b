package compiler

import (
	"strconv"

	"github.com/maranget/matchc/internal/model"
)

// parseActionExpr parses one host-expression: the small Lisp-flavored
// language used for case actions, guard predicates, and occurrence
// expressions (spec §4.1.2, §4.1.3's :when). It has no pattern forms of
// its own — patterns are parsed by parsePattern — only the handful of
// shapes a lowered HostExpr tree can hold (spec §4.4): literals, names,
// vector/map constructors, and calls.
func (p *Parser) parseActionExpr() model.HostExpr {
	tok := p.current()
	switch tok.Kind {
	case model.TK_IntLit:
		p.advance()
		n, _ := strconv.ParseInt(tok.Literal, 10, 64)
		return model.HLiteral{Value: n}
	case model.TK_FloatLit:
		p.advance()
		f, _ := strconv.ParseFloat(tok.Literal, 64)
		return model.HLiteral{Value: f}
	case model.TK_StringLit:
		p.advance()
		return model.HLiteral{Value: tok.Literal}
	case model.TK_True:
		p.advance()
		return model.HLiteral{Value: true}
	case model.TK_False:
		p.advance()
		return model.HLiteral{Value: false}
	case model.TK_Nil:
		p.advance()
		return model.HLiteral{Value: nil}
	case model.TK_Quote:
		p.advance()
		sym := p.expect(model.TK_Identifier)
		return model.HLiteral{Value: model.Symbol{Name: sym.Literal}}
	case model.TK_Identifier:
		p.advance()
		return model.HName{Name: tok.Literal}
	case model.TK_LBracket:
		return p.parseActionVector()
	case model.TK_LBrace:
		return p.parseActionMap()
	case model.TK_LParen:
		return p.parseActionCall()
	default:
		p.addError("expected an expression, got " + tok.Kind.String())
		p.advance()
		return model.HLiteral{Value: nil}
	}
}

func (p *Parser) parseActionVector() model.HostExpr {
	p.expect(model.TK_LBracket)
	var elems []model.HostExpr
	for !p.check(model.TK_RBracket) && !p.isAtEnd() {
		elems = append(elems, p.parseActionExpr())
		if !p.match(model.TK_Comma) {
			break
		}
	}
	p.expect(model.TK_RBracket)
	return model.HVector{Elems: elems}
}

func (p *Parser) parseActionMap() model.HostExpr {
	p.expect(model.TK_LBrace)
	var keys []string
	var vals []model.HostExpr
	for !p.check(model.TK_RBrace) && !p.isAtEnd() {
		keyTok := p.expect(model.TK_Keyword)
		keys = append(keys, keyTok.Literal)
		vals = append(vals, p.parseActionExpr())
		if !p.match(model.TK_Comma) {
			break
		}
	}
	p.expect(model.TK_RBrace)
	return model.HMapExpr{Keys: keys, Vals: vals}
}

// parseActionCall parses `(fn arg ...)`, Lisp-style: arguments are
// whitespace-separated, not comma-separated (spec §8's literal scenarios,
// e.g. `(mod x 3)`). fn is any token that can open an identifier
// (including operator-shaped identifiers like `+` or `even?` lexed as
// TK_Identifier — see isIdentStart in lexer.go).
func (p *Parser) parseActionCall() model.HostExpr {
	p.expect(model.TK_LParen)
	fnTok := p.expect(model.TK_Identifier)
	var args []model.HostExpr
	for !p.check(model.TK_RParen) && !p.isAtEnd() {
		args = append(args, p.parseActionExpr())
	}
	p.expect(model.TK_RParen)
	return model.HCall{Fn: fnTok.Literal, Args: args}
}
