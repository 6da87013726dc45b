package compiler

import (
	"strconv"

	"github.com/maranget/matchc/internal/model"
)

// parsePattern parses one pattern expression (spec §4.1.3). Dispatch is
// purely syntactic: the token that opens the pattern decides its variant,
// mirroring the structural dispatch the front-end emitter performs on the
// macro-time surface form in the reference design.
func (p *Parser) parsePattern(ctx *CompileCtx) model.Pattern {
	start := p.current().Pos

	switch p.current().Kind {
	case model.TK_LBracket:
		return p.parseVectorPattern(ctx, start)
	case model.TK_LBrace:
		return p.parseMapPattern(ctx, start)
	case model.TK_Quote:
		return p.parseQuotedSymbolPattern(start)
	case model.TK_Identifier:
		return p.parseSymbolPattern(ctx, start)
	case model.TK_IntLit, model.TK_FloatLit, model.TK_StringLit, model.TK_True, model.TK_False, model.TK_Nil:
		return p.parseLiteralPattern(start)
	case model.TK_LParen:
		return p.parseWrapperPattern(ctx, start)
	default:
		p.addError("expected a pattern, got " + p.current().Kind.String())
		tok := p.advance()
		return model.NewWildcard(start, tok.EndPos, "_")
	}
}

func (p *Parser) parseVectorPattern(ctx *CompileCtx, start model.Position) model.Pattern {
	p.expect(model.TK_LBracket)
	var pats []model.Pattern
	hasRest := false
	for !p.check(model.TK_RBracket) && !p.isAtEnd() {
		if p.match(model.TK_Amp) {
			inner := p.parsePattern(ctx)
			pats = append(pats, model.NewRest(inner.Pos(), inner.End(), inner))
			hasRest = true
			break
		}
		pats = append(pats, p.parsePattern(ctx))
		if !p.match(model.TK_Comma) {
			break
		}
	}
	end := p.current().Pos
	p.expect(model.TK_RBracket)

	minSize := len(pats)
	if hasRest {
		minSize--
	}
	return model.NewVector(start, end, pats, ctx.VectorKind, 0, minSize, hasRest)
}

func (p *Parser) parseMapPattern(ctx *CompileCtx, start model.Position) model.Pattern {
	p.expect(model.TK_LBrace)
	sub := map[string]model.Pattern{}
	var keys []string
	for !p.check(model.TK_RBrace) && !p.isAtEnd() {
		keyTok := p.expect(model.TK_Keyword)
		val := p.parsePattern(ctx)
		sub[keyTok.Literal] = val
		keys = append(keys, keyTok.Literal)
		if !p.match(model.TK_Comma) {
			break
		}
	}
	end := p.current().Pos
	p.expect(model.TK_RBrace)
	return model.NewMapPat(start, end, keys, sub)
}

func (p *Parser) parseQuotedSymbolPattern(start model.Position) model.Pattern {
	p.expect(model.TK_Quote)
	tok := p.expect(model.TK_Identifier)
	return model.NewConstLiteral(start, tok.EndPos, model.Symbol{Name: tok.Literal})
}

func (p *Parser) parseSymbolPattern(ctx *CompileCtx, start model.Position) model.Pattern {
	tok := p.advance()
	if ctx.Locals[tok.Literal] {
		return model.NewLocalLiteral(start, tok.EndPos, model.HName{Name: tok.Literal})
	}
	return model.NewWildcard(start, tok.EndPos, tok.Literal)
}

func (p *Parser) parseLiteralPattern(start model.Position) model.Pattern {
	tok := p.advance()
	var v any
	switch tok.Kind {
	case model.TK_IntLit:
		n, _ := strconv.ParseInt(tok.Literal, 10, 64)
		v = n
	case model.TK_FloatLit:
		f, _ := strconv.ParseFloat(tok.Literal, 64)
		v = f
	case model.TK_StringLit:
		v = tok.Literal
	case model.TK_True:
		v = true
	case model.TK_False:
		v = false
	case model.TK_Nil:
		v = nil
	}
	return model.NewConstLiteral(start, tok.EndPos, v)
}

// parseWrapperPattern parses one of the parenthesized wrapper forms from
// spec §4.1.3: (p | q | …), (p :as name), (p :when preds), (xs :seq),
// (xs <vector-kind> [:offset n] [:n n]), (p :only [keys]), or a bare
// grouping (p) with no tag at all.
func (p *Parser) parseWrapperPattern(ctx *CompileCtx, start model.Position) model.Pattern {
	p.expect(model.TK_LParen)
	inner := p.parsePattern(ctx)

	switch {
	case p.check(model.TK_Pipe):
		alts := []model.Pattern{inner}
		for p.match(model.TK_Pipe) {
			alts = append(alts, p.parsePattern(ctx))
		}
		end := p.current().Pos
		p.expect(model.TK_RParen)
		return model.NewOr(start, end, alts)

	case p.checkKeyword("as"):
		p.advance()
		name := p.expect(model.TK_Identifier).Literal
		end := p.current().Pos
		p.expect(model.TK_RParen)
		asP := model.WithAs(inner, name)
		asP.SetPos(start, end)
		return asP

	case p.checkKeyword("when"):
		p.advance()
		preds := p.parsePredicates()
		end := p.current().Pos
		p.expect(model.TK_RParen)
		return model.NewGuard(start, end, inner, preds)

	case p.checkKeyword("seq"):
		p.advance()
		end := p.current().Pos
		p.expect(model.TK_RParen)
		vec, ok := inner.(*model.Vector)
		if !ok {
			p.addError("(xs :seq) requires xs to be a vector-literal pattern")
			return inner
		}
		return model.NewSeq(start, end, vec.Patterns)

	case p.checkKeyword("only"):
		p.advance()
		keys := p.parseKeyList()
		end := p.current().Pos
		p.expect(model.TK_RParen)
		mp, ok := inner.(*model.MapPat)
		if !ok {
			p.addError("(p :only keys) requires p to be a map-literal pattern")
			return inner
		}
		mp.Only = keys
		mp.SetPos(start, end)
		return mp

	case p.check(model.TK_Identifier):
		kindTok := p.advance()
		offset := 0
		n := -1
		for {
			if p.checkKeyword("offset") {
				p.advance()
				tok := p.expect(model.TK_IntLit)
				offset, _ = strconv.Atoi(tok.Literal)
				continue
			}
			if p.checkKeyword("n") {
				p.advance()
				tok := p.expect(model.TK_IntLit)
				n, _ = strconv.Atoi(tok.Literal)
				continue
			}
			break
		}
		end := p.current().Pos
		p.expect(model.TK_RParen)
		vec, ok := inner.(*model.Vector)
		if !ok {
			p.addError("(xs <vector-kind> ...) requires xs to be a vector-literal pattern")
			return inner
		}
		vec.Kind = model.VectorKind(kindTok.Literal)
		vec.Offset = offset
		if n >= 0 {
			vec.MinSize = n
		}
		vec.SetPos(start, end)
		return vec

	case p.check(model.TK_Keyword):
		tag := p.advance()
		p.addError(ErrUnknownWrapperTag.New(tag.Literal).Error())
		for !p.check(model.TK_RParen) && !p.isAtEnd() {
			p.advance()
		}
		p.expect(model.TK_RParen)
		return inner

	default:
		end := p.current().Pos
		p.expect(model.TK_RParen)
		inner.SetPos(start, end)
		return inner
	}
}

func (p *Parser) parsePredicates() []model.HostExpr {
	if p.check(model.TK_LBracket) {
		p.advance()
		var preds []model.HostExpr
		for !p.check(model.TK_RBracket) && !p.isAtEnd() {
			preds = append(preds, p.parseActionExpr())
			if !p.match(model.TK_Comma) {
				break
			}
		}
		p.expect(model.TK_RBracket)
		return preds
	}
	return []model.HostExpr{p.parseActionExpr()}
}

func (p *Parser) parseKeyList() []string {
	p.expect(model.TK_LBracket)
	var keys []string
	for !p.check(model.TK_RBracket) && !p.isAtEnd() {
		tok := p.expect(model.TK_Keyword)
		keys = append(keys, tok.Literal)
		if !p.match(model.TK_Comma) {
			break
		}
	}
	p.expect(model.TK_RBracket)
	return keys
}
