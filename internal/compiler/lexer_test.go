package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maranget/matchc/internal/model"
)

func kinds(toks []model.Token) []model.TokenKind {
	out := make([]model.TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexerStructuralTokens(t *testing.T) {
	toks, errs := NewLexer(`match [x] case [1, 2]: "a"`).Tokenize()
	require.Empty(t, errs)
	assert.Equal(t, []model.TokenKind{
		model.TK_Match, model.TK_LBracket, model.TK_Identifier, model.TK_RBracket,
		model.TK_Case, model.TK_LBracket, model.TK_IntLit, model.TK_Comma, model.TK_IntLit, model.TK_RBracket,
		model.TK_Colon, model.TK_StringLit, model.TK_EOF,
	}, kinds(toks))
}

func TestLexerKeywordAndOperatorIdentifiers(t *testing.T) {
	toks, errs := NewLexer(`:as even? (a|b)`).Tokenize()
	require.Empty(t, errs)
	require.Len(t, toks, 8)
	assert.Equal(t, model.TK_Keyword, toks[0].Kind)
	assert.Equal(t, "as", toks[0].Literal)
	assert.Equal(t, model.TK_Identifier, toks[1].Kind)
	assert.Equal(t, "even?", toks[1].Literal)
	assert.Equal(t, model.TK_LParen, toks[2].Kind)
	assert.Equal(t, model.TK_Identifier, toks[3].Kind)
	assert.Equal(t, model.TK_Pipe, toks[4].Kind)
}

func TestLexerNumbers(t *testing.T) {
	toks, errs := NewLexer(`42 3.14 -7`).Tokenize()
	require.Empty(t, errs)
	assert.Equal(t, model.TK_IntLit, toks[0].Kind)
	assert.Equal(t, "42", toks[0].Literal)
	assert.Equal(t, model.TK_FloatLit, toks[1].Kind)
	assert.Equal(t, "3.14", toks[1].Literal)
	assert.Equal(t, model.TK_IntLit, toks[2].Kind)
	assert.Equal(t, "-7", toks[2].Literal)
}

func TestLexerStringEscapes(t *testing.T) {
	toks, errs := NewLexer(`"a\nb"`).Tokenize()
	require.Empty(t, errs)
	assert.Equal(t, "a\nb", toks[0].Literal)
}

func TestLexerUnterminatedStringIsError(t *testing.T) {
	_, errs := NewLexer(`"oops`).Tokenize()
	require.NotEmpty(t, errs)
}

func TestLexerSkipsComments(t *testing.T) {
	toks, errs := NewLexer("1 ; a trailing comment\n2").Tokenize()
	require.Empty(t, errs)
	assert.Equal(t, []model.TokenKind{model.TK_IntLit, model.TK_IntLit, model.TK_EOF}, kinds(toks))
}
