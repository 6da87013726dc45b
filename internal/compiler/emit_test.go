package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maranget/matchc/internal/model"
)

func parseAndEmit(t *testing.T, src string) (*model.Matrix, error) {
	t.Helper()
	p := NewParser(src)
	ctx := NewCompileCtx("")
	occs, clauses := p.ParseMatchForm(ctx)
	require.Empty(t, p.Errors())
	return EmitMatch(ctx, occs, clauses)
}

func TestEmitMatchBuildsMatrix(t *testing.T) {
	m, err := parseAndEmit(t, `match [x, y]
case [1, 2]: "a"
case [_, _]: "b"`)
	require.NoError(t, err)
	require.Len(t, m.Rows, 2)
	assert.Equal(t, 2, m.Width())
	assert.Equal(t, "x", m.Occurrences[0].Name)
}

func TestEmitMatchRowArityMismatch(t *testing.T) {
	_, err := parseAndEmit(t, `match [x, y]
case [1]: "a"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arity")
}

func TestEmitMatchElseMustBeLast(t *testing.T) {
	_, err := parseAndEmit(t, `match [x]
case _: "a"
case [1]: "b"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last")
}

func TestEmitMatchElseBecomesWildcardRow(t *testing.T) {
	m, err := parseAndEmit(t, `match [x, y]
case [1, 2]: "a"
case _: "b"`)
	require.NoError(t, err)
	last := m.Rows[len(m.Rows)-1]
	require.Len(t, last.Patterns, 2)
	for _, p := range last.Patterns {
		_, ok := p.(*model.Wildcard)
		assert.True(t, ok)
	}
}

func TestEmitMatchLiftsNonSymbolOccurrences(t *testing.T) {
	m, err := parseAndEmit(t, `match [(mod x 3)]
case [0]: "fizz"
case _: "other"`)
	require.NoError(t, err)
	require.Len(t, m.Occurrences, 1)
	occ := m.Occurrences[0]
	assert.NotNil(t, occ.OcrExpr)
	assert.NotEqual(t, "x", occ.Name)
}

func TestEmitMatchNoClausesErrors(t *testing.T) {
	p := NewParser(`match [x]`)
	ctx := NewCompileCtx("")
	occs, clauses := p.ParseMatchForm(ctx)
	_, err := EmitMatch(ctx, occs, clauses)
	require.Error(t, err)
}
