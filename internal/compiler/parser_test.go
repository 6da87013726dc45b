package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maranget/matchc/internal/model"
)

func TestParseMatchFormOccurrencesAndRows(t *testing.T) {
	src := `match [x, y]
case [1, 2]: "a"
case [_, _]: "b"`
	p := NewParser(src)
	ctx := NewCompileCtx("")
	occs, clauses := p.ParseMatchForm(ctx)
	require.Empty(t, p.Errors())
	require.Len(t, occs, 2)
	assert.Equal(t, "x", occs[0].Name)
	assert.True(t, occs[0].IsSymbol())
	require.Len(t, clauses, 2)

	pats, ok := clauses[0].Row.([]model.Pattern)
	require.True(t, ok)
	require.Len(t, pats, 2)
	lit, ok := pats[0].(*model.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(1), lit.Const)
}

func TestParseMatchFormElseRow(t *testing.T) {
	src := `match [x]
case [1]: "one"
case _: "other"`
	p := NewParser(src)
	ctx := NewCompileCtx("")
	_, clauses := p.ParseMatchForm(ctx)
	require.Empty(t, p.Errors())
	require.Len(t, clauses, 2)
	_, isElse := clauses[1].Row.(elseMarker)
	assert.True(t, isElse)
}

func TestParseOccurrenceExpression(t *testing.T) {
	p := NewParser(`match [(mod x 3)] case [0]: "fizz"`)
	ctx := NewCompileCtx("")
	occs, _ := p.ParseMatchForm(ctx)
	require.Empty(t, p.Errors())
	require.Len(t, occs, 1)
	assert.False(t, occs[0].IsSymbol())
	call, ok := occs[0].Expr.(model.HCall)
	require.True(t, ok)
	assert.Equal(t, "mod", call.Fn)
}

func TestParsePatternVariants(t *testing.T) {
	p := NewParser(`[1, a, [x, &rest], {:k _}, (1|2), (n :as bound), (e :when even?)]`)
	ctx := NewCompileCtx("")
	pat := p.parsePattern(ctx)
	require.Empty(t, p.Errors())
	vec, ok := pat.(*model.Vector)
	require.True(t, ok)
	require.Len(t, vec.Patterns, 7)

	_, ok = vec.Patterns[0].(*model.Literal)
	assert.True(t, ok)
	w, ok := vec.Patterns[1].(*model.Wildcard)
	require.True(t, ok)
	assert.Equal(t, "a", w.Name)

	inner, ok := vec.Patterns[2].(*model.Vector)
	require.True(t, ok)
	require.Len(t, inner.Patterns, 2)
	_, ok = inner.Patterns[1].(*model.Rest)
	assert.True(t, ok)

	_, ok = vec.Patterns[3].(*model.MapPat)
	assert.True(t, ok)

	_, ok = vec.Patterns[4].(*model.Or)
	assert.True(t, ok)

	asP := vec.Patterns[5]
	assert.Equal(t, "bound", asP.As())

	guard, ok := vec.Patterns[6].(*model.Guard)
	require.True(t, ok)
	require.Len(t, guard.Predicates, 1)
}

func TestParseSeqWrapper(t *testing.T) {
	p := NewParser(`([1, z, 4] :seq)`)
	ctx := NewCompileCtx("")
	pat := p.parsePattern(ctx)
	require.Empty(t, p.Errors())
	seq, ok := pat.(*model.Seq)
	require.True(t, ok)
	require.Len(t, seq.Patterns, 3)
}

func TestParseMapOnlyWrapper(t *testing.T) {
	p := NewParser(`({:a _, :b 2} :only [:a, :b])`)
	ctx := NewCompileCtx("")
	pat := p.parsePattern(ctx)
	require.Empty(t, p.Errors())
	mp, ok := pat.(*model.MapPat)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"a", "b"}, mp.Only)
}

func TestParseVectorKindWrapper(t *testing.T) {
	p := NewParser(`([1, 2] bytes :offset 1)`)
	ctx := NewCompileCtx("")
	pat := p.parsePattern(ctx)
	require.Empty(t, p.Errors())
	vec, ok := pat.(*model.Vector)
	require.True(t, ok)
	assert.Equal(t, model.VectorKind("bytes"), vec.Kind)
	assert.Equal(t, 1, vec.Offset)
}

func TestParseLocalLiteralFromCtxLocals(t *testing.T) {
	ctx := NewCompileCtx("")
	ctx.Locals["n"] = true
	p := NewParser(`n`)
	pat := p.parsePattern(ctx)
	lit, ok := pat.(*model.Literal)
	require.True(t, ok)
	assert.True(t, lit.Local)
}

func TestParseActionExprCallAndLiterals(t *testing.T) {
	p := NewParser(`(mod x 3)`)
	expr := p.parseActionExpr()
	require.Empty(t, p.Errors())
	call, ok := expr.(model.HCall)
	require.True(t, ok)
	assert.Equal(t, "mod", call.Fn)
	require.Len(t, call.Args, 2)
	name, ok := call.Args[0].(model.HName)
	require.True(t, ok)
	assert.Equal(t, "x", name.Name)
}

func TestParseActionVectorAndMap(t *testing.T) {
	p := NewParser(`[1, x, {:a 1, :b 2}]`)
	expr := p.parseActionExpr()
	require.Empty(t, p.Errors())
	vec, ok := expr.(model.HVector)
	require.True(t, ok)
	require.Len(t, vec.Elems, 3)
	m, ok := vec.Elems[2].(model.HMapExpr)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Keys)
}
