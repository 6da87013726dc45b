package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maranget/matchc/internal/model"
	"github.com/maranget/matchc/internal/runtime"
)

var zp model.Position

func run(t *testing.T, m *model.Matrix, binds map[string]any) (any, error) {
	t.Helper()
	ctx := NewCompileCtx("test")
	node := Compile(ctx, m)
	expr := Lower(node)
	env := runtime.NewEnv()
	for name, v := range binds {
		rv, err := runtime.FromGo(v)
		require.NoError(t, err)
		env.Set(name, rv)
	}
	v, err := runtime.Eval(expr, env, &runtime.Trace{})
	if err != nil {
		return nil, err
	}
	return toGoValue(v), nil
}

// toGoValue unwraps a runtime.Value enough for assertions, without
// importing pkg/matchc (which would create an import cycle with this
// internal package).
func toGoValue(v runtime.Value) any {
	switch x := v.(type) {
	case runtime.IntValue:
		return x.V
	case runtime.StrValue:
		return x.V
	case runtime.BoolValue:
		return x.V
	case runtime.SymValue:
		return x.V
	case runtime.VecValue:
		out := make([]any, len(x.Items))
		for i, item := range x.Items {
			out[i] = toGoValue(item)
		}
		return out
	default:
		return v
	}
}

func plainOcc(name string) *model.Occurrence { return &model.Occurrence{Name: name, Kind: model.OccPlain} }

func TestCompileBooleanRows(t *testing.T) {
	occs := []*model.Occurrence{plainOcc("x"), plainOcc("y")}
	rows := []model.Row{
		{Patterns: []model.Pattern{model.NewConstLiteral(zp, zp, true), model.NewConstLiteral(zp, zp, false)}, Action: model.HLiteral{Value: int64(1)}},
		{Patterns: []model.Pattern{model.NewConstLiteral(zp, zp, false), model.NewConstLiteral(zp, zp, true)}, Action: model.HLiteral{Value: int64(2)}},
	}
	m := &model.Matrix{Rows: rows, Occurrences: occs}

	v, err := run(t, m, map[string]any{"x": true, "y": false})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = run(t, m, map[string]any{"x": false, "y": true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	_, err = run(t, m, map[string]any{"x": true, "y": true})
	assert.Error(t, err)
}

func TestCompileFirstRowWinsOverWildcard(t *testing.T) {
	occX := &model.Occurrence{Name: "ocrX", Kind: model.OccPlain, OcrExpr: model.HLiteral{Value: int64(1)}}
	occY := &model.Occurrence{Name: "ocrY", Kind: model.OccPlain, OcrExpr: model.HLiteral{Value: int64(2)}}
	occZ := &model.Occurrence{Name: "ocrZ", Kind: model.OccPlain, OcrExpr: model.HLiteral{Value: int64(4)}}

	rows := []model.Row{
		{
			Patterns: []model.Pattern{model.NewConstLiteral(zp, zp, int64(1)), model.NewConstLiteral(zp, zp, int64(2)), model.NewWildcard(zp, zp, "b")},
			Action:   model.HVector{Elems: []model.HostExpr{model.HLiteral{Value: "a0"}, model.HName{Name: "b"}}},
		},
		{
			Patterns: []model.Pattern{model.NewWildcard(zp, zp, "a"), model.NewConstLiteral(zp, zp, int64(2)), model.NewConstLiteral(zp, zp, int64(4))},
			Action:   model.HVector{Elems: []model.HostExpr{model.HLiteral{Value: "a1"}, model.HName{Name: "a"}}},
		},
		{
			Patterns: []model.Pattern{model.NewWildcard(zp, zp, "_"), model.NewWildcard(zp, zp, "_"), model.NewWildcard(zp, zp, "_")},
			Action:   model.HVector{},
		},
	}
	m := &model.Matrix{Rows: rows, Occurrences: []*model.Occurrence{occX, occY, occZ}}

	v, err := run(t, m, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a0", int64(4)}, v)
}

func TestCompileOrPattern(t *testing.T) {
	occs := []*model.Occurrence{
		{Name: "ocrX", Kind: model.OccPlain, OcrExpr: model.HLiteral{Value: int64(4)}},
		{Name: "ocrY", Kind: model.OccPlain, OcrExpr: model.HLiteral{Value: int64(6)}},
		{Name: "ocrZ", Kind: model.OccPlain, OcrExpr: model.HLiteral{Value: int64(9)}},
	}
	orLow := model.NewOr(zp, zp, []model.Pattern{
		model.NewConstLiteral(zp, zp, int64(1)),
		model.NewConstLiteral(zp, zp, int64(2)),
		model.NewConstLiteral(zp, zp, int64(3)),
	})
	orMid := model.NewOr(zp, zp, []model.Pattern{
		model.NewConstLiteral(zp, zp, int64(5)),
		model.NewConstLiteral(zp, zp, int64(6)),
		model.NewConstLiteral(zp, zp, int64(7)),
	})
	rows := []model.Row{
		{Patterns: []model.Pattern{orLow, model.NewWildcard(zp, zp, "_"), model.NewWildcard(zp, zp, "_")}, Action: model.HLiteral{Value: "a0"}},
		{Patterns: []model.Pattern{model.NewConstLiteral(zp, zp, int64(4)), orMid, model.NewWildcard(zp, zp, "_")}, Action: model.HLiteral{Value: "a1"}},
		{Patterns: []model.Pattern{model.NewWildcard(zp, zp, "_"), model.NewWildcard(zp, zp, "_"), model.NewWildcard(zp, zp, "_")}, Action: model.HLiteral{Value: "else"}},
	}
	m := &model.Matrix{Rows: rows, Occurrences: occs}

	v, err := run(t, m, nil)
	require.NoError(t, err)
	assert.Equal(t, "a1", v)
}

func TestCompileGuardPredicates(t *testing.T) {
	occ := &model.Occurrence{Name: "ocrSeq", Kind: model.OccPlain, OcrExpr: model.HCall{Fn: "seq", Args: []model.HostExpr{
		model.HLiteral{Value: int64(2)}, model.HLiteral{Value: int64(3)}, model.HLiteral{Value: int64(4)}, model.HLiteral{Value: int64(5)},
	}}}

	wild := func() model.Pattern { return model.NewWildcard(zp, zp, "_") }
	guardEven := model.NewGuard(zp, zp, model.NewWildcard(zp, zp, "a"), []model.HostExpr{model.HName{Name: "even?"}})
	guardOddDiv3 := model.NewGuard(zp, zp, model.NewWildcard(zp, zp, "b"), []model.HostExpr{model.HName{Name: "odd?"}, model.HName{Name: "div3?"}})

	seqRow1 := model.NewSeq(zp, zp, []model.Pattern{wild(), guardEven, wild(), wild()})
	seqRow2 := model.NewSeq(zp, zp, []model.Pattern{wild(), guardOddDiv3, wild(), wild()})

	rows := []model.Row{
		{Patterns: []model.Pattern{seqRow1}, Action: model.HLiteral{Value: "a0"}},
		{Patterns: []model.Pattern{seqRow2}, Action: model.HLiteral{Value: "a1"}},
		{Patterns: []model.Pattern{model.NewWildcard(zp, zp, "_")}, Action: model.HLiteral{Value: "else"}},
	}
	m := &model.Matrix{Rows: rows, Occurrences: []*model.Occurrence{occ}}

	v, err := run(t, m, nil)
	require.NoError(t, err)
	assert.Equal(t, "a1", v)
}

// TestCompileSeqExactSize exercises spec §8 scenario 3: a Seq pattern
// with no Rest must match a sequence of precisely that length, not just
// one at least that long. This is the exhausted-seq terminal test
// (spec §4.3.b) — the case that regresses if the "nothing follows"
// sentinel and the runtime's empty-SeqValue representation disagree.
func TestCompileSeqExactSize(t *testing.T) {
	occ := &model.Occurrence{Name: "ocrSeq", Kind: model.OccPlain, OcrExpr: model.HCall{Fn: "seq", Args: []model.HostExpr{
		model.HLiteral{Value: int64(1)}, model.HLiteral{Value: int64(2)}, model.HLiteral{Value: int64(3)},
	}}}

	exactThree := model.NewSeq(zp, zp, []model.Pattern{
		model.NewWildcard(zp, zp, "_"), model.NewWildcard(zp, zp, "_"), model.NewWildcard(zp, zp, "_"),
	})

	rows := []model.Row{
		{Patterns: []model.Pattern{exactThree}, Action: model.HLiteral{Value: "a2"}},
		{Patterns: []model.Pattern{model.NewWildcard(zp, zp, "_")}, Action: model.HLiteral{Value: "else"}},
	}
	m := &model.Matrix{Rows: rows, Occurrences: []*model.Occurrence{occ}}

	v, err := run(t, m, nil)
	require.NoError(t, err)
	assert.Equal(t, "a2", v)
}

// TestCompileGuardShortCircuitsOnFailedInner exercises spec §8 property
// 7: a Guard predicate must never run once its inner pattern has
// already failed to match. The predicate here (even?) would return an
// error against a non-int occurrence; if it ran unconditionally that
// error would propagate out of the whole match instead of falling
// through to the default row.
func TestCompileGuardShortCircuitsOnFailedInner(t *testing.T) {
	occ := &model.Occurrence{Name: "ocrX", Kind: model.OccPlain, OcrExpr: model.HLiteral{Value: "not-an-int"}}

	guardEven := model.NewGuard(zp, zp, model.NewConstLiteral(zp, zp, int64(4)), []model.HostExpr{model.HName{Name: "even?"}})

	rows := []model.Row{
		{Patterns: []model.Pattern{guardEven}, Action: model.HLiteral{Value: "a0"}},
		{Patterns: []model.Pattern{model.NewWildcard(zp, zp, "_")}, Action: model.HLiteral{Value: "else"}},
	}
	m := &model.Matrix{Rows: rows, Occurrences: []*model.Occurrence{occ}}

	v, err := run(t, m, nil)
	require.NoError(t, err)
	assert.Equal(t, "else", v)
}

func TestCompileMapOnlyKeysetRejection(t *testing.T) {
	occ := &model.Occurrence{Name: "ocrMap", Kind: model.OccPlain, OcrExpr: model.HMapExpr{
		Keys: []string{"a", "b", "c"},
		Vals: []model.HostExpr{model.HLiteral{Value: int64(1)}, model.HLiteral{Value: int64(2)}, model.HLiteral{Value: int64(3)}},
	}}

	mapOnly := model.NewMapPat(zp, zp, []string{"a", "b"}, map[string]model.Pattern{
		"a": model.NewWildcard(zp, zp, "_"),
		"b": model.NewConstLiteral(zp, zp, int64(2)),
	})
	mapOnly.Only = []string{"a", "b"}

	mapNoOnly := model.NewMapPat(zp, zp, []string{"a", "c"}, map[string]model.Pattern{
		"a": model.NewConstLiteral(zp, zp, int64(1)),
		"c": model.NewWildcard(zp, zp, "_"),
	})

	rows := []model.Row{
		{Patterns: []model.Pattern{mapOnly}, Action: model.HLiteral{Value: "a0"}},
		{Patterns: []model.Pattern{mapNoOnly}, Action: model.HLiteral{Value: "a1"}},
		{Patterns: []model.Pattern{model.NewWildcard(zp, zp, "_")}, Action: model.HLiteral{Value: "else"}},
	}
	m := &model.Matrix{Rows: rows, Occurrences: []*model.Occurrence{occ}}

	v, err := run(t, m, nil)
	require.NoError(t, err)
	assert.Equal(t, "a1", v)
}

// TestCompileIsDeterministic exercises spec §8's determinism property:
// compiling the same matrix shape twice yields structurally identical
// lowered expressions.
func TestCompileIsDeterministic(t *testing.T) {
	build := func() *model.Matrix {
		occs := []*model.Occurrence{plainOcc("x"), plainOcc("y")}
		rows := []model.Row{
			{Patterns: []model.Pattern{model.NewConstLiteral(zp, zp, int64(1)), model.NewConstLiteral(zp, zp, int64(2))}, Action: model.HLiteral{Value: "a"}},
			{Patterns: []model.Pattern{model.NewWildcard(zp, zp, "_"), model.NewWildcard(zp, zp, "_")}, Action: model.HLiteral{Value: "b"}},
		}
		return &model.Matrix{Rows: rows, Occurrences: occs}
	}

	e1 := Lower(Compile(NewCompileCtx("d1"), build()))
	e2 := Lower(Compile(NewCompileCtx("d2"), build()))

	if diff := cmp.Diff(e1, e2); diff != "" {
		t.Fatalf("compiled trees differ (-first +second):\n%s", diff)
	}
}

func TestWarnInexhaustiveFiresOncePerCtx(t *testing.T) {
	ctx := NewCompileCtx("")
	m := &model.Matrix{
		Rows: []model.Row{
			{Patterns: []model.Pattern{model.NewConstLiteral(zp, zp, int64(1))}, Action: model.HLiteral{Value: "a"}},
		},
		Occurrences: []*model.Occurrence{plainOcc("x")},
	}
	assert.False(t, ctx.Warned)
	Compile(ctx, m)
	assert.True(t, ctx.Warned)
}
