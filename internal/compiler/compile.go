package compiler

import (
	"github.com/sirupsen/logrus"

	"github.com/maranget/matchc/internal/model"
)

// Compile runs the matrix compiler (spec §4.2): the recursive heart of
// Maranget's algorithm, turning a pattern matrix into a decision DAG.
func Compile(ctx *CompileCtx, m *model.Matrix) model.Node {
	if len(m.Rows) == 0 {
		warnInexhaustive(ctx, m)
		return &model.Fail{}
	}

	first := m.Rows[0]

	if first.Width() == 0 {
		return &model.Leaf{Action: first.Action, Bindings: first.Bindings}
	}

	if allWildcards(first.Patterns) {
		bindings := append([]model.Binding(nil), first.Bindings...)
		for i, p := range first.Patterns {
			w := p.(*model.Wildcard)
			if w.IsDefault() {
				continue
			}
			bindings = append(bindings, model.Binding{Name: w.Name, Expr: occValueExpr(m.Occurrences[i])})
		}
		return &model.Leaf{Action: first.Action, Bindings: bindings}
	}

	col := chooseColumn(m)
	if col != 0 {
		m.SwapColumns(0, col)
		return Compile(ctx, m)
	}

	m2 := expandOrsInColumn0(m)
	return compileSwitch(ctx, m2)
}

func allWildcards(pats []model.Pattern) bool {
	for _, p := range pats {
		if !isWildcardPattern(p) {
			return false
		}
	}
	return true
}

// occValueExpr is the expression denoting an occurrence's value when no
// enclosing Switch/Bind has already let-bound its name (spec §4.2 base
// case 3's "bind-expr-of-occurrence").
func occValueExpr(occ *model.Occurrence) model.HostExpr {
	if occ.NeedsBind() {
		return occ.BindExpr
	}
	if occ.OcrExpr != nil {
		return occ.OcrExpr
	}
	return model.HName{Name: occ.Name}
}

func warnInexhaustive(ctx *CompileCtx, m *model.Matrix) {
	if ctx.Warned {
		return
	}
	ctx.Warned = true
	logrus.WithFields(logrus.Fields{
		"clause_count": len(m.Rows),
		"column":       0,
	}).Warn("inexhaustive match, consider adding :else")
}

func compileSwitch(ctx *CompileCtx, m *model.Matrix) model.Node {
	// Lifted occurrences are bound here once; the matrix keeps copies
	// without OcrExpr so nested Switches refer to the bound name.
	var liftBindings []model.Binding
	for i, occ := range m.Occurrences {
		if occ.OcrExpr != nil {
			liftBindings = append(liftBindings, model.Binding{Name: occ.Name, Expr: occ.OcrExpr})
			bound := *occ
			bound.OcrExpr = nil
			m.Occurrences[i] = &bound
		}
	}
	occ0 := m.Occurrences[0]

	var constructors []model.Pattern
	for _, row := range m.Rows {
		first := row.Patterns[0]
		if isWildcardPattern(first) {
			continue
		}
		dup := false
		for _, c := range constructors {
			if model.Equal(c, first) {
				dup = true
				break
			}
		}
		if !dup {
			constructors = append(constructors, first)
		}
	}
	model.SortConstructors(constructors)

	cases := make([]model.SwitchCase, 0, len(constructors))
	for _, c := range constructors {
		child := Compile(ctx, specializeForConstructor(ctx, m, c))
		cases = append(cases, model.SwitchCase{Pattern: c, Child: child})
	}

	defaultMatrix := DefaultMatrix(m)
	var defaultNode model.Node
	if len(defaultMatrix.Rows) == 0 {
		warnInexhaustive(ctx, m)
		defaultNode = &model.Fail{}
	} else {
		defaultNode = Compile(ctx, defaultMatrix)
	}

	sw := &model.Switch{Occurrence: occ0, Cases: cases, Default: defaultNode, CoerceKind: coerceKindFor(constructors)}

	if len(liftBindings) > 0 {
		return &model.Bind{Bindings: liftBindings, Inner: sw}
	}
	return sw
}

// coerceKindFor returns the vector kind requiring a coerce-bind (spec
// §4.3.e) among a column's constructor set, or "" if none of them need
// one. All Vector constructors in one column share a kind in practice
// (the total order groups Vector patterns as a single family), so the
// first coercing kind found is definitive.
func coerceKindFor(constructors []model.Pattern) model.VectorKind {
	for _, c := range constructors {
		if v, ok := c.(*model.Vector); ok && model.NeedsCoerce(v.Kind) {
			return v.Kind
		}
	}
	return ""
}

func specializeForConstructor(ctx *CompileCtx, m *model.Matrix, c model.Pattern) *model.Matrix {
	switch v := c.(type) {
	case *model.Literal:
		return SpecializeLiteral(m, v)
	case *model.MapCrash:
		return SpecializeMapCrash(m, v)
	case *model.Seq:
		return SpecializeSeq(ctx, m)
	case *model.MapPat:
		return SpecializeMap(ctx, m)
	case *model.Vector:
		return SpecializeVector(ctx, m)
	case *model.Guard:
		return SpecializeGuard(v, m)
	default:
		return specializeZeroArity(m, c)
	}
}
