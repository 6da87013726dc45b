package compiler

import (
	"fmt"

	"github.com/pkg/errors"
	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/maranget/matchc/internal/model"
)

// Typed compile-time error kinds (spec §6/§7). Each names exactly one
// surface-syntax violation the front-end emitter rejects.
var (
	ErrNotAVector        = goerrors.NewKind("%s must be a vector, got %s")
	ErrRowArity          = goerrors.NewKind("row %d has arity %d, expected %d (occurrences %v)")
	ErrElseNotLast       = goerrors.NewKind("case _ (else) may only appear as the last row; found at row %d of %d")
	ErrOddClauseList     = goerrors.NewKind("clause list has odd length %d; rows and actions must pair up")
	ErrUnknownWrapperTag = goerrors.NewKind("unknown pattern wrapper tag %q; valid tags are as, when, seq, only, or a vector kind")
)

// EmitMatch runs the front-end validations and translations of spec §4.1
// over the parser's raw occurrences/clauses and assembles the initial
// pattern matrix the matrix compiler (compile.go) consumes.
func EmitMatch(ctx *CompileCtx, occs []OccElem, clauses []RawClause) (*model.Matrix, error) {
	if len(clauses) == 0 {
		return nil, errors.Wrap(ErrOddClauseList.New(0), "emit-match")
	}

	occurrences, liftedBindings := liftOccurrences(ctx, occs)

	rows := make([]model.Row, 0, len(clauses))
	for i, cl := range clauses {
		if _, isElse := cl.Row.(elseMarker); isElse {
			if i != len(clauses)-1 {
				return nil, errors.Wrapf(ErrElseNotLast.New(i+1, len(clauses)), "emit-match row %d", i+1)
			}
			rows = append(rows, model.Row{
				Patterns: wildcardRow(len(occurrences)),
				Action:   cl.Action,
			})
			continue
		}

		pats, ok := cl.Row.([]model.Pattern)
		if !ok {
			return nil, errors.Wrapf(ErrNotAVector.New(fmt.Sprintf("row %d", i+1), "non-vector"), "emit-match row %d", i+1)
		}
		if len(pats) != len(occurrences) {
			return nil, errors.Wrapf(
				ErrRowArity.New(i+1, len(pats), len(occurrences), occNames(occurrences)),
				"emit-match row %d", i+1,
			)
		}
		rows = append(rows, model.Row{Patterns: pats, Action: cl.Action})
	}

	return &model.Matrix{Rows: rows, Occurrences: occurrences}, wrapLiftedBindings(liftedBindings, nil)
}

// wrapLiftedBindings is a no-op today (lifted occurrences are re-surfaced
// via BindNode during matrix compilation, spec §4.2 case 3a) but keeps the
// emitter's signature stable if a future caller needs the raw list back.
func wrapLiftedBindings(_ []model.Binding, err error) error { return err }

// liftOccurrences replaces every non-symbol occurrence element with a
// fresh name carrying OcrExpr metadata (spec §4.1 step 2), so later
// compilation stages never need to special-case a raw expression.
func liftOccurrences(ctx *CompileCtx, occs []OccElem) ([]*model.Occurrence, []model.Binding) {
	result := make([]*model.Occurrence, len(occs))
	var lifted []model.Binding
	for i, o := range occs {
		if o.IsSymbol() {
			ctx.Locals[o.Name] = true
			result[i] = &model.Occurrence{Name: o.Name, Kind: model.OccPlain}
			continue
		}
		name := ctx.Gensym("ocr")
		result[i] = &model.Occurrence{Name: name, Kind: model.OccPlain, OcrExpr: o.Expr}
		lifted = append(lifted, model.Binding{Name: name, Expr: o.Expr})
	}
	return result, lifted
}

func wildcardRow(n int) []model.Pattern {
	pats := make([]model.Pattern, n)
	for i := range pats {
		pats[i] = model.NewWildcard(model.Position{}, model.Position{}, "_")
	}
	return pats
}

func occNames(occs []*model.Occurrence) []string {
	names := make([]string, len(occs))
	for i, o := range occs {
		names[i] = o.Name
	}
	return names
}
