package matchc

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/maranget/matchc/internal/compiler"
	"github.com/maranget/matchc/internal/model"
)

// Tracing is the single process-wide knob spec §4.5/§5 describes ("a
// separate, globally toggled output channel; disabled by default").
var Tracing bool

// SetTracing turns the trace-breadcrumb channel on or off for every
// compile and Eval performed afterwards.
func SetTracing(on bool) { Tracing = on }

// CompileMatch compiles a full `match [...] case ...: ... ` program
// (spec §6's external interface).
func CompileMatch(source string) (*Program, error) {
	return compileSource(source, "", model.VectorKind("vector"))
}

// CompileMatchNamed is CompileMatch with a filename attached to error
// positions, for callers compiling from a `.match` file.
func CompileMatchNamed(filename, source string) (*Program, error) {
	return compileSource(source, filename, model.VectorKind("vector"))
}

// CompileMatch1 compiles a single-occurrence program: occSource is one
// occurrence expression and body is the `case ...: ...` clause list
// written as if occSource were already wrapped in `[...]` (spec §6:
// "match-1 ... wraps the single occurrence/row in singleton vectors").
func CompileMatch1(occSource, body string) (*Program, error) {
	source := "match [" + occSource + "]\n" + wrapSingleRows(body)
	return compileSource(source, "", model.VectorKind("vector"))
}

// CompileMatchV compiles occurrences whose bare vector patterns should
// default to the given vector kind, instead of the "vector" default
// (spec §6: "matchv ... sets the vector-kind tag for the duration of the
// compile").
func CompileMatchV(kind, source string) (*Program, error) {
	return compileSource(source, "", model.VectorKind(kind))
}

func compileSource(source, filename string, vecKind model.VectorKind) (*Program, error) {
	p := compiler.NewParserWithFilename(source, filename)
	ctx := compiler.NewCompileCtx(filename)
	ctx.VectorKind = vecKind
	ctx.Tracing = Tracing

	occs, clauses := p.ParseMatchForm(ctx)
	if errs := p.Errors(); len(errs) > 0 {
		return nil, joinParseErrors(errs)
	}

	matrix, err := compiler.EmitMatch(ctx, occs, clauses)
	if err != nil {
		return nil, errors.Wrap(err, "matchc: compile")
	}

	node := compiler.Compile(ctx, matrix)
	expr := compiler.Lower(node)

	if ctx.Tracing {
		logrus.WithField("clause_count", len(matrix.Rows)).Debug("matchc: compiled decision DAG")
	}

	var symbolNames []string
	for _, o := range occs {
		if o.IsSymbol() {
			symbolNames = append(symbolNames, o.Name)
		}
	}

	return &Program{Expr: expr, Occurrences: symbolNames}, nil
}

func joinParseErrors(errs []compiler.ParseError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return errors.New("matchc: parse: " + strings.Join(msgs, "; "))
}

// wrapSingleRows rewrites a clause body written against a single
// occurrence — `case 1: "one"` — into rows of arity 1 — `case [1]:
// "one"` — except for the else sentinel, which needs no wrapping.
func wrapSingleRows(body string) string {
	var out strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out.WriteString(line)
			out.WriteString("\n")
			continue
		}
		rest := strings.TrimPrefix(trimmed, "case ")
		if rest == trimmed || strings.HasPrefix(strings.TrimSpace(rest), "_") {
			out.WriteString(line)
			out.WriteString("\n")
			continue
		}
		colon := strings.Index(rest, ":")
		if colon < 0 {
			out.WriteString(line)
			out.WriteString("\n")
			continue
		}
		out.WriteString("case [")
		out.WriteString(rest[:colon])
		out.WriteString("]")
		out.WriteString(rest[colon:])
		out.WriteString("\n")
	}
	return out.String()
}
