package compiler

import (
	"fmt"

	"github.com/maranget/matchc/internal/model"
)

// CompileCtx threads the per-invocation state the reference design passes
// as dynamic bindings (*vector-type*, *line*, *locals*, *warned* — spec §5
// and design notes) through every function explicitly instead.
type CompileCtx struct {
	// Filename tags positions in error messages.
	Filename string

	// VectorKind is the kind assumed for a bare `[p ...]` vector pattern
	// that carries no explicit kind tag. match/match-1 leave this at the
	// default "vector" kind; matchv sets it for the duration of one
	// compile (spec §6).
	VectorKind model.VectorKind

	// Locals is the set of names already bound in the caller's
	// environment; a bare symbol pattern in this set becomes a Literal
	// pattern flagged Local instead of a Wildcard (spec §4.1.3).
	Locals map[string]bool

	// Warned is set the first time the "inexhaustive match, consider
	// adding :else" warning fires, so it is emitted at most once per
	// compile (spec §4.5).
	Warned bool

	// Tracing mirrors the process-wide trace toggle at the moment this
	// compile started; it does not change mid-compile (spec §5).
	Tracing bool

	// fresh counts synthetic occurrence names minted during
	// specialization (seq head/tail, vector elements, map values, lifted
	// expression occurrences), keeping them distinct within one compile.
	fresh int
}

// NewCompileCtx returns a CompileCtx with the default vector kind and an
// empty locals set.
func NewCompileCtx(filename string) *CompileCtx {
	return &CompileCtx{
		Filename:   filename,
		VectorKind: model.VectorKind("vector"),
		Locals:     map[string]bool{},
	}
}

// Gensym returns a fresh occurrence name with the given hint as a prefix.
func (c *CompileCtx) Gensym(hint string) string {
	c.fresh++
	return fmt.Sprintf("%s$%d", hint, c.fresh)
}
