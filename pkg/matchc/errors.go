package matchc

import (
	"github.com/maranget/matchc/internal/compiler"
	"github.com/maranget/matchc/internal/runtime"
)

// Typed error kinds callers can match against with goerrors' Kind.Is,
// re-exported from the packages that actually raise them (spec §6/§7).
var (
	ErrNotAVector        = compiler.ErrNotAVector
	ErrRowArity          = compiler.ErrRowArity
	ErrElseNotLast       = compiler.ErrElseNotLast
	ErrOddClauseList     = compiler.ErrOddClauseList
	ErrUnknownWrapperTag = compiler.ErrUnknownWrapperTag
	ErrNoMatch           = runtime.ErrNoMatch
)
