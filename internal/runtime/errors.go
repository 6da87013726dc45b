package runtime

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	goerrors "gopkg.in/src-d/go-errors.v1"
)

// ErrNoMatch is the typed runtime failure a Fail node raises (spec §7):
// no clause's row matched the occurrences. Message formatting follows the
// source-d error-kinds convention the rest of the repo uses.
var ErrNoMatch = goerrors.NewKind("no match found%s")

// NoMatchError is ErrNoMatch's payload, carrying the trace breadcrumb
// list spec §7 requires when tracing is enabled: "a counter of branches
// taken and a breadcrumb list of which per-pattern tests succeeded."
type NoMatchError struct {
	Breadcrumbs []string
}

func (e *NoMatchError) Error() string {
	if len(e.Breadcrumbs) == 0 {
		return ErrNoMatch.New("").Error()
	}
	return ErrNoMatch.New(fmt.Sprintf(" (%d branches taken: %s)", len(e.Breadcrumbs), strings.Join(e.Breadcrumbs, " -> "))).Error()
}

// WrapNoMatch attaches call-site context to a NoMatchError the way every
// other compile/runtime boundary in this repo wraps errors.
func WrapNoMatch(trace []string) error {
	return errors.Wrap(&NoMatchError{Breadcrumbs: trace}, "matchc: eval")
}
