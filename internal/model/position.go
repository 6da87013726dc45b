package model

import "fmt"

// Position identifies a location in matchc surface-syntax source: a
// `.match` file, or an inline string passed to matchc.CompileMatch.
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
