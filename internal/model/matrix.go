package model

// Row is one clause: a pattern per occurrence column, the action to run
// when the row matches, and the bindings accumulated so far from :as
// captures and named wildcards consumed while specializing earlier
// columns (spec §3's pattern row). Invariant: len(Patterns) always equals
// the owning Matrix's width.
type Row struct {
	Patterns []Pattern
	Action   HostExpr
	Bindings []Binding
}

// Width reports the number of pattern columns in the row.
func (r Row) Width() int { return len(r.Patterns) }

// Matrix is the compiler's central working structure: rows of patterns
// aligned to a shared Occurrences vector (spec §3's pattern matrix). An
// empty Matrix (no rows) still carries the Occurrences it was built from;
// a width-zero Matrix has no Occurrences and every Row is empty.
type Matrix struct {
	Rows        []Row
	Occurrences []*Occurrence
}

// Width reports the number of occurrence columns.
func (m Matrix) Width() int { return len(m.Occurrences) }

// Column returns the vertical slice of pattern i across all rows.
func (m Matrix) Column(i int) []Pattern {
	col := make([]Pattern, len(m.Rows))
	for r, row := range m.Rows {
		col[r] = row.Patterns[i]
	}
	return col
}

// SwapColumns exchanges column i and column j in place, across every row
// and in the Occurrences vector, used by matrix compilation case 3b (spec
// §4.2) when the chosen column is not column 0.
func (m *Matrix) SwapColumns(i, j int) {
	if i == j {
		return
	}
	for r := range m.Rows {
		m.Rows[r].Patterns[i], m.Rows[r].Patterns[j] = m.Rows[r].Patterns[j], m.Rows[r].Patterns[i]
	}
	m.Occurrences[i], m.Occurrences[j] = m.Occurrences[j], m.Occurrences[i]
}
