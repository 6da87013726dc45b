package compiler

import "github.com/maranget/matchc/internal/model"

func isCrashPattern(p model.Pattern) bool { _, ok := p.(*model.MapCrash); return ok }

// chooseColumn implements spec §4.2's usefulness heuristic: build the
// boolean-ish usefulness matrix implicitly (column by column, since only
// the per-column score is ever needed) and return the index of the
// highest-scoring column, ties broken by lowest index. The sentinel -2
// start means even an all-crash column (score -1) beats no column at all.
func chooseColumn(m *model.Matrix) int {
	best := -1
	bestScore := -2
	for col := 0; col < m.Width(); col++ {
		score := columnScore(m.Column(col))
		if score > bestScore {
			bestScore = score
			best = col
		}
	}
	return best
}

func columnScore(col []model.Pattern) int {
	hasCrash := false
	useful := 0
	for i, p := range col {
		switch {
		case isCrashPattern(p):
			hasCrash = true
		case isWildcardPattern(p):
			// contributes nothing; constructors below it are no longer useful
		default:
			if noPriorWildcard(col, i) {
				useful++
			}
		}
	}
	if hasCrash {
		return -1
	}
	return useful
}

func noPriorWildcard(col []model.Pattern, i int) bool {
	for k := 0; k < i; k++ {
		if isWildcardPattern(col[k]) {
			return false
		}
	}
	return true
}
