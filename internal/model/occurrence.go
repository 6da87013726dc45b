package model

// OccKind tags how an Occurrence should be bound and projected in
// emitted code (spec §3's occurrence model).
type OccKind int

const (
	// OccPlain occurrences are themselves the value; no projection needed.
	OccPlain OccKind = iota
	// OccSeq occurrences are the head or tail of a parent sequence.
	OccSeq
	// OccVector occurrences are an element or sub-slice of a parent vector.
	OccVector
	// OccMap occurrences are the value looked up under Key in a parent map.
	OccMap
)

// Occurrence is a named handle for a sub-value of the input, plus enough
// metadata to emit a binding expression for it without re-deriving how it
// was produced (spec §3, design note 3: "a struct Occurrence{name, kind,
// bind-expr, …} that replaces bare symbols").
type Occurrence struct {
	Name string
	Kind OccKind

	// BindExpr, when non-nil, is the expression that projects this
	// occurrence out of its parent. OccPlain occurrences never need one:
	// the name alone already denotes the value.
	BindExpr HostExpr

	// SeqRoot is the name of the occurrence at the root of the sequence
	// this seq-occurrence was carved out of (OccSeq only).
	SeqRoot string

	// VecSym is the parent vector occurrence's name (OccVector only).
	VecSym string
	// Index is the element index projected by a "nth" access. Nil when
	// this occurrence is instead a sub-slice (Range) produced by a
	// has-rest vector specialization.
	Index *int

	// MapSym is the parent map occurrence's name (OccMap only).
	MapSym string
	// Key is the lookup key projected from the parent map (OccMap only).
	Key string

	// OcrExpr, when non-nil, is the original host expression the user
	// passed as an occurrence instead of a bare name; a BindNode
	// introduces the let that binds Name to it exactly once, at the
	// scope where the occurrence is first referenced (spec §3, §4.2
	// case 3a: "If any occurrence in the current vector carries an
	// ocr-expr, wrap the Switch in a BindNode").
	OcrExpr HostExpr
}

// NeedsBind reports whether Name must be let-bound to BindExpr before the
// occurrence's value can be read: a plain occurrence never needs it.
func (o *Occurrence) NeedsBind() bool { return o.BindExpr != nil }
