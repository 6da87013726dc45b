package model

// Node is the closed set of decision-DAG node kinds the matrix compiler
// produces (spec §3's DAG nodes). The DAG is acyclic and is built
// bottom-up during one compiler invocation; nothing about it escapes that
// invocation.
type Node interface {
	nodeNode()
}

// Leaf evaluates Action under Bindings — a clause matched.
type Leaf struct {
	Action   HostExpr
	Bindings []Binding
}

func (*Leaf) nodeNode() {}

// Fail means no row could possibly match; lowers to a runtime
// "no match found" error (spec §7).
type Fail struct{}

func (*Fail) nodeNode() {}

// Bind introduces Bindings (typically the original expressions for
// lifted occurrences) and then evaluates Inner.
type Bind struct {
	Bindings []Binding
	Inner    Node
}

func (*Bind) nodeNode() {}

// SwitchCase pairs a constructor pattern with the sub-tree to evaluate
// when Occurrence matches it.
type SwitchCase struct {
	Pattern Pattern
	Child   Node
}

// Switch evaluates Occurrence, tests each Case's pattern against it in
// order, and falls through to Default if none match.
type Switch struct {
	Occurrence *Occurrence
	Cases      []SwitchCase
	Default    Node

	// CoerceKind is non-empty when this column's vector constructor set
	// uses a kind whose "coerce?" predicate holds (spec §4.3.e): the
	// lowering pass emits a leading bind coercing Occurrence's value into
	// that kind's representation before any case is tested.
	CoerceKind VectorKind
}

func (*Switch) nodeNode() {}
