package model

// HostExpr is the abstract back-end target language the compiler lowers
// decision-DAG nodes and surface action/predicate expressions into (spec
// §4.4, design notes). Keeping it as its own sum type — rather than
// emitting Go source text directly — is what lets internal/compiler stay
// independent of any one host language's concrete AST; internal/runtime
// is the one evaluator for it, but a different back-end could serialize
// the same tree to Go, Python, or any other target.
type HostExpr interface {
	hostExprNode()
}

// HLiteral is a constant value.
type HLiteral struct{ Value any }

func (HLiteral) hostExprNode() {}

// HName references a bound name (an occurrence, an action-level binding,
// or a free variable resolved from the surrounding environment).
type HName struct{ Name string }

func (HName) hostExprNode() {}

// HLet introduces Bindings (evaluated left to right, each visible to
// those that follow, per Let semantics) and then evaluates Body.
type HLet struct {
	Bindings []Binding
	Body     HostExpr
}

func (HLet) hostExprNode() {}

// HIf is a two-armed conditional.
type HIf struct {
	Cond, Then, Else HostExpr
}

func (HIf) hostExprNode() {}

// HCondClause is one arm of an HCond cascade.
type HCondClause struct {
	Test HostExpr
	Body HostExpr
}

// HCond is an ordered cascade of (test, body) arms falling through to
// Default — the shape a Switch node lowers into (spec §4.4).
type HCond struct {
	Clauses []HCondClause
	Default HostExpr
}

func (HCond) hostExprNode() {}

// HCall invokes a named operation (an operator, a predicate, a
// constructor like "vec" or "seq") over Args.
type HCall struct {
	Fn   string
	Args []HostExpr
}

func (HCall) hostExprNode() {}

// HFail evaluates to a runtime "no match found" error (spec §7).
type HFail struct{ Message string }

func (HFail) hostExprNode() {}

// HVector constructs a vector value from Elems, in order.
type HVector struct{ Elems []HostExpr }

func (HVector) hostExprNode() {}

// HMapExpr constructs a map value from parallel Keys/Vals.
type HMapExpr struct {
	Keys []string
	Vals []HostExpr
}

func (HMapExpr) hostExprNode() {}

// Binding is one (name, expr) pair introduced by a :as capture or a named
// wildcard (spec §3's pattern row bindings) or by an HLet.
type Binding struct {
	Name string
	Expr HostExpr
}
