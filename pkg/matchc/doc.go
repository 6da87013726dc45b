// Package matchc is the public embedding surface of the pattern-match
// compiler: parse a small `match [...] case ...: ...` program, compile it
// to a decision tree, and evaluate it against concrete Go values.
package matchc
