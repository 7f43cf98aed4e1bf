// Package linalg differentiates banded linear solves.
//
// The solve is an opaque primitive backed by internal/backend/cpu. Its
// reverse-mode rules are written in terms of further traced primitives
// (a banded transpose and three band products), each of which has rules of
// its own, so the gradient of a solve can itself be differentiated.
//
// Usage:
//
//	x := linalg.SolveBanded(lu, ab, b) // traced nodes
//	...
//	if err := linalg.Register(registry); err != nil { ... }
package linalg
