package vm

import "github.com/ardnew/sapling/value"

// Control-flow signals unwind the Go call stack the same way
// filepath.SkipDir unwinds a WalkFunc: they satisfy error so every
// exec* site's existing error return propagates them for free, and each
// loop/call boundary recovers the ones it understands via a type assertion.

type returnSignal struct{ value value.Value }

func (returnSignal) Error() string { return "return outside a function body" }

type breakSignal struct{}

func (breakSignal) Error() string { return "break outside a loop" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue outside a loop" }
