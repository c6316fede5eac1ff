package notice

import "fmt"

// Result is the outcome of a fail-soft manager operation. Failures never
// propagate as errors to the caller: they degrade the operation and leave
// a diagnostic here instead, so the coarse failure boundary is an
// explicit, testable contract.
type Result struct {
	// Diagnostics holds one entry per swallowed failure, in order.
	Diagnostics []string
}

// Ok reports whether the operation completed without any swallowed failure.
func (r Result) Ok() bool {
	return len(r.Diagnostics) == 0
}

// report records a diagnostic.
func (r *Result) report(format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, fmt.Sprintf(format, args...))
}
