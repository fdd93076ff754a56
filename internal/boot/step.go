// SPDX-License-Identifier: Apache-2.0

package boot

import "context"

// FailureMode classifies what a step's error means for the boot sequence.
type FailureMode int

const (
	// Fatal aborts the boot; the container exits non-zero and the
	// orchestrator restarts it from scratch.
	Fatal FailureMode = iota
	// Warn logs the error and continues; the system runs degraded.
	Warn
	// BestEffort logs the error and continues; the step was opportunistic
	// normalization, not a startup precondition.
	BestEffort
)

// String returns the mode name for log fields.
func (m FailureMode) String() string {
	switch m {
	case Fatal:
		return "fatal"
	case Warn:
		return "warn"
	case BestEffort:
		return "best-effort"
	default:
		return "unknown"
	}
}

// Step is one named stage of the boot sequence. Steps run strictly in
// order; no step starts before the previous one finished.
type Step struct {
	Name string
	Mode FailureMode
	Run  func(ctx context.Context) error
}
