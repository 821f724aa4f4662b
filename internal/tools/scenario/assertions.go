package scenario

import (
	"fmt"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/rs/zerolog"
)

// AssertionMode decides what a failed expectation does.
type AssertionMode int

const (
	// AssertionStrict stops the scenario at the first failed expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs failed expectations and keeps going.
	AssertionLogOnly
)

func (m AssertionMode) String() string {
	switch m {
	case AssertionStrict:
		return "strict"
	case AssertionLogOnly:
		return "log-only"
	default:
		return fmt.Sprintf("AssertionMode(%d)", int(m))
	}
}

// Assertions applies the configured mode to step failures.
type Assertions struct {
	Mode   AssertionMode
	Logger zerolog.Logger

	failures int
}

// Failf reports a malformed step. It fails in every mode.
func (a *Assertions) Failf(format string, args ...any) error {
	return apperrors.New(apperrors.CodeScenarioInvalidStep, fmt.Sprintf(format, args...))
}

// Assertf reports a failed expectation.
func (a *Assertions) Assertf(format string, args ...any) error {
	a.failures++
	message := fmt.Sprintf(format, args...)
	if a.Mode == AssertionLogOnly {
		a.Logger.Warn().Str("mode", a.Mode.String()).Msg(message)
		return nil
	}
	return apperrors.New(apperrors.CodeScenarioAssertion, message)
}

// Failures counts expectations that did not hold.
func (a *Assertions) Failures() int {
	return a.failures
}
