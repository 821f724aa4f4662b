// Package scenario runs Lua scenario scripts against the rules engine.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"time"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/platform/otel"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/nkzw-tech/athena-crisis-sub002/internal/tools/scenario"

// Config controls scenario execution.
type Config struct {
	// Catalog resolves unit, building and tile names. Nil means the built-in
	// catalog.
	Catalog    *catalog.Catalog
	Assertions AssertionMode
	Verbose    bool
	Logger     zerolog.Logger
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Assertions: AssertionStrict,
		Logger:     zerolog.Nop(),
	}
}

// Runner executes scenarios. A Runner is not safe for concurrent use.
type Runner struct {
	cat        *catalog.Catalog
	assertions Assertions
	logger     zerolog.Logger
	verbose    bool
}

// NewRunner prepares a scenario runner.
func NewRunner(cfg Config) *Runner {
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	return &Runner{
		cat:        cat,
		assertions: Assertions{Mode: cfg.Assertions, Logger: cfg.Logger},
		logger:     cfg.Logger,
		verbose:    cfg.Verbose,
	}
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) (Report, error) {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return Report{}, err
	}
	return NewRunner(cfg).RunScenario(ctx, scenario)
}

// RunScenario builds the map described by the setup steps and checks every
// expectation against it.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) (report Report, err error) {
	if scenario == nil {
		return Report{}, errors.New("scenario is required")
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "scenario.run")
	span.SetAttributes(
		attribute.String("scenario.name", scenario.Name),
		attribute.Int("scenario.steps", len(scenario.Steps)),
	)
	defer func() {
		span.SetAttributes(attribute.Int("scenario.failures", report.Failures))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	failuresBefore := r.assertions.Failures()
	report = Report{Name: scenario.Name, Steps: len(scenario.Steps)}
	r.trace().Str("scenario", scenario.Name).Int("steps", len(scenario.Steps)).Msg("scenario start")

	state := newScenarioState()
	for index, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		stepNumber := index + 1
		stepStart := time.Now()
		expectation, err := r.runStep(state, step)
		report.Failures = r.assertions.Failures() - failuresBefore
		if err != nil {
			return report, fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, withStep(err, stepNumber))
		}
		if expectation {
			report.Expectations++
		}
		r.trace().
			Int("step", stepNumber).
			Str("kind", step.Kind).
			Dur("elapsed", time.Since(stepStart)).
			Msg("step done")
	}
	r.trace().Str("scenario", scenario.Name).Int("failures", report.Failures).Msg("scenario done")
	return report, nil
}

// trace returns an event that is only emitted in verbose mode.
func (r *Runner) trace() *zerolog.Event {
	if !r.verbose {
		return nil
	}
	return r.logger.Info()
}

// withStep records the failing step number on a domain error so localized
// reasons can name it.
func withStep(err error, step int) error {
	appErr, ok := err.(*apperrors.Error)
	if !ok {
		return err
	}
	tagged := *appErr
	tagged.Metadata = maps.Clone(appErr.Metadata)
	if tagged.Metadata == nil {
		tagged.Metadata = map[string]string{}
	}
	tagged.Metadata["Step"] = strconv.Itoa(step)
	return &tagged
}
