package harness

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/numconform/internal/backend"
	"github.com/roach88/numconform/internal/scenario"
)

// Option configures a run.
type Option func(*runner)

type runner struct {
	logger *slog.Logger
	only   []string
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithScenarios restricts the run to the named scenarios.
func WithScenarios(names ...string) Option {
	return func(r *runner) {
		r.only = append(r.only, names...)
	}
}

// Run evaluates every scenario of suite against adapter, sequentially and
// in suite order. Each operation call is independent of the others.
//
// Cancellation is checked between scenarios; a cancelled run returns the
// verdicts gathered so far with Incomplete set.
func Run(ctx context.Context, suite *scenario.Suite, adapter backend.Adapter, opts ...Option) *Report {
	r := &runner{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(r)
	}

	report := NewReport(suite.Name, adapter.ID())
	logger := r.logger.With("suite", suite.Name, "backend", string(adapter.ID()))

	for i := range suite.Scenarios {
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled", "error", err, "remaining", len(suite.Scenarios)-i)
			report.Incomplete = true
			break
		}

		sc := &suite.Scenarios[i]
		if len(r.only) > 0 && !slices.Contains(r.only, sc.Name) {
			continue
		}

		for _, op := range backend.Applicable(sc) {
			out, err := backend.Invoke(adapter, op, sc)
			v := classify(sc, adapter, op, out, err)
			report.Add(v)

			logger.Debug("verdict",
				"scenario", v.Scenario,
				"op", string(op),
				"status", string(v.Status),
			)
			if v.Status == StatusPass && sc.BreaksOn(string(adapter.ID())) {
				logger.Info("scenario marked as breaking now passes",
					"scenario", v.Scenario, "op", string(op))
			}
		}
	}

	return report
}

// classify turns an adapter outcome into a verdict. A backend listed in
// the scenario's breaks turns a failure or an error into a known failure;
// a failure on a scenario with capability gaps is reported as a gap.
func classify(sc *scenario.Scenario, adapter backend.Adapter, op backend.Op, out backend.Outcome, err error) Verdict {
	id := adapter.ID()
	v := Verdict{Scenario: sc.Name, Op: op}
	if err != nil {
		v.Status = StatusError
		v.Diagnostic = err.Error()
		v.Gaps = fieldNames(adapter.Gaps(sc))
		if sc.BreaksOn(string(id)) {
			v.Status = StatusKnownFailure
			v.Diagnostic = "error: " + v.Diagnostic
		}
		return v
	}

	v.Diagnostic = out.Diagnostic
	v.Gaps = fieldNames(out.Gaps)
	switch out.Status {
	case backend.StatusPass:
		v.Status = StatusPass
	case backend.StatusDeclined:
		v.Status = StatusDeclined
	default:
		switch {
		case sc.BreaksOn(string(id)):
			v.Status = StatusKnownFailure
		case len(out.Gaps) > 0:
			v.Status = StatusGap
		default:
			v.Status = StatusFail
		}
	}
	return v
}

func fieldNames(fields []scenario.Field) []string {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return names
}
