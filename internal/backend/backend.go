// Package backend adapts number-formatting engines to one conformance
// contract.
//
// Each adapter owns a translator: an ordered table of rules that copy the
// fields a scenario sets onto the engine's configuration. Fields a backend
// cannot express are capability gaps. They are reported with every
// outcome and never turn into a diagnostic by themselves.
//
// Every operation builds a fresh formatter from its scenario. Adapters
// hold no per-call state and are safe for concurrent use as long as the
// bound engine is.
package backend

import (
	"errors"
	"fmt"

	"github.com/roach88/numconform/internal/scenario"
)

// ID names a backend.
type ID string

const (
	Legacy   ID = "legacy"
	Platform ID = "platform"
	Pattern  ID = "pattern"
)

// Status is the result class of one operation.
type Status string

const (
	StatusPass     Status = "pass"
	StatusFail     Status = "fail"
	StatusDeclined Status = "declined"
)

// Outcome is the result of one adapter operation. Diagnostic is empty on
// pass. Gaps lists the fields the scenario sets that this backend could
// not apply, whatever the status.
type Outcome struct {
	Status     Status
	Diagnostic string
	Gaps       []scenario.Field
}

// Passed reports whether the operation matched its expectation.
func (o Outcome) Passed() bool { return o.Status == StatusPass }

// Adapter is the four-operation contract every backend implements.
//
// A returned error is fatal to the scenario: a malformed numeric token,
// an engine rejecting a configuration value, or a malformed currency code
// coming back from an engine. Mismatches are never errors.
type Adapter interface {
	ID() ID
	Format(s *scenario.Scenario) (Outcome, error)
	ToPattern(s *scenario.Scenario) (Outcome, error)
	Parse(s *scenario.Scenario) (Outcome, error)
	ParseCurrency(s *scenario.Scenario) (Outcome, error)
	Gaps(s *scenario.Scenario) []scenario.Field
}

// ErrMissingInput is returned when an operation is invoked on a scenario
// that does not carry the input or expectation the operation needs.
var ErrMissingInput = errors.New("scenario lacks input for operation")

// EngineError reports an engine failing or rejecting configuration.
type EngineError struct {
	Backend ID
	Op      string
	Field   string // empty when not tied to one field
	Err     error
}

func (e *EngineError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s: %s: %v", e.Backend, e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// Fallbacks used when a scenario sets no pattern or locale.
const (
	DefaultPattern = "0"
	DefaultLocale  = "en"
)

// Option configures an adapter.
type Option func(*settings)

type settings struct {
	pattern string
	locale  string
}

func newSettings(opts []Option) settings {
	s := settings{pattern: DefaultPattern, locale: DefaultLocale}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithDefaultPattern sets the pattern used when a scenario has none.
func WithDefaultPattern(p string) Option {
	return func(s *settings) {
		if p != "" {
			s.pattern = p
		}
	}
}

// WithDefaultLocale sets the locale used when a scenario has none.
func WithDefaultLocale(l string) Option {
	return func(s *settings) {
		if l != "" {
			s.locale = l
		}
	}
}
