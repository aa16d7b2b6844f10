package harness

import (
	"github.com/roach88/numconform/internal/backend"
)

// Status classifies one verdict.
type Status string

const (
	StatusPass         Status = "pass"
	StatusFail         Status = "fail"
	StatusKnownFailure Status = "known_failure"
	StatusGap          Status = "gap"
	StatusDeclined     Status = "declined"
	StatusError        Status = "error"
)

// Counts reports whether s counts against a run.
func (s Status) Counts() bool {
	return s == StatusFail || s == StatusError
}

// Verdict is the classified result of one operation on one scenario.
type Verdict struct {
	Scenario   string     `json:"scenario"`
	Op         backend.Op `json:"op"`
	Status     Status     `json:"status"`
	Diagnostic string     `json:"diagnostic,omitempty"`
	Gaps       []string   `json:"gaps,omitempty"`
}

// Summary counts verdicts by status.
type Summary struct {
	Total        int `json:"total"`
	Pass         int `json:"pass"`
	Fail         int `json:"fail"`
	KnownFailure int `json:"known_failure"`
	Gap          int `json:"gap"`
	Declined     int `json:"declined"`
	Error        int `json:"error"`
}

func (s *Summary) add(st Status) {
	s.Total++
	switch st {
	case StatusPass:
		s.Pass++
	case StatusFail:
		s.Fail++
	case StatusKnownFailure:
		s.KnownFailure++
	case StatusGap:
		s.Gap++
	case StatusDeclined:
		s.Declined++
	case StatusError:
		s.Error++
	}
}

// Report is the result of running one suite against one backend.
type Report struct {
	Suite    string     `json:"suite"`
	Backend  backend.ID `json:"backend"`
	Verdicts []Verdict  `json:"verdicts"`
	Summary  Summary    `json:"summary"`

	// Incomplete is set when the run was cancelled before the last
	// scenario.
	Incomplete bool `json:"incomplete,omitempty"`
}

// NewReport creates an empty report.
func NewReport(suite string, id backend.ID) *Report {
	return &Report{Suite: suite, Backend: id, Verdicts: []Verdict{}}
}

// Add appends a verdict and updates the summary.
func (r *Report) Add(v Verdict) {
	r.Verdicts = append(r.Verdicts, v)
	r.Summary.add(v.Status)
}

// Failed reports whether any verdict counts against the run.
func (r *Report) Failed() bool {
	return r.FailedUnder(true)
}

// FailedUnder is Failed with error verdicts counted only when
// failOnError is set.
func (r *Report) FailedUnder(failOnError bool) bool {
	return r.Summary.Fail > 0 || (failOnError && r.Summary.Error > 0)
}
