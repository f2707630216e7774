// Package form holds the consent form state: the user's input and the
// lifecycle of the analysis request built from it.
//
// State is an immutable value. Every action returns a new State and leaves
// the receiver untouched, so the UI can be tested without a terminal.
package form

import (
	"slices"

	"github.com/sprite-ai/consentlens/internal/model"
)

// Status is the lifecycle stage of the analysis session.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the complete form state.
type State struct {
	policyText  string
	permissions []string

	status Status
	result *model.AnalysisResult
	err    error

	// seq identifies the most recent submission.
	seq uint64
}

// New returns an empty form in the Idle state.
func New() State {
	return State{}
}

// PolicyText returns the pasted agreement.
func (s State) PolicyText() string { return s.policyText }

// Permissions returns a copy of the selected permission ids in selection order.
func (s State) Permissions() []string { return slices.Clone(s.permissions) }

// HasPermission reports whether id is selected.
func (s State) HasPermission(id string) bool {
	return slices.Contains(s.permissions, id)
}

// Status returns the session status.
func (s State) Status() Status { return s.status }

// Result returns the most recent result. It is nil unless Status is Completed.
func (s State) Result() *model.AnalysisResult { return s.result }

// Err returns the failure of the most recent request. It is nil unless
// Status is Failed.
func (s State) Err() error { return s.err }

// Seq returns the sequence number of the most recent submission.
func (s State) Seq() uint64 { return s.seq }

// SetPolicyText replaces the policy text.
func (s State) SetPolicyText(text string) State {
	s.policyText = text
	return s
}

// TogglePermission removes id if selected, otherwise appends it.
func (s State) TogglePermission(id string) State {
	if i := slices.Index(s.permissions, id); i >= 0 {
		s.permissions = slices.Delete(slices.Clone(s.permissions), i, i+1)
		return s
	}
	s.permissions = append(slices.Clone(s.permissions), id)
	return s
}

// IsSubmittable reports whether a submission may start now. The permission
// set may be empty.
func (s State) IsSubmittable() bool {
	return s.policyText != "" && s.status != StatusLoading
}

// BeginSubmit starts a submission. It moves the session to Loading, clears
// the previous result and failure, and returns the request to send.
//
// If the form is not submittable the state is returned unchanged with
// ok == false, and no request must be issued.
func (s State) BeginSubmit(appName string) (next State, req model.AnalysisRequest, ok bool) {
	if !s.IsSubmittable() {
		return s, model.AnalysisRequest{}, false
	}
	if appName == "" {
		appName = model.DefaultAppName
	}
	req = model.NewAnalysisRequest(appName, s.permissions, s.policyText)

	s.status = StatusLoading
	s.result = nil
	s.err = nil
	s.seq++
	return s, req, true
}

// ReceiveResult completes submission seq with a result.
func (s State) ReceiveResult(seq uint64, result *model.AnalysisResult) State {
	if !s.inFlight(seq) {
		return s
	}
	if result == nil {
		result = &model.AnalysisResult{}
	}
	s.status = StatusCompleted
	s.result = result
	s.err = nil
	return s
}

// ReceiveFailure completes submission seq with an error.
func (s State) ReceiveFailure(seq uint64, err error) State {
	if !s.inFlight(seq) {
		return s
	}
	s.status = StatusFailed
	s.result = nil
	s.err = err
	return s
}

// Complete applies a completion event.
func (s State) Complete(o Outcome) State {
	if o.Err != nil {
		return s.ReceiveFailure(o.Seq, o.Err)
	}
	return s.ReceiveResult(o.Seq, o.Result)
}

func (s State) inFlight(seq uint64) bool {
	return s.status == StatusLoading && seq == s.seq
}
