// Package auditlog records dispatch authorization decisions.
package auditlog

import (
	"context"
	"time"

	"github.com/veilhq/turnstile/id"
)

// Entry is a single dispatch audit record. Verb and Outcome are plain
// strings so the package stays import-cycle-free with the router.
type Entry struct {
	ID            id.DispatchLogID `json:"id"`
	ActionID      id.ActionID      `json:"action_id"`
	Verb          string           `json:"verb"`
	Path          string           `json:"path"`
	Route         string           `json:"route"`
	Outcome       string           `json:"outcome"`
	ViolatedClaim string           `json:"violated_claim,omitempty"`
	CallerIP      string           `json:"caller_ip,omitempty"`
	EvalTimeNs    int64            `json:"eval_time_ns"`
	ObservedAt    time.Time        `json:"observed_at"`
}

// Filter selects entries when querying a recorder. Zero fields match
// everything.
type Filter struct {
	Verb    string
	Route   string
	Outcome string
	After   *time.Time
	Before  *time.Time
	Limit   int
}

// Recorder receives one entry per dispatched request. Implementations
// must be safe for concurrent use; Record is called on the request hot
// path and should not block.
type Recorder interface {
	Record(ctx context.Context, e *Entry)
}

func (f *Filter) matches(e *Entry) bool {
	if f.Verb != "" && f.Verb != e.Verb {
		return false
	}
	if f.Route != "" && f.Route != e.Route {
		return false
	}
	if f.Outcome != "" && f.Outcome != e.Outcome {
		return false
	}
	if f.After != nil && !e.ObservedAt.After(*f.After) {
		return false
	}
	if f.Before != nil && !e.ObservedAt.Before(*f.Before) {
		return false
	}
	return true
}
