// Package audit provides audit logging for management-API reconcile runs.
package audit

import (
	"fmt"
	"time"

	"github.com/sable-networks/eapictl/pkg/reconcile"
)

// Event records one reconcile invocation against a device.
type Event struct {
	ID          string               `json:"id"`
	Timestamp   time.Time            `json:"timestamp"`
	User        string               `json:"user"`
	Device      string               `json:"device"`
	Operation   string               `json:"operation"`
	Mutations   []reconcile.Mutation `json:"mutations,omitempty"`
	Changed     bool                 `json:"changed"`
	Success     bool                 `json:"success"`
	Error       string               `json:"error,omitempty"`
	ExecuteMode bool                 `json:"execute_mode"` // true if -x was used
	DryRun      bool                 `json:"dry_run"`
	Duration    time.Duration        `json:"duration"`
}

// Filter defines criteria for querying audit events
type Filter struct {
	Device      string
	User        string
	Operation   string
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates a new audit event
func NewEvent(user, device, operation string) *Event {
	return &Event{
		ID:        generateID(),
		Timestamp: time.Now(),
		User:      user,
		Device:    device,
		Operation: operation,
	}
}

// WithMutations sets the planned or applied mutations
func (e *Event) WithMutations(muts []reconcile.Mutation) *Event {
	e.Mutations = muts
	return e
}

// WithResult records a reconcile outcome
func (e *Event) WithResult(res *reconcile.Result) *Event {
	e.Changed = res.Changed
	e.Success = !res.Failed
	e.Error = res.Message
	if !res.Failed {
		e.Error = ""
	}
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithExecuteMode marks if execute mode was used
func (e *Event) WithExecuteMode(execute bool) *Event {
	e.ExecuteMode = execute
	e.DryRun = !execute
	return e
}

// WithDuration sets the operation duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
