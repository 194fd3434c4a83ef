package reconcile

import (
	"context"
	"errors"

	"github.com/sable-networks/eapictl/pkg/util"
)

// DeviceAccess is the collaborator through which the reconciler reads and
// writes device state. Fetch errors are transport faults and propagate
// unmodified; ApplyMutation errors are treated as device-side rejections.
type DeviceAccess interface {
	FetchCurrentConfig(ctx context.Context) (CurrentConfig, error)
	FetchVRFNames(ctx context.Context) ([]string, error)
	ApplyMutation(ctx context.Context, field, value string) error
}

// Result is the caller-facing outcome of a reconcile call.
// Failed without Changed means the device was not touched; Failed with
// Changed means a later mutation in the sequence was rejected after earlier
// ones were written.
type Result struct {
	Changed bool   `json:"changed"`
	Failed  bool   `json:"failed"`
	Message string `json:"message,omitempty"`
}

// Reconciler drives a single-device reconcile. It holds no state between
// calls; the device's own configuration, read fresh each call, is the only
// memory.
type Reconciler struct {
	device string
	access DeviceAccess
}

// New creates a reconciler for the named device.
func New(device string, access DeviceAccess) *Reconciler {
	return &Reconciler{device: device, access: access}
}

// Plan validates the desired state and returns the mutations a Reconcile
// call would apply, without touching the device. A desired VRF that does not
// resolve returns *util.VRFNotFoundError; transport failures return the
// collaborator's error.
func (r *Reconciler) Plan(ctx context.Context, desired DesiredConfig) ([]Mutation, error) {
	if err := r.checkVRF(ctx, desired); err != nil {
		return nil, err
	}

	current, err := r.access.FetchCurrentConfig(ctx)
	if err != nil {
		return nil, err
	}

	return Diff(desired, current), nil
}

// Reconcile fetches current state, diffs against desired, and applies the
// required mutations in fixed order. Expected failures (unresolvable VRF,
// device-rejected mutation) come back as a structured Result; only transport
// faults surface as a Go error.
func (r *Reconciler) Reconcile(ctx context.Context, desired DesiredConfig) (*Result, error) {
	muts, err := r.Plan(ctx, desired)
	if err != nil {
		var vrfErr *util.VRFNotFoundError
		if errors.As(err, &vrfErr) {
			// Precondition failure: the device was not touched
			return &Result{Failed: true, Message: vrfErr.Error()}, nil
		}
		return nil, err
	}

	if len(muts) == 0 {
		util.WithDevice(r.device).Debug("Management API already at desired state")
		return &Result{}, nil
	}

	return r.apply(ctx, muts), nil
}

// Apply writes a previously computed plan. Used by callers that preview the
// plan before executing (dry-run flow).
func (r *Reconciler) Apply(ctx context.Context, muts []Mutation) *Result {
	if len(muts) == 0 {
		return &Result{}
	}
	return r.apply(ctx, muts)
}

func (r *Reconciler) apply(ctx context.Context, muts []Mutation) *Result {
	applied := 0
	for _, m := range muts {
		if err := r.access.ApplyMutation(ctx, m.Field, m.Value); err != nil {
			applyErr := util.NewApplyError(m.Field, m.Value, err)
			util.WithDevice(r.device).Warnf("Reconcile aborted after %d of %d mutation(s): %v",
				applied, len(muts), applyErr)
			return &Result{
				Changed: applied > 0,
				Failed:  true,
				Message: applyErr.Error(),
			}
		}
		applied++
	}

	util.WithDevice(r.device).Infof("Applied %d mutation(s) to management API", applied)
	return &Result{Changed: true}
}

// checkVRF validates the desired VRF binding against the device's configured
// VRF set. The "default" VRF always resolves.
func (r *Reconciler) checkVRF(ctx context.Context, desired DesiredConfig) error {
	if desired.VRF == nil || *desired.VRF == DefaultVRF {
		return nil
	}

	names, err := r.access.FetchVRFNames(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name == *desired.VRF {
			return nil
		}
	}
	return util.NewVRFNotFoundError(*desired.VRF)
}
