package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Pipeline states for one tenant's notification pass. The progression is
// linear with no backtracking; any failure jumps straight to logged_error.
const (
	StateIdle             = "idle"
	StateSettingsResolved = "settings_resolved"
	StateScanned          = "scanned"
	StateAggregated       = "aggregated"
	StateDispatched       = "dispatched"
	StateLogged           = "logged"
	StateLoggedError      = "logged_error"
	StateDone             = "done"
)

// TenantPipelineFSM tracks one tenant's progression through the
// scan → aggregate → dispatch → log pipeline.
type TenantPipelineFSM struct {
	tenantID uint
	fsm      *fsm.FSM
}

// NewTenantPipelineFSM creates a pipeline state machine starting at idle
func NewTenantPipelineFSM(tenantID uint) *TenantPipelineFSM {
	p := &TenantPipelineFSM{tenantID: tenantID}

	p.fsm = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: "resolve_settings", Src: []string{StateIdle}, Dst: StateSettingsResolved},
			{Name: "scan", Src: []string{StateSettingsResolved}, Dst: StateScanned},

			// empty scan result: nothing to send, no log entry
			{Name: "finish_empty", Src: []string{StateScanned}, Dst: StateDone},

			{Name: "aggregate", Src: []string{StateScanned}, Dst: StateAggregated},
			{Name: "dispatch", Src: []string{StateAggregated}, Dst: StateDispatched},
			{Name: "log", Src: []string{StateDispatched}, Dst: StateLogged},
			{Name: "finish", Src: []string{StateLogged}, Dst: StateDone},

			// any component error ends the tenant's pass after the error is logged
			{Name: "fail", Src: []string{
				StateIdle, StateSettingsResolved, StateScanned, StateAggregated, StateDispatched,
			}, Dst: StateLoggedError},
		},
		fsm.Callbacks{},
	)

	return p
}

// Advance fires the named event, returning an error for illegal transitions
func (p *TenantPipelineFSM) Advance(ctx context.Context, event string) error {
	if err := p.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("tenant %d pipeline: cannot %s from %s: %w", p.tenantID, event, p.fsm.Current(), err)
	}
	return nil
}

// Current returns the current pipeline state
func (p *TenantPipelineFSM) Current() string {
	return p.fsm.Current()
}

// TenantID returns the tenant this pipeline belongs to
func (p *TenantPipelineFSM) TenantID() uint {
	return p.tenantID
}
