package runtime

import (
	"time"

	"motiond/pkg/types"
)

// Status returns a point-in-time view of the runtime for GET /status.
func (r *Runtime) Status() types.StatusResponse {
	r.mu.RLock()
	state, failErr, started := r.state, r.failErr, r.started
	r.mu.RUnlock()

	snap := r.sched.Snapshot()
	comps := make([]types.ComponentStatus, 0, len(snap.Components))
	for _, c := range snap.Components {
		cs := types.ComponentStatus{
			Name:           c.Name,
			Precision:      c.Precision,
			Residency:      c.Residency.String(),
			FootprintBytes: c.FootprintBytes,
			Acquires:       c.Acquires,
		}
		if !c.LastUsed.IsZero() {
			cs.LastUsed = c.LastUsed.Unix()
		}
		comps = append(comps, cs)
	}

	now := time.Now()
	st := types.StatusResponse{
		State:           string(state),
		UptimeSeconds:   int64(now.Sub(started).Seconds()),
		ServerTimeUnix:  now.Unix(),
		BudgetBytes:     snap.BudgetBytes,
		ResidentBytes:   snap.ResidentBytes,
		OffloadProfile:  r.cfg.OffloadProfile,
		Components:      comps,
		QueueLen:        len(r.queueCh),
		MaxQueueDepth:   cap(r.queueCh),
		Inflight:        len(r.genCh),
		MigrationsTotal: snap.Migrations,
		EvictionsTotal:  snap.Evictions,
	}
	if failErr != nil {
		st.Error = failErr.Error()
	}
	return st
}
