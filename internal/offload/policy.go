package offload

import "time"

// policy is the release-side strategy of an offload profile. onRelease is
// called with s.mu held, after the last reference on h is dropped.
type policy interface {
	onRelease(s *Scheduler, h *handle)
}

func policyFor(p Profile, retain time.Duration) policy {
	switch p {
	case ProfilePinned:
		return pinnedPolicy{}
	case ProfileAggressive:
		return aggressivePolicy{}
	default:
		return balancedPolicy{retain: retain}
	}
}

// pinnedPolicy never evicts.
type pinnedPolicy struct{}

func (pinnedPolicy) onRelease(*Scheduler, *handle) {}

// aggressivePolicy evicts as soon as the component goes idle.
type aggressivePolicy struct{}

func (aggressivePolicy) onRelease(s *Scheduler, h *handle) {
	s.evictLocked(h, "release")
}

// balancedPolicy keeps an idle component resident for a retain window so
// closely spaced requests reuse it without re-migrating.
type balancedPolicy struct {
	retain time.Duration
}

func (p balancedPolicy) onRelease(s *Scheduler, h *handle) {
	if p.retain <= 0 {
		s.evictLocked(h, "release")
		return
	}
	if h.retain != nil {
		h.retain.Stop()
	}
	name := h.comp.Name
	h.retain = time.AfterFunc(p.retain, func() { s.expire(name) })
}

// expire is the retain-window callback: evict if still idle on the
// accelerator.
func (s *Scheduler) expire(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	h, ok := s.handles[name]
	if !ok || h.refs > 0 || h.residency != ResidencyGPU {
		return
	}
	s.evictLocked(h, "expired")
}
