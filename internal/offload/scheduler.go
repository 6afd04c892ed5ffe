package offload

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/rs/zerolog"

	"motiond/internal/quant"
)

// Config carries scheduler construction parameters.
type Config struct {
	// BudgetBytes is the accelerator memory budget shared by all components.
	BudgetBytes int64
	// Profile selects the offload strategy.
	Profile Profile
	// RetainWindow is how long a released component stays resident under
	// ProfileBalanced. Ignored by other profiles.
	RetainWindow time.Duration
	// Publisher receives lifecycle events; nil means drop them.
	Publisher Publisher
	// Logger defaults to a no-op logger.
	Logger zerolog.Logger
}

// handle is the scheduler's view of one managed component.
type handle struct {
	comp      *quant.Component
	residency Residency
	lastUsed  time.Time
	refs      int
	acquires  uint64
	retain    *time.Timer
}

// Scheduler owns component residency under a byte budget.
type Scheduler struct {
	mu   sync.Mutex
	cond *sync.Cond

	budget        int64
	profile       Profile
	pol           policy
	handles       map[string]*handle
	residentBytes int64
	migrations    uint64
	evictions     uint64
	closed        bool

	pub Publisher
	log zerolog.Logger
}

// New builds a scheduler over the given components, all starting host
// resident. Under ProfilePinned every component is migrated immediately
// and the whole set must fit the budget; under every profile a single
// component larger than the budget fails construction.
func New(cfg Config, comps []*quant.Component) (*Scheduler, error) {
	if cfg.BudgetBytes <= 0 {
		return nil, fmt.Errorf("offload: budget must be positive, got %d", cfg.BudgetBytes)
	}
	pub := cfg.Publisher
	if pub == nil {
		pub = NopPublisher{}
	}
	s := &Scheduler{
		budget:  cfg.BudgetBytes,
		profile: cfg.Profile,
		pol:     policyFor(cfg.Profile, cfg.RetainWindow),
		handles: make(map[string]*handle, len(comps)),
		pub:     pub,
		log:     cfg.Logger,
	}
	s.cond = sync.NewCond(&s.mu)
	for _, c := range comps {
		if _, dup := s.handles[c.Name]; dup {
			return nil, fmt.Errorf("offload: duplicate component %q", c.Name)
		}
		if c.FootprintBytes > s.budget {
			return nil, ErrInsufficientMemory(c.Name, c.FootprintBytes, s.budget, s.budget)
		}
		s.handles[c.Name] = &handle{comp: c, residency: ResidencyHost}
	}
	if cfg.Profile == ProfilePinned {
		for _, h := range s.handles {
			free := s.budget - s.residentBytes
			if h.comp.FootprintBytes > free {
				return nil, ErrInsufficientMemory(h.comp.Name, h.comp.FootprintBytes, free, s.budget)
			}
			s.setResident(h.comp.FootprintBytes)
			h.residency = ResidencyGPU
			s.migrations++
			migrationsTotal.Inc()
			s.pub.Publish(Event{Name: "migrate", Component: h.comp.Name, Fields: map[string]any{"pinned": true}})
		}
	}
	s.log.Info().
		Str("budget", units.BytesSize(float64(s.budget))).
		Str("profile", cfg.Profile.String()).
		Int("components", len(s.handles)).
		Msg("offload scheduler ready")
	return s, nil
}

// Profile returns the profile the scheduler was built with.
func (s *Scheduler) Profile() Profile { return s.profile }

// Acquire makes a component accelerator-resident and takes a reference on
// it, evicting least-recently-used idle components if the budget requires
// it. Blocks while the component is mid-migration in another call.
func (s *Scheduler) Acquire(ctx context.Context, name string) error {
	start := time.Now()
	s.mu.Lock()
	h, ok := s.handles[name]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("offload: unknown component %q", name)
	}
	for {
		if s.closed {
			s.mu.Unlock()
			return fmt.Errorf("offload: scheduler closed")
		}
		if h.residency != ResidencyMigrating {
			break
		}
		s.cond.Wait()
	}
	if h.residency == ResidencyGPU {
		s.touchLocked(h)
		s.mu.Unlock()
		acquireWaitSeconds.Observe(time.Since(start).Seconds())
		return nil
	}

	// Host resident: make room, then migrate.
	need := h.comp.FootprintBytes
	for s.residentBytes+need > s.budget {
		victim := s.lruIdleLocked()
		if victim == nil {
			free := s.budget - s.residentBytes
			budget := s.budget
			s.mu.Unlock()
			return ErrInsufficientMemory(name, need, free, budget)
		}
		s.evictLocked(victim, "pressure")
	}
	s.setResident(need)
	h.residency = ResidencyMigrating
	s.mu.Unlock()

	// The host-to-accelerator copy would happen here; this daemon only
	// does the bookkeeping. A cancellation mid-migration rolls the
	// component back to host.
	if err := ctx.Err(); err != nil {
		s.mu.Lock()
		h.residency = ResidencyHost
		s.setResident(-need)
		s.cond.Broadcast()
		s.mu.Unlock()
		s.pub.Publish(Event{Name: "migrate_abort", Component: name, Fields: map[string]any{"error": err.Error()}})
		return err
	}

	s.mu.Lock()
	h.residency = ResidencyGPU
	s.touchLocked(h)
	s.migrations++
	s.cond.Broadcast()
	s.mu.Unlock()

	migrationsTotal.Inc()
	acquireWaitSeconds.Observe(time.Since(start).Seconds())
	s.pub.Publish(Event{Name: "migrate", Component: name, Fields: map[string]any{"bytes": need}})
	s.log.Debug().Str("component", name).Str("size", units.BytesSize(float64(need))).Msg("migrated to accelerator")
	return nil
}

// Release drops a reference on a component. What happens next depends on
// the profile: pinned keeps it resident, aggressive evicts immediately,
// balanced arms the retain-window timer.
func (s *Scheduler) Release(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.handles[name]
	if !ok || s.closed {
		return
	}
	if h.refs > 0 {
		h.refs--
	}
	h.lastUsed = time.Now()
	if h.refs == 0 && h.residency == ResidencyGPU {
		s.pol.onRelease(s, h)
	}
}

// Snapshot returns a point-in-time view of scheduler state for /status.
type Snapshot struct {
	BudgetBytes   int64
	ResidentBytes int64
	Migrations    uint64
	Evictions     uint64
	Components    []ComponentState
}

// ComponentState is one component's entry in a Snapshot.
type ComponentState struct {
	Name           string
	Precision      string
	Residency      Residency
	FootprintBytes int64
	LastUsed       time.Time
	Acquires       uint64
}

func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		BudgetBytes:   s.budget,
		ResidentBytes: s.residentBytes,
		Migrations:    s.migrations,
		Evictions:     s.evictions,
	}
	snap.Components = make([]ComponentState, 0, len(s.handles))
	for _, h := range s.handles {
		snap.Components = append(snap.Components, ComponentState{
			Name:           h.comp.Name,
			Precision:      string(h.comp.Precision),
			Residency:      h.residency,
			FootprintBytes: h.comp.FootprintBytes,
			LastUsed:       h.lastUsed,
			Acquires:       h.acquires,
		})
	}
	sort.Slice(snap.Components, func(i, j int) bool {
		return snap.Components[i].Name < snap.Components[j].Name
	})
	return snap
}

// Close stops retain timers and returns every component to host residency.
// Callers must drain in-flight work first.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, h := range s.handles {
		if h.retain != nil {
			h.retain.Stop()
			h.retain = nil
		}
		h.residency = ResidencyHost
	}
	s.residentBytes = 0
	residentBytesGauge.Set(0)
	s.cond.Broadcast()
	s.log.Info().Msg("offload scheduler closed")
}

// touchLocked records a successful acquisition. Callers hold s.mu.
func (s *Scheduler) touchLocked(h *handle) {
	h.refs++
	h.lastUsed = time.Now()
	h.acquires++
	if h.retain != nil {
		h.retain.Stop()
		h.retain = nil
	}
}

// setResident adjusts the resident byte count and gauge. Callers hold s.mu.
func (s *Scheduler) setResident(delta int64) {
	s.residentBytes += delta
	if s.residentBytes < 0 {
		s.residentBytes = 0
	}
	residentBytesGauge.Set(float64(s.residentBytes))
}

// lruIdleLocked picks the least-recently-used accelerator-resident
// component with no outstanding references. Callers hold s.mu.
func (s *Scheduler) lruIdleLocked() *handle {
	var lru *handle
	for _, h := range s.handles {
		if h.residency != ResidencyGPU || h.refs > 0 {
			continue
		}
		if lru == nil || h.lastUsed.Before(lru.lastUsed) {
			lru = h
		}
	}
	return lru
}

// evictLocked returns a component to host residency. Callers hold s.mu.
func (s *Scheduler) evictLocked(h *handle, reason string) {
	if h.retain != nil {
		h.retain.Stop()
		h.retain = nil
	}
	h.residency = ResidencyHost
	s.setResident(-h.comp.FootprintBytes)
	s.evictions++
	evictionsTotal.WithLabelValues(reason).Inc()
	s.pub.Publish(Event{Name: "evict", Component: h.comp.Name, Fields: map[string]any{"reason": reason}})
	s.log.Debug().
		Str("component", h.comp.Name).
		Str("size", units.BytesSize(float64(h.comp.FootprintBytes))).
		Str("reason", reason).
		Msg("evicted from accelerator")
}
