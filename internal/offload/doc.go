// Package offload tracks which model components are resident in
// accelerator memory and moves them between host and accelerator under a
// fixed byte budget. It is structured into small files by concern:
//
//   - residency.go: the Residency state enum (host, migrating, gpu).
//   - profile.go: offload profiles (0 pinned, 1 aggressive, 3 balanced).
//   - scheduler.go: Scheduler type, acquire/release, eviction, snapshots.
//   - policy.go: per-profile release strategies and the retain-window expiry.
//   - errors.go: error types and helpers (IsInsufficientMemory).
//   - events.go: lifecycle event publishing (no-op default).
//   - eventpub_memory.go: in-memory publisher for tests.
//   - metrics.go: Prometheus counters and gauges.
//
// The scheduler guarantees that the sum of resident footprints (gpu plus
// migrating) never exceeds the budget. Acquire blocks callers while a
// component is mid-migration and evicts least-recently-used idle
// components to make room. Components with a positive reference count are
// never evicted.
package offload
