// Package runtime owns the serving state of the daemon. It assembles the
// model registry, quantization engine, offload scheduler and generation
// pipeline at startup and front-ends them with request validation and
// bounded admission. Files:
//
//   - runtime.go: Runtime construction, Generate, Close.
//   - validate.go: request normalization (defaults, clamps, truncation).
//   - admission.go: bounded queue slot + single in-flight slot.
//   - status.go: point-in-time snapshot for the status endpoint.
//   - errors.go: typed request errors and their predicates.
//
// A Runtime is built once; construction fails fast on a bad model
// directory, an incompatible component chain or a budget too small for
// the largest component, so the daemon exits before it starts listening.
package runtime
