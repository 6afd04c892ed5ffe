// Package pipeline runs the staged text-to-motion computation. It is
// structured into small files by concern:
//
//   - pipeline.go: Pipeline type, stage chaining, residency handoff.
//   - rewrite.go: prompt rewriter interface and the heuristic default.
//   - encode.go: text encoding (hashed token embeddings).
//   - denoise.go: seeded iterative denoising with guidance folding.
//   - pose.go: latent-to-pose decoding (6D rotations + root translation).
//   - mesh.go: rotation-matrix recovery and forward kinematics.
//   - skeleton.go: kinematic tree tables and 6D rotation math.
//   - tensorops.go: small float32 vector/matrix helpers.
//   - metrics.go: Prometheus stage timings.
//
// Build tags:
//
//   - An llama.cpp-backed prompt rewriter is enabled with `-tags=llama`
//     (rewrite_llama.go, llama_cgo.go). Without the tag a stub refuses to
//     construct it (rewrite_stub.go) and the heuristic rewriter is the
//     only option, keeping default builds CGO-free.
//
// Stages acquire their component from the residency scheduler before
// computing and the previous stage's component is released first, so at
// most one stage's component is held at a time. Cancellation is honored
// at stage boundaries only; a running stage always completes.
package pipeline
