package offload

// Residency is the placement state of a component's weights.
type Residency int

const (
	// ResidencyHost: weights live in host memory only.
	ResidencyHost Residency = iota
	// ResidencyMigrating: a host-to-accelerator copy is in progress.
	ResidencyMigrating
	// ResidencyGPU: weights are resident in accelerator memory.
	ResidencyGPU
)

func (r Residency) String() string {
	switch r {
	case ResidencyHost:
		return "host"
	case ResidencyMigrating:
		return "migrating"
	case ResidencyGPU:
		return "gpu"
	default:
		return "unknown"
	}
}
