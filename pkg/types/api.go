package types

// MotionRequest is the payload for POST /v1/motion.
// Optional fields use pointers so an explicit zero (e.g. seed 0) is
// distinguishable from an omitted field.
type MotionRequest struct {
	// Natural-language description of the motion to generate.
	// example: a person walks forward and waves
	Text string `json:"text" example:"a person walks forward and waves"`
	// Requested clip length in seconds. Clamped to [0.5, 30]. Defaults to 3.
	// example: 3
	Duration *float64 `json:"duration,omitempty" example:"3"`
	// Random seed for reproducibility. Defaults to 42; any integer is accepted.
	// example: 42
	Seed *int64 `json:"seed,omitempty" example:"42"`
	// Classifier-free guidance scale, validated to [1, 20]. Defaults to 5.
	// example: 5
	CFGScale *float64 `json:"cfg_scale,omitempty" example:"5"`
}

// MotionData carries the generated motion tensors.
// Shapes: keypoints3d [frames][joints][3], rot6d [frames][joints][6],
// transl [frames][3], root_rotations_mat [frames][3][3].
type MotionData struct {
	// Per-frame 3D joint positions. All zeros when mesh decoding is disabled.
	Keypoints3D [][][]float32 `json:"keypoints3d"`
	// Per-frame 6D joint rotations.
	Rot6D [][][]float32 `json:"rot6d"`
	// Per-frame root translation.
	Transl [][]float32 `json:"transl"`
	// Per-frame root rotation matrices. All zeros when mesh decoding is disabled.
	RootRotationsMat [][][]float32 `json:"root_rotations_mat"`
	// Number of generated frames (round(duration * fps)).
	// example: 60
	NumFrames int `json:"num_frames" example:"60"`
	// Fixed output frame rate.
	// example: 20
	FPS int `json:"fps" example:"20"`
}

// MotionMeta echoes the effective request parameters.
type MotionMeta struct {
	// The submitted prompt text.
	// example: a person walks forward and waves
	Text string `json:"text" example:"a person walks forward and waves"`
	// Effective clip duration in seconds after clamping.
	// example: 3
	Duration float64 `json:"duration" example:"3"`
	// Seed used for generation.
	// example: 42
	Seed int64 `json:"seed" example:"42"`
}

// MotionResponse is returned by POST /v1/motion.
type MotionResponse struct {
	Motion MotionData `json:"motion"`
	Meta   MotionMeta `json:"meta"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Always "ok" while the process is alive.
	// example: ok
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// ComponentStatus summarizes one managed model component for /status.
type ComponentStatus struct {
	// Component name from the model manifest.
	// example: denoiser
	Name string `json:"name" example:"denoiser"`
	// Effective precision the weights were loaded at.
	// example: int4
	Precision string `json:"precision" example:"int4"`
	// Current residency (host, migrating, gpu).
	// example: gpu
	Residency string `json:"residency" example:"gpu"`
	// Estimated accelerator footprint in bytes.
	// example: 225000000
	FootprintBytes int64 `json:"footprint_bytes" example:"225000000"`
	// Last time this component served a stage (unix seconds, 0 if never).
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix" example:"1700000000"`
	// Total number of acquisitions.
	// example: 12
	Acquires uint64 `json:"acquires" example:"12"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall runtime state (ready, draining, failed).
	// example: ready
	State string `json:"state" example:"ready"`
	// Optional error detail when state is failed.
	Error string `json:"error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Accelerator memory budget in bytes.
	// example: 4294967296
	BudgetBytes int64 `json:"budget_bytes" example:"4294967296"`
	// Bytes currently resident (gpu + migrating).
	// example: 450000000
	ResidentBytes int64 `json:"resident_bytes" example:"450000000"`
	// Offload profile in effect (0, 1 or 3).
	// example: 3
	OffloadProfile int `json:"offload_profile" example:"3"`
	// Managed components.
	Components []ComponentStatus `json:"components"`
	// Current queue length for incoming requests.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// Maximum queued requests allowed before backpressure triggers.
	// example: 16
	MaxQueueDepth int `json:"max_queue_depth" example:"16"`
	// Number of in-flight generations (0 or 1).
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Total host-to-accelerator migrations performed.
	// example: 40
	MigrationsTotal uint64 `json:"migrations_total" example:"40"`
	// Total evictions performed to free accelerator memory.
	// example: 34
	EvictionsTotal uint64 `json:"evictions_total" example:"34"`
}
