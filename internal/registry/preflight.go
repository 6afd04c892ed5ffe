package registry

import (
	"os"
	"path/filepath"
)

// PreflightReport describes model directory checks performed before the
// daemon attempts a full load. It does not mutate state and is safe to
// run against any path.
type PreflightReport struct {
	Dir           string `json:"dir"`
	ManifestFound bool   `json:"manifest_found"`
	ManifestError string `json:"manifest_error,omitempty"`
	ModelName     string `json:"model_name,omitempty"`
	Components    int    `json:"components,omitempty"`
	WeightsFound  bool   `json:"weights_found"`
	WeightsPath   string `json:"weights_path,omitempty"`
	WeightsBytes  int64  `json:"weights_bytes,omitempty"`
}

// OK reports whether the directory passed every check.
func (r PreflightReport) OK() bool {
	return r.ManifestFound && r.ManifestError == "" && r.WeightsFound
}

// Preflight inspects a model directory and reports what a full Load would
// find, without failing on the first problem.
func Preflight(dir string) PreflightReport {
	rep := PreflightReport{Dir: dir}
	base, err := expandHome(dir)
	if err != nil {
		rep.ManifestError = err.Error()
		return rep
	}
	rep.ManifestFound = pathExists(filepath.Join(base, manifestFile))
	if !rep.ManifestFound {
		return rep
	}
	m, err := parse(dir)
	if err != nil {
		rep.ManifestError = err.Error()
		return rep
	}
	rep.ModelName = m.Name
	rep.Components = len(m.Components)
	rep.WeightsPath = m.WeightsPath
	if fi, err := os.Stat(m.WeightsPath); err == nil && !fi.IsDir() {
		rep.WeightsFound = true
		rep.WeightsBytes = fi.Size()
	}
	return rep
}
