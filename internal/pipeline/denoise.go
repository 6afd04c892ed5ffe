package pipeline

import (
	"fmt"
	"math"
	"math/rand"

	"motiond/internal/quant"
)

// Latent update coefficients. The exponential moving average keeps
// trajectories bounded for any step count; tanh saturates the drive so
// precision differences in the weights stay visible without diverging.
const (
	latentKeep  = 0.85
	latentDrive = 0.15
)

// denoise refines seeded per-frame latents for a fixed number of steps
// under classifier-free guidance. The unconditioned branch is identically
// zero, so `uncond + cfg*(cond-uncond)` folds to `cfg*cond`. Every input
// of the update is seeded or loaded deterministically, so a given
// (cond, frames, steps, seed, cfg, weights) tuple always yields the same
// latents.
func denoise(den *quant.Component, cond []float32, frames, steps int, seed int64, cfg float64) ([][]float32, error) {
	condProj, ok := den.Tensor(quant.TensorCondProj)
	if !ok {
		return nil, fmt.Errorf("component %s: missing %q tensor", den.Name, quant.TensorCondProj)
	}
	stepMix, ok := den.Tensor(quant.TensorStepMix)
	if !ok {
		return nil, fmt.Errorf("component %s: missing %q tensor", den.Name, quant.TensorStepMix)
	}
	if len(cond) != condProj.Rows {
		return nil, fmt.Errorf("component %s: conditioning width %d does not match projection input %d",
			den.Name, len(cond), condProj.Rows)
	}
	width := stepMix.Cols

	guided := scaleVec(matVec(condProj, cond), float32(cfg))

	rng := rand.New(rand.NewSource(seed))
	lat := make([][]float32, frames)
	for f := range lat {
		row := make([]float32, width)
		for i := range row {
			row[i] = float32(rng.NormFloat64())
		}
		lat[f] = row
	}

	for s := 0; s < steps; s++ {
		for f := 0; f < frames; f++ {
			mixv := matVec(stepMix, lat[f])
			// Per-frame phase makes the conditioning drive vary along the
			// clip instead of pulling every frame to the same pose.
			phase := float32(math.Sin(2*math.Pi*float64(f)/float64(frames) + 0.1*float64(s)))
			row := lat[f]
			for i := range row {
				d := float64(mixv[i] + guided[i]*phase)
				row[i] = latentKeep*row[i] + latentDrive*float32(math.Tanh(d))
			}
		}
	}
	return lat, nil
}
