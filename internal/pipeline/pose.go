package pipeline

import (
	"fmt"

	"motiond/internal/quant"
)

// decodePose maps latents to the pose tracks: per-joint rotations in the
// continuous 6D representation and a root translation. Rotations are
// decoded as residuals from identity so small latent drives stay near the
// rest pose; translation integrates a per-frame root velocity at the
// fixed frame rate.
func decodePose(dec *quant.Component, lat [][]float32, joints int) (rot6d [][][]float32, transl [][]float32, err error) {
	rotProj, ok := dec.Tensor(quant.TensorRotProj)
	if !ok {
		return nil, nil, fmt.Errorf("component %s: missing %q tensor", dec.Name, quant.TensorRotProj)
	}
	translProj, ok := dec.Tensor(quant.TensorTranslProj)
	if !ok {
		return nil, nil, fmt.Errorf("component %s: missing %q tensor", dec.Name, quant.TensorTranslProj)
	}
	if rotProj.Cols != joints*6 {
		return nil, nil, fmt.Errorf("component %s: rotation output %d does not match %d joints",
			dec.Name, rotProj.Cols, joints)
	}

	frames := len(lat)
	rot6d = make([][][]float32, frames)
	transl = make([][]float32, frames)
	const dt = 1.0 / FPS
	prev := [3]float32{}
	for f := range lat {
		rp := matVec(rotProj, lat[f])
		fr := make([][]float32, joints)
		for j := 0; j < joints; j++ {
			v := make([]float32, 6)
			copy(v, rp[j*6:(j+1)*6])
			// Identity residual: the rest rotation's first two columns
			// are +x and +y.
			v[0] += 1
			v[4] += 1
			fr[j] = v
		}
		rot6d[f] = fr

		vel := matVec(translProj, lat[f])
		cur := [3]float32{
			prev[0] + vel[0]*dt,
			prev[1] + vel[1]*dt,
			prev[2] + vel[2]*dt,
		}
		transl[f] = []float32{cur[0], cur[1], cur[2]}
		prev = cur
	}
	return rot6d, transl, nil
}
