package pipeline

import (
	"math"

	"motiond/internal/quant"
)

// matVec computes v * T for a row-major tensor, len(v) == T.Rows.
func matVec(t quant.Tensor, v []float32) []float32 {
	out := make([]float32, t.Cols)
	for r := 0; r < t.Rows; r++ {
		x := v[r]
		if x == 0 {
			continue
		}
		row := t.Data[r*t.Cols : (r+1)*t.Cols]
		for c, w := range row {
			out[c] += x * w
		}
	}
	return out
}

// l2Normalize scales v to unit length in place. Zero vectors are left as is.
func l2Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}

// scaleVec returns v scaled by k.
func scaleVec(v []float32, k float32) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x * k
	}
	return out
}

// zeros2 allocates a [rows][cols] zero matrix.
func zeros2(rows, cols int) [][]float32 {
	out := make([][]float32, rows)
	for i := range out {
		out[i] = make([]float32, cols)
	}
	return out
}

// zeros3 allocates a [n][rows][cols] zero tensor.
func zeros3(n, rows, cols int) [][][]float32 {
	out := make([][][]float32, n)
	for i := range out {
		out[i] = zeros2(rows, cols)
	}
	return out
}
