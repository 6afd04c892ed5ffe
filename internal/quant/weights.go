package quant

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand"
)

// tensorSeed derives a stable PRNG seed for one tensor from the manifest
// digest and the tensor's identity.
func tensorSeed(digest uint64, component, tensor string) int64 {
	h := fnv.New64a()
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], digest)
	_, _ = h.Write(b[:])
	_, _ = h.Write([]byte(component))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(tensor))
	return int64(h.Sum64())
}

// newTensor materializes a row-major tensor with normally distributed
// values scaled by 1/sqrt(rows), snapped to the precision grid.
func (e *Engine) newTensor(component, tensor string, rows, cols int, p Precision) Tensor {
	rng := rand.New(rand.NewSource(tensorSeed(e.digest, component, tensor)))
	scale := 1.0 / math.Sqrt(float64(rows))
	data := make([]float32, rows*cols)
	for i := range data {
		data[i] = p.Snap(float32(rng.NormFloat64() * scale))
	}
	return Tensor{Rows: rows, Cols: cols, Data: data}
}
