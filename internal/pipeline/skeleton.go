package pipeline

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Canonical 22-joint humanoid skeleton. Joint order follows the common
// motion-capture convention: pelvis, hips, spine chain, knees, ankles,
// feet, neck, collars, head, shoulders, elbows, wrists. Every parent
// index precedes its children so one forward pass resolves the tree.
var humanoidParents = []int{
	-1, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9, 12, 13, 14, 16, 17, 18, 19,
}

// Rest-pose bone offsets in meters, child relative to parent.
var humanoidOffsets = [][3]float32{
	{0, 0, 0},          // 0 pelvis (root)
	{0.09, -0.05, 0},   // 1 left hip
	{-0.09, -0.05, 0},  // 2 right hip
	{0, 0.11, 0},       // 3 spine1
	{0, -0.38, 0},      // 4 left knee
	{0, -0.38, 0},      // 5 right knee
	{0, 0.13, 0},       // 6 spine2
	{0, -0.40, 0},      // 7 left ankle
	{0, -0.40, 0},      // 8 right ankle
	{0, 0.06, 0},       // 9 spine3
	{0, -0.05, 0.12},   // 10 left foot
	{0, -0.05, 0.12},   // 11 right foot
	{0, 0.21, 0},       // 12 neck
	{0.08, 0.11, 0},    // 13 left collar
	{-0.08, 0.11, 0},   // 14 right collar
	{0, 0.07, 0},       // 15 head
	{0.12, 0.04, 0},    // 16 left shoulder
	{-0.12, 0.04, 0},   // 17 right shoulder
	{0.26, 0, 0},       // 18 left elbow
	{-0.26, 0, 0},      // 19 right elbow
	{0.25, 0, 0},       // 20 left wrist
	{-0.25, 0, 0},      // 21 right wrist
}

// skeletonFor returns the kinematic tree for a joint count. 22 joints get
// the canonical humanoid; other counts (small test models) get a simple
// chain with uniform offsets.
func skeletonFor(joints int) (parents []int, offsets [][3]float32) {
	if joints == len(humanoidParents) {
		return humanoidParents, humanoidOffsets
	}
	parents = make([]int, joints)
	offsets = make([][3]float32, joints)
	for j := 0; j < joints; j++ {
		parents[j] = j - 1
		if j > 0 {
			offsets[j] = [3]float32{0, 0.1, 0}
		}
	}
	return parents, offsets
}

// rot6dToMatrix recovers a rotation matrix from the continuous 6D
// representation (the first two matrix columns) via Gram-Schmidt. Near-
// degenerate inputs fall back to fixed axes so the result is always a
// proper orthonormal basis.
func rot6dToMatrix(v []float32) *mat.Dense {
	a1 := []float64{float64(v[0]), float64(v[1]), float64(v[2])}
	a2 := []float64{float64(v[3]), float64(v[4]), float64(v[5])}
	b1 := normalizeOr(a1, []float64{1, 0, 0})
	d := floats.Dot(b1, a2)
	b2 := normalizeOr([]float64{a2[0] - d*b1[0], a2[1] - d*b1[1], a2[2] - d*b1[2]}, perpendicularTo(b1))
	b3 := cross(b1, b2)
	return mat.NewDense(3, 3, []float64{
		b1[0], b2[0], b3[0],
		b1[1], b2[1], b3[1],
		b1[2], b2[2], b3[2],
	})
}

func normalizeOr(v, fallback []float64) []float64 {
	n := floats.Norm(v, 2)
	if n < 1e-8 {
		return fallback
	}
	return []float64{v[0] / n, v[1] / n, v[2] / n}
}

// perpendicularTo picks a unit vector orthogonal to unit vector b.
func perpendicularTo(b []float64) []float64 {
	axis := []float64{1, 0, 0}
	if b[0] > 0.9 || b[0] < -0.9 {
		axis = []float64{0, 1, 0}
	}
	p := cross(b, axis)
	n := floats.Norm(p, 2)
	return []float64{p[0] / n, p[1] / n, p[2] / n}
}

func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// forwardKinematics walks the kinematic tree, composing world rotations
// and accumulating joint positions from the root translation.
func forwardKinematics(parents []int, offsets [][3]float32, rots []*mat.Dense, rootTransl []float32) [][]float32 {
	joints := len(parents)
	worldRot := make([]*mat.Dense, joints)
	pos := make([][]float32, joints)
	var rotated mat.VecDense
	for j := 0; j < joints; j++ {
		parent := parents[j]
		if parent < 0 {
			worldRot[j] = rots[j]
			pos[j] = []float32{rootTransl[0], rootTransl[1], rootTransl[2]}
			continue
		}
		wr := mat.NewDense(3, 3, nil)
		wr.Mul(worldRot[parent], rots[j])
		worldRot[j] = wr
		off := mat.NewVecDense(3, []float64{
			float64(offsets[j][0]), float64(offsets[j][1]), float64(offsets[j][2]),
		})
		rotated.MulVec(worldRot[parent], off)
		pos[j] = []float32{
			pos[parent][0] + float32(rotated.AtVec(0)),
			pos[parent][1] + float32(rotated.AtVec(1)),
			pos[parent][2] + float32(rotated.AtVec(2)),
		}
	}
	return pos
}
