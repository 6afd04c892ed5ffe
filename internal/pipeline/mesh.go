package pipeline

import (
	"gonum.org/v1/gonum/mat"
)

// decodeMesh recovers per-joint rotation matrices from the 6D track and
// runs forward kinematics over the skeleton, yielding world-space joint
// keypoints plus the root rotation matrix per frame.
func decodeMesh(rot6d [][][]float32, transl [][]float32, joints int) (keypoints [][][]float32, rootRot [][][]float32) {
	parents, offsets := skeletonFor(joints)
	frames := len(rot6d)
	keypoints = make([][][]float32, frames)
	rootRot = make([][][]float32, frames)
	rots := make([]*mat.Dense, joints)
	for f := 0; f < frames; f++ {
		for j := 0; j < joints; j++ {
			rots[j] = rot6dToMatrix(rot6d[f][j])
		}
		keypoints[f] = forwardKinematics(parents, offsets, rots, transl[f])
		root := rots[0]
		rr := make([][]float32, 3)
		for r := 0; r < 3; r++ {
			rr[r] = []float32{
				float32(root.At(r, 0)),
				float32(root.At(r, 1)),
				float32(root.At(r, 2)),
			}
		}
		rootRot[f] = rr
	}
	return keypoints, rootRot
}
