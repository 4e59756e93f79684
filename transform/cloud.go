package transform

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// Cloud converts filtered point arrays into (N, 3) float32 tensors,
// rotating the whole cloud by a random yaw when training.
type Cloud struct {
	train bool

	// QuantizationSize is the voxel edge for downstream voxelization. The
	// transform carries it for the consumer; nothing here quantizes.
	QuantizationSize float64
}

// NewCloud returns the default point cloud transform.
func NewCloud(train bool, quantizationSize float64) *Cloud {
	return &Cloud{train: train, QuantizationSize: quantizationSize}
}

// Apply transforms one filtered point array. Zero points yield a (0, 3)
// tensor, not an error.
func (t *Cloud) Apply(pts []r3.Vector) (*tensor.Dense, error) {
	if len(pts) == 0 {
		return tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(0, 3)), nil
	}
	if t.train {
		pts = rotateYaw(pts, rand.Float64()*2*math.Pi)
	}
	data := make([]float32, 0, len(pts)*3)
	for _, p := range pts {
		data = append(data, float32(p.X), float32(p.Y), float32(p.Z))
	}
	return tensor.New(tensor.WithShape(len(pts), 3), tensor.WithBacking(data)), nil
}

// rotateYaw rotates every point about the vertical axis by theta radians.
func rotateYaw(pts []r3.Vector, theta float64) []r3.Vector {
	sin, cos := math.Sincos(theta)
	rot := mat.NewDense(3, 3, []float64{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	})
	out := make([]r3.Vector, len(pts))
	var rotated mat.VecDense
	for i, p := range pts {
		rotated.MulVec(rot, mat.NewVecDense(3, []float64{p.X, p.Y, p.Z}))
		out[i] = r3.Vector{X: rotated.AtVec(0), Y: rotated.AtVec(1), Z: rotated.AtVec(2)}
	}
	return out
}
