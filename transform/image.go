// Package transform holds the per-modality functions mapping raw decoded
// assets to the canonical tensors a training loop consumes. Transforms
// built for the train split augment their input; val and test transforms
// are deterministic.
package transform

import (
	"image"
	"math/rand"

	"github.com/disintegration/imaging"
	"gorgonia.org/tensor"
)

// Canonical image resolution fed to the model.
const (
	ImageWidth  = 320
	ImageHeight = 192
)

// ImageNet channel statistics, applied after scaling to [0, 1].
var (
	imageMean = [3]float32{0.485, 0.456, 0.406}
	imageStd  = [3]float32{0.229, 0.224, 0.225}
)

// Image resizes, optionally flips and normalizes color images into CHW
// float32 tensors of shape (3, ImageHeight, ImageWidth).
type Image struct {
	train bool
}

// NewImage returns the default image transform. train enables random
// horizontal flipping.
func NewImage(train bool) *Image {
	return &Image{train: train}
}

// Apply transforms one decoded RGB image.
func (t *Image) Apply(img image.Image) (*tensor.Dense, error) {
	resized := imaging.Resize(img, ImageWidth, ImageHeight, imaging.Linear)
	if t.train && rand.Float64() < 0.5 {
		resized = imaging.FlipH(resized)
	}

	w, h := resized.Bounds().Dx(), resized.Bounds().Dy()
	data := make([]float32, 3*h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := resized.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				v := float32(resized.Pix[off+c]) / 255
				data[c*h*w+y*w+x] = (v - imageMean[c]) / imageStd[c]
			}
		}
	}
	return tensor.New(tensor.WithShape(3, h, w), tensor.WithBacking(data)), nil
}
