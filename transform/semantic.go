package transform

import (
	"image"

	"gorgonia.org/tensor"
)

// Semantic converts label images into float32 (1, H, W) tensors. Values
// stay raw class ids. There is no augmentation: a flip uncoupled from the
// image transform's flip would break cross-modal correspondence.
type Semantic struct {
	train bool
}

// NewSemantic returns the default semantic mask transform.
func NewSemantic(train bool) *Semantic {
	return &Semantic{train: train}
}

// Apply transforms one decoded label image.
func (t *Semantic) Apply(img *image.Gray) (*tensor.Dense, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]float32, h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			data[y*w+x] = float32(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
		}
	}
	return tensor.New(tensor.WithShape(1, h, w), tensor.WithBacking(data)), nil
}
