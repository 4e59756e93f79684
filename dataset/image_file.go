package dataset

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ReadImageFromFile loads one color image asset. Go decoders already
// produce RGB channel order, which is the canonical order downstream.
func ReadImageFromFile(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read image %q", path)
	}
	return img, nil
}

// ReadGrayImageFromFile loads one single-channel label image asset.
func ReadGrayImageFromFile(path string) (*image.Gray, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read label image %q", path)
	}
	return toGray(img), nil
}

func toGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)
	return gray
}
