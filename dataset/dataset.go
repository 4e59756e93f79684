// Package dataset assembles per-sample tensors for a place-recognition
// training loop from a tabular index of recorded vehicle traversals.
// Every access re-reads and re-decodes from storage; there is no caching
// and no shared mutable state, so concurrent assembly over a read-only
// filesystem is safe.
package dataset

import (
	"image"
	"image/draw"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/opr-project/oprdata/index"
	"github.com/opr-project/oprdata/pointcloud"
	"github.com/opr-project/oprdata/transform"
)

// Semantic masks are resized to this square resolution before the
// semantic transform runs.
const semanticSize = 128

// ErrOutOfRange is returned by GetSample for indexes outside [0, Len()).
var ErrOutOfRange = errors.New("sample index out of range")

// ImageTransform maps a decoded color image to its canonical tensor.
type ImageTransform interface {
	Apply(img image.Image) (*tensor.Dense, error)
}

// CloudTransform maps a filtered point array to its canonical tensor.
type CloudTransform interface {
	Apply(pts []r3.Vector) (*tensor.Dense, error)
}

// SemanticTransform maps a decoded label image to its canonical tensor.
type SemanticTransform interface {
	Apply(img *image.Gray) (*tensor.Dense, error)
}

// Dataset assembles multimodal samples, one per row of its index.
type Dataset struct {
	cfg           Config
	imageTSColumn string
	index         index.RowIndex
	logger        golog.Logger

	imageTransform    ImageTransform
	cloudTransform    CloudTransform
	semanticTransform SemanticTransform
}

// New builds a dataset over cfg.Root. Unless overridden by options, the
// row index comes from {root}/{subset}.csv and the transforms are the
// package defaults, augmenting iff the subset is the train split.
func New(cfg Config, logger golog.Logger, opts ...Option) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Dataset{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(d)
	}

	if d.index == nil {
		idx, err := index.NewCSV(filepath.Join(cfg.Root, string(cfg.Subset)+".csv"))
		if err != nil {
			return nil, errors.Wrap(err, "couldn't load row index")
		}
		d.index = idx
	}

	d.imageTSColumn = cfg.ImageTSColumn
	if d.imageTSColumn == "" && cfg.HasModality(ModalityImage) {
		d.imageTSColumn = cfg.ImagesSubdir + "_ts"
		logger.Debugw("derived image timestamp column from images subdirectory", "column", d.imageTSColumn)
	}

	train := cfg.Subset == SubsetTrain
	if d.imageTransform == nil {
		d.imageTransform = transform.NewImage(train)
	}
	if d.cloudTransform == nil {
		d.cloudTransform = transform.NewCloud(train, cfg.QuantizationSize)
	}
	if d.semanticTransform == nil {
		d.semanticTransform = transform.NewSemantic(train)
	}

	if cfg.HasModality(ModalitySemantic) && cfg.SemanticFrontSubdir == "" && cfg.SemanticBackSubdir == "" {
		logger.Warnw("semantic modality enabled with no semantic subdirectories; samples will carry no semantic fields")
	}
	return d, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return d.index.Len()
}

// Row exposes the index row behind sample i. Every row of the test split
// counts as a query for evaluation.
func (d *Dataset) Row(i int) (index.Row, error) {
	row, err := d.index.Row(i)
	if err != nil {
		return index.Row{}, err
	}
	if d.cfg.Subset == SubsetTest {
		row.InQuery = true
	}
	return row, nil
}

// GetSample assembles the sample at row i. Any failing step fails the
// whole call; there are no partial samples.
func (d *Dataset) GetSample(i int) (Sample, error) {
	if i < 0 || i >= d.index.Len() {
		return Sample{}, errors.Wrapf(ErrOutOfRange, "index %d with dataset length %d", i, d.index.Len())
	}
	row, err := d.index.Row(i)
	if err != nil {
		return Sample{}, err
	}

	s := Sample{Idx: i, UTM: [2]float32{row.Northing, row.Easting}}
	trackDir := filepath.Join(d.cfg.Root, row.Track)

	if d.cfg.HasModality(ModalityImage) && d.cfg.ImagesSubdir != "" {
		ts, err := row.Column(d.imageTSColumn)
		if err != nil {
			return Sample{}, err
		}
		img, err := ReadImageFromFile(AssetPath(trackDir, d.cfg.ImagesSubdir, ts, "png"))
		if err != nil {
			return Sample{}, err
		}
		if s.Image, err = d.imageTransform.Apply(img); err != nil {
			return Sample{}, errors.Wrap(err, "image transform")
		}
	}

	if d.cfg.HasModality(ModalityCloud) {
		ts, err := row.Column(CloudTSColumn)
		if err != nil {
			return Sample{}, err
		}
		pts, err := pointcloud.ReadBinFile(AssetPath(trackDir, CloudSubdir, ts, "bin"))
		if err != nil {
			return Sample{}, err
		}
		if s.Cloud, err = d.cloudTransform.Apply(pts); err != nil {
			return Sample{}, errors.Wrap(err, "cloud transform")
		}
	}

	if d.cfg.HasModality(ModalitySemantic) {
		if d.cfg.SemanticFrontSubdir != "" {
			if s.SemanticFront, err = d.semanticField(trackDir, d.cfg.SemanticFrontSubdir, semanticFrontTSColumn, row); err != nil {
				return Sample{}, err
			}
		}
		if d.cfg.SemanticBackSubdir != "" {
			if s.SemanticBack, err = d.semanticField(trackDir, d.cfg.SemanticBackSubdir, semanticBackTSColumn, row); err != nil {
				return Sample{}, err
			}
		}
	}
	return s, nil
}

func (d *Dataset) semanticField(trackDir, subdir, tsColumn string, row index.Row) (*tensor.Dense, error) {
	ts, err := row.Column(tsColumn)
	if err != nil {
		return nil, err
	}
	img, err := ReadGrayImageFromFile(AssetPath(trackDir, subdir, ts, "png"))
	if err != nil {
		return nil, err
	}
	// nearest neighbor: label values must survive the resize untouched
	resized := imaging.Resize(img, semanticSize, semanticSize, imaging.NearestNeighbor)
	gray := image.NewGray(resized.Bounds())
	draw.Draw(gray, gray.Bounds(), resized, resized.Bounds().Min, draw.Src)

	td, err := d.semanticTransform.Apply(gray)
	if err != nil {
		return nil, errors.Wrap(err, "semantic transform")
	}
	return td, nil
}
