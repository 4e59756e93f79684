package dataset

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Subset identifies one of the fixed dataset splits.
type Subset string

// The valid splits.
const (
	SubsetTrain Subset = "train"
	SubsetVal   Subset = "val"
	SubsetTest  Subset = "test"
)

// Modality is one sensory data channel of the dataset.
type Modality string

// The valid modalities.
const (
	ModalityImage    Modality = "image"
	ModalityCloud    Modality = "cloud"
	ModalitySemantic Modality = "semantic"
)

// CloudSubdir is the fixed subdirectory point cloud assets live in. The
// recording tooling always writes clouds there, so it is not configurable.
const CloudSubdir = "lidar"

// CloudTSColumn is the row index column holding the LiDAR timestamp.
const CloudTSColumn = "lidar_ts"

// Timestamp columns for the semantic sub-channels.
const (
	semanticFrontTSColumn = "front_cam_ts"
	semanticBackTSColumn  = "back_cam_ts"
)

// Config describes one dataset instance. An empty subdirectory disables
// the corresponding field even when its modality is enabled; the image
// modality is the exception and refuses to construct without one.
type Config struct {
	// Root is the dataset root directory, laid out as
	// {root}/{track}/{subdir}/{timestamp}.{ext}.
	Root string `yaml:"root"`

	// Subset selects which split's row index to load.
	Subset Subset `yaml:"subset"`

	// Modalities lists the enabled channels. Unknown names are rejected
	// at construction.
	Modalities []Modality `yaml:"modalities"`

	// ImagesSubdir is the camera image subdirectory.
	ImagesSubdir string `yaml:"images_subdir"`

	// ImageTSColumn names the row index column holding the image
	// timestamp. When empty the constructor derives "<ImagesSubdir>_ts",
	// matching the recorder's column naming.
	ImageTSColumn string `yaml:"image_ts_column"`

	// SemanticFrontSubdir and SemanticBackSubdir hold the per-camera
	// label maps; each sub-channel is independently optional.
	SemanticFrontSubdir string `yaml:"semantic_front_subdir"`
	SemanticBackSubdir  string `yaml:"semantic_back_subdir"`

	// QuantizationSize is the voxel edge handed to the downstream cloud
	// voxelizer; the assembler itself never quantizes.
	QuantizationSize float64 `yaml:"quantization_size"`
}

// DefaultConfig returns the recorder's standard layout.
func DefaultConfig() Config {
	return Config{
		Subset:              SubsetTest,
		Modalities:          []Modality{ModalityImage, ModalityCloud},
		ImagesSubdir:        "front_cam",
		SemanticFrontSubdir: "labels/front_cam",
		SemanticBackSubdir:  "labels/back_cam",
		QuantizationSize:    0.5,
	}
}

// ReadConfig loads a YAML config from path, overlaying DefaultConfig.
func ReadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "couldn't read dataset config")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "couldn't parse dataset config %q", path)
	}
	return cfg, nil
}

// HasModality reports whether m is enabled.
func (c *Config) HasModality(m Modality) bool {
	for _, enabled := range c.Modalities {
		if enabled == m {
			return true
		}
	}
	return false
}

// Validate checks the config for construction.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("root is required")
	}
	switch c.Subset {
	case SubsetTrain, SubsetVal, SubsetTest:
	default:
		return errors.Errorf("unknown subset %q", c.Subset)
	}
	for _, m := range c.Modalities {
		switch m {
		case ModalityImage, ModalityCloud, ModalitySemantic:
		default:
			return errors.Errorf("unknown modality %q", m)
		}
	}
	if c.HasModality(ModalityImage) && c.ImagesSubdir == "" {
		return errors.New(`modality "image" is enabled but images_subdir is empty`)
	}
	return nil
}
