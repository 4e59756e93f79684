package dataset

import "gorgonia.org/tensor"

// Sample is one fully assembled observation. Idx and UTM are always set;
// each tensor field is non-nil iff its modality was enabled and its
// subdirectory configured when the sample was assembled.
type Sample struct {
	// Idx is the row position this sample was assembled from.
	Idx int

	// UTM holds the row's northing and easting, in that order.
	UTM [2]float32

	// Image is the normalized CHW color image, (3, 192, 320).
	Image *tensor.Dense

	// Cloud is the range-filtered point cloud, (N, 3).
	Cloud *tensor.Dense

	// SemanticFront and SemanticBack are the per-camera label maps,
	// (1, 128, 128) each.
	SemanticFront *tensor.Dense
	SemanticBack  *tensor.Dense
}

// Fields lists the names of the fields present on this sample.
func (s *Sample) Fields() []string {
	fields := []string{"idx", "utm"}
	if s.Image != nil {
		fields = append(fields, "image")
	}
	if s.Cloud != nil {
		fields = append(fields, "cloud")
	}
	if s.SemanticFront != nil {
		fields = append(fields, "semantic_front")
	}
	if s.SemanticBack != nil {
		fields = append(fields, "semantic_back")
	}
	return fields
}
