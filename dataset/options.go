package dataset

import "github.com/opr-project/oprdata/index"

// Option configures a Dataset beyond its Config.
type Option func(*Dataset)

// WithIndex injects a row index instead of loading {root}/{subset}.csv.
// Use it to back the dataset with a SQLite table or an in-memory index.
func WithIndex(idx index.RowIndex) Option {
	return func(d *Dataset) {
		d.index = idx
	}
}

// WithImageTransform overrides the default image transform.
func WithImageTransform(t ImageTransform) Option {
	return func(d *Dataset) {
		d.imageTransform = t
	}
}

// WithCloudTransform overrides the default point cloud transform.
func WithCloudTransform(t CloudTransform) Option {
	return func(d *Dataset) {
		d.cloudTransform = t
	}
}

// WithSemanticTransform overrides the default semantic mask transform.
func WithSemanticTransform(t SemanticTransform) Option {
	return func(d *Dataset) {
		d.semanticTransform = t
	}
}
