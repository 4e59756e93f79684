package pointcloud

import (
	"fmt"
	"io"

	"github.com/golang/geo/r3"
)

// WritePCD writes points out as an ASCII PCD v.7 document, one unorganized
// row of x y z fields per point.
func WritePCD(pts []r3.Vector, out io.Writer) error {
	_, err := fmt.Fprintf(out, "VERSION .7\n"+
		"FIELDS x y z\n"+
		"SIZE 4 4 4\n"+
		"TYPE F F F\n"+
		"COUNT 1 1 1\n"+
		"WIDTH %d\n"+
		"HEIGHT 1\n"+
		"VIEWPOINT 0 0 0 1 0 0 0\n"+
		"POINTS %d\n"+
		"DATA ascii\n",
		len(pts), len(pts))
	if err != nil {
		return err
	}
	for _, p := range pts {
		if _, err := fmt.Fprintf(out, "%f %f %f\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	return nil
}
