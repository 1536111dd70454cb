package tui

import (
	"testing"

	"github.com/matryer/is"

	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

func TestDescribeGeometry(t *testing.T) {
	is := is.New(t)

	is.Equal("(9.9312, 76.2673)", describeGeometry(types.Geometry{
		Type:  "Point",
		Point: []float64{76.2673, 9.9312},
	}))

	is.Equal("2 segment line", describeGeometry(types.Geometry{
		Type:       "LineString",
		LineString: [][]float64{{76.26, 9.93}, {76.27, 9.94}, {76.28, 9.95}},
	}))

	// a degenerate line has no segments to count
	is.Equal("", describeGeometry(types.Geometry{Type: "LineString"}))
	is.Equal("", describeGeometry(types.Geometry{Type: "Point"}))
}
