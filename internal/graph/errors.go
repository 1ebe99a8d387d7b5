package graph

import "errors"

// Graph construction and evaluation errors.
var (
	// ErrSamplerIndices is returned when the sampler coordinates referenced
	// by the module configs do not form a contiguous range starting at 0.
	ErrSamplerIndices = errors.New("sampler indices must be contiguous from 0")

	// ErrDimensionMismatch is returned when the modules' summed dimension
	// counts disagree with the number of referenced sampler coordinates.
	ErrDimensionMismatch = errors.New("dimension count does not match sampler references")

	// ErrPointSize is returned when a point has the wrong number of coordinates.
	ErrPointSize = errors.New("point has wrong number of coordinates")
)
