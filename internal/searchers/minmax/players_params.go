package minmax

import (
	"github.com/blobwar/blobwarGo/internal/parallel"
	"github.com/blobwar/blobwarGo/internal/parameters"
	"github.com/blobwar/blobwarGo/internal/searchers"
	"github.com/pkg/errors"
)

// NewFromParams returns a MinMax searcher configured from params, or nil if params doesn't select "minmax".
//
// Parameters:
//
//   - minmax (bool): selects this searcher.
//   - max_depth (int): depth of the search in plies, default DefaultMaxDepth.
//   - parallel (string): "full" (default) evaluates children of every node in parallel, "none" is sequential.
//
// The parameters used are removed from params.
func NewFromParams[S searchers.State[S, M], M any](params parameters.Params) (*Searcher[S, M], error) {
	isMinMax, err := parameters.PopParamOr(params, "minmax", false)
	if err != nil || !isMinMax {
		return nil, err
	}
	maxDepth, err := parameters.PopParamOr(params, "max_depth", DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	if maxDepth < 1 {
		return nil, errors.Errorf("minmax requires max_depth >= 1, got %d", maxDepth)
	}
	mm := New[S, M](maxDepth)
	mode, err := parameters.PopParamOr(params, "parallel", "full")
	if err != nil {
		return nil, err
	}
	switch mode {
	case "full":
		mm.WithPool(parallel.Default)
	case "none":
		mm.WithPool(nil)
	default:
		return nil, errors.Errorf("minmax parallel=%q not supported, valid values are \"full\" or \"none\"", mode)
	}
	return mm, nil
}
