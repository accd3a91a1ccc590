package alphabeta

import (
	"github.com/blobwar/blobwarGo/internal/parameters"
	"github.com/blobwar/blobwarGo/internal/searchers"
	"github.com/pkg/errors"
)

// NewFromParams returns an alpha-beta searcher configured from params, or nil if params doesn't select
// "alphabeta" (or its short form "ab").
//
// Parameters:
//
//   - alphabeta, ab (bool): selects this searcher.
//   - max_depth (int): depth of the search in plies, default DefaultMaxDepth.
//   - parallel (string): "root" (default), "full" or "none", see Mode.
//
// The parameters used are removed from params.
func NewFromParams[S searchers.State[S, M], M any](params parameters.Params) (*Searcher[S, M], error) {
	isAlphaBeta, err := parameters.PopParamOr(params, "alphabeta", false)
	if err != nil {
		return nil, err
	}
	isAB, err := parameters.PopParamOr(params, "ab", false)
	if err != nil {
		return nil, err
	}
	if !isAlphaBeta && !isAB {
		return nil, nil
	}
	maxDepth, err := parameters.PopParamOr(params, "max_depth", DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	if maxDepth < 1 {
		return nil, errors.Errorf("alphabeta requires max_depth >= 1, got %d", maxDepth)
	}
	modeName, err := parameters.PopParamOr(params, "parallel", RootParallel.String())
	if err != nil {
		return nil, err
	}
	mode, err := ParseMode(modeName)
	if err != nil {
		return nil, err
	}
	return New[S, M](maxDepth).WithMode(mode), nil
}
