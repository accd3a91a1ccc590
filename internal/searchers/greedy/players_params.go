package greedy

import (
	"github.com/blobwar/blobwarGo/internal/parameters"
	"github.com/blobwar/blobwarGo/internal/searchers"
)

// NewFromParams returns a greedy searcher if params selects "greedy", or nil otherwise.
// It takes no other parameters.
func NewFromParams[S searchers.State[S, M], M any](params parameters.Params) (*Searcher[S, M], error) {
	isGreedy, err := parameters.PopParamOr(params, "greedy", false)
	if err != nil || !isGreedy {
		return nil, err
	}
	return New[S, M](), nil
}
