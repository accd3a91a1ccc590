// Package players provides a factory of players from configuration strings.
// It also allows player providers (see package players/default) to register themselves.
package players

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/blobwar/blobwarGo/internal/parameters"
	"github.com/blobwar/blobwarGo/internal/searchers"
	"github.com/blobwar/blobwarGo/internal/searchers/anytime"
	. "github.com/blobwar/blobwarGo/internal/state"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Player is anything that is able to play the game: a searcher, a human or the anytime supervisor.
type Player = searchers.Strategy[Board, Movement]

// Module creates players from their parameters. It must remove from params every parameter it uses:
// the parameters left are reported as unknown.
type Module interface {
	NewPlayer(playerNum PlayerNum, params parameters.Params) (Player, error)
}

// ModuleFunc adapts a function to the Module interface.
type ModuleFunc func(playerNum PlayerNum, params parameters.Params) (Player, error)

// NewPlayer implements Module.
func (fn ModuleFunc) NewPlayer(playerNum PlayerNum, params parameters.Params) (Player, error) {
	return fn(playerNum, params)
}

var (
	// Registered modules.
	keywordToModules = make(map[string]Module)
)

// RegisterModule so it can be used by any of the front-ends to play Blobwar.
// The module is selected by the first key of the configuration string, which is left in the params passed
// to Module.NewPlayer.
func RegisterModule(name string, module Module) {
	keywordToModules[name] = module
}

// Modules returns the sorted names of the registered modules.
func Modules() []string {
	names := lo.Keys(keywordToModules)
	slices.Sort(names)
	return names
}

var (
	// DefaultPlayerConfig is used if no configuration was given to the AI.
	DefaultPlayerConfig = "alphabeta,max_depth=4"
)

// New creates a new player given the configuration string.
//
// Args:
//
//	config: the module name, followed by a comma-separated list of optional parameters with optional
//		values associated, e.g. "minmax,max_depth=3". If empty, DefaultPlayerConfig is used.
//
// More details on the config are dependent on the module used. Unknown parameters are an error.
func New(playerNum PlayerNum, config string) (Player, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}
	moduleName, _, _ := strings.Cut(config, ",")
	moduleName, _, _ = strings.Cut(moduleName, "=")
	return newFromParams(playerNum, strings.TrimSpace(moduleName), parameters.NewFromConfigString(config))
}

func newFromParams(playerNum PlayerNum, moduleName string, params parameters.Params) (Player, error) {
	config := params.String()
	module, ok := keywordToModules[moduleName]
	if !ok {
		return nil, errors.Errorf("unknown player %q, valid values are %q", moduleName, Modules())
	}
	player, err := module.NewPlayer(playerNum, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create player %q", config)
	}
	if player == nil {
		return nil, errors.Errorf("module %q didn't create a player for %q", moduleName, config)
	}
	if err = params.CheckAllUsed(); err != nil {
		return nil, errors.WithMessagef(err, "player %q", config)
	}
	return player, nil
}

// AnytimeSearchModules lists the modules the anytime driver can deepen: the depth-bounded searchers.
var AnytimeSearchModules = []string{"minmax", "alphabeta", "ab"}

// NewAnytimeDriver creates the iterative deepening driver run by the search process, from the configuration
// of a fixed-depth searcher module, e.g. "alphabeta,parallel=root".
//
// The searcher's max_depth is set by the driver on each iteration. The driver itself takes the parameters:
//
//   - seed_depth (int): first depth searched, default anytime.DefaultSeedDepth.
//   - max_depth (int): last depth searched, default 0 (unbounded: searches until killed).
func NewAnytimeDriver(searchConfig string) (*anytime.Driver[Board, Movement], error) {
	moduleName, _, _ := strings.Cut(searchConfig, ",")
	moduleName = strings.TrimSpace(moduleName)
	if !slices.Contains(AnytimeSearchModules, moduleName) {
		return nil, errors.Errorf("anytime search must use one of %q, got %q", AnytimeSearchModules, moduleName)
	}
	params := parameters.NewFromConfigString(searchConfig)
	seedDepth, err := parameters.PopParamOr(params, "seed_depth", anytime.DefaultSeedDepth)
	if err != nil {
		return nil, err
	}
	maxDepth, err := parameters.PopParamOr(params, "max_depth", 0)
	if err != nil {
		return nil, err
	}
	if seedDepth < 1 || (maxDepth != 0 && maxDepth < seedDepth) {
		return nil, errors.Errorf("invalid anytime depths seed_depth=%d, max_depth=%d", seedDepth, maxDepth)
	}
	newSearcher := func(depth int) (Player, error) {
		depthParams := maps.Clone(params)
		depthParams["max_depth"] = strconv.Itoa(depth)
		// Searchers don't depend on the player they play for.
		return newFromParams(PlayerInvalid, moduleName, depthParams)
	}
	if _, err = newSearcher(seedDepth); err != nil {
		return nil, errors.WithMessagef(err, "invalid anytime search configuration %q", searchConfig)
	}
	factory := func(depth int) Player {
		return must.M1(newSearcher(depth))
	}
	return anytime.New[Board, Movement](factory).WithSeedDepth(seedDepth).WithMaxDepth(maxDepth), nil
}
