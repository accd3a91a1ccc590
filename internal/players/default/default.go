// Package _default registers the default players that can be included in any front-end for Blobwar:
// the searchers (greedy, minmax, alphabeta), the anytime supervised search and the human player.
package _default

import (
	"os"
	"strings"

	"github.com/blobwar/blobwarGo/internal/parameters"
	"github.com/blobwar/blobwarGo/internal/players"
	"github.com/blobwar/blobwarGo/internal/searchers/alphabeta"
	"github.com/blobwar/blobwarGo/internal/searchers/greedy"
	"github.com/blobwar/blobwarGo/internal/searchers/minmax"
	"github.com/blobwar/blobwarGo/internal/state"
	"github.com/blobwar/blobwarGo/internal/supervisor"
	"github.com/blobwar/blobwarGo/internal/ui/cli"
	"github.com/pkg/errors"
)

func init() {
	players.RegisterModule("greedy", players.ModuleFunc(newGreedy))
	players.RegisterModule("minmax", players.ModuleFunc(newMinMax))
	players.RegisterModule("alphabeta", players.ModuleFunc(newAlphaBeta))
	players.RegisterModule("ab", players.ModuleFunc(newAlphaBeta))
	players.RegisterModule("human", players.ModuleFunc(newHuman))
	players.RegisterModule("anytime", players.ModuleFunc(newAnytime))
}

func newGreedy(_ state.PlayerNum, params parameters.Params) (players.Player, error) {
	g, err := greedy.NewFromParams[state.Board, state.Movement](params)
	if err != nil || g == nil {
		return nil, err
	}
	return g, nil
}

func newMinMax(_ state.PlayerNum, params parameters.Params) (players.Player, error) {
	mm, err := minmax.NewFromParams[state.Board, state.Movement](params)
	if err != nil || mm == nil {
		return nil, err
	}
	return mm, nil
}

func newAlphaBeta(_ state.PlayerNum, params parameters.Params) (players.Player, error) {
	ab, err := alphabeta.NewFromParams[state.Board, state.Movement](params)
	if err != nil || ab == nil {
		return nil, err
	}
	return ab, nil
}

func newHuman(playerNum state.PlayerNum, params parameters.Params) (players.Player, error) {
	delete(params, "human")
	return cli.NewHuman(playerNum, os.Stdin, os.Stdout), nil
}

// newAnytime creates the supervisor of an anytime search process.
//
// Parameters:
//
//   - anytime (bool): selects this player.
//   - deadline (time.Duration): time given to each search, default supervisor.DefaultDeadline.
//   - search (string): the fixed-depth searcher module used at each depth, default "alphabeta".
//
// Every other parameter is passed to the search process, see players.NewAnytimeDriver.
func newAnytime(_ state.PlayerNum, params parameters.Params) (players.Player, error) {
	delete(params, "anytime")
	deadline, err := parameters.PopParamOr(params, "deadline", supervisor.DefaultDeadline)
	if err != nil {
		return nil, err
	}
	if deadline <= 0 {
		return nil, errors.Errorf("anytime requires a positive deadline, got %s", deadline)
	}
	search, err := parameters.PopParamOr(params, "search", "alphabeta")
	if err != nil {
		return nil, err
	}
	searchConfig := search
	if len(params) > 0 {
		searchConfig = strings.Join([]string{search, params.String()}, ",")
	}
	// Validate the configuration now, instead of failing in the search process.
	if _, err = players.NewAnytimeDriver(searchConfig); err != nil {
		return nil, err
	}
	clear(params)
	return supervisor.New(deadline, searchConfig), nil
}
