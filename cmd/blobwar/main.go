// blobwar plays a Blobwar match in the terminal between two players, each one configured by a
// configuration string (see package players), e.g.:
//
//	blobwar -red=human -blue="alphabeta,max_depth=4"
//	blobwar -red="anytime,deadline=2s,search=alphabeta" -blue="minmax,max_depth=3" -quiet
//
// With -anytime it runs instead as the search process of an "anytime" player: it reads the board from stdin
// and publishes its best movement after every completed depth to the shared memory register, until killed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/blobwar/blobwarGo/internal/match"
	"github.com/blobwar/blobwarGo/internal/players"
	_ "github.com/blobwar/blobwarGo/internal/players/default"
	"github.com/blobwar/blobwarGo/internal/profilers"
	"github.com/blobwar/blobwarGo/internal/searchers"
	. "github.com/blobwar/blobwarGo/internal/state"
	"github.com/blobwar/blobwarGo/internal/supervisor"
	"github.com/blobwar/blobwarGo/internal/ui/cli"
	"github.com/blobwar/blobwarGo/internal/ui/spinning"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagRed      = flag.String("red", "human", "Configuration of the red player, who plays first.")
	flagBlue     = flag.String("blue", players.DefaultPlayerConfig, "Configuration of the blue player.")
	flagBoard    = flag.String("board", "", "File with the initial board, in the same format printed with -v=1. Default is the standard opening.")
	flagMaxMoves = flag.Int("max_moves", 0, "Max moves (passes included) before the match is interrupted. 0 means no limit.")
	flagQuiet    = flag.Bool("quiet", false, "Quiet mode: only the movements and the final board are printed.")
	flagColor    = flag.Bool("color", true, "Use colors to display the board.")
	flagClear    = flag.Bool("clear", false, "Clear the screen before printing the board.")

	flagAnytime = flag.Bool("anytime", false, "Run as the search process of an anytime player: reads the board from stdin "+
		"and searches until killed. Not meant to be used directly.")
	flagSearch = flag.String("search", "alphabeta", "Search configuration used with -anytime, e.g. \"alphabeta,parallel=root,max_depth=8\".")

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagMaxMoves < 0 {
		exceptions.Panicf("invalid -max_moves=%d, it must be >= 0", *flagMaxMoves)
	}
	if *flagAnytime {
		runSearchProcess()
		return
	}

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()
	defer profilers.Setup(globalCtx)()

	board := initialBoard()
	ui := cli.New(*flagColor, *flagClear)
	lastMove := Movement{From: NoSquare, To: NoSquare}
	red := display(ui, PlayerFirst, must.M1(players.New(PlayerFirst, *flagRed)), &lastMove)
	blue := display(ui, PlayerSecond, must.M1(players.New(PlayerSecond, *flagBlue)), &lastMove)

	result, err := match.New(red, blue).
		WithMaxMoves(*flagMaxMoves).
		WithObserver(match.Observer{
			OnMove: func(_ Board, player PlayerNum, move Movement, elapsed time.Duration) {
				lastMove = move
				ui.PrintMove(player, move)
				klog.V(1).Infof("%s movement %s took %s", player, move, elapsed)
			},
			OnPass: func(_ Board, player PlayerNum) {
				ui.PrintPass(player)
			},
		}).
		Run(globalCtx, board)
	ui.Print(result.Board, lastMove)
	if err != nil {
		klog.Exitf("Match interrupted: %+v", err)
	}
	if result.Reason == match.MaxMoves {
		fmt.Printf("Match interrupted after %d moves.\n", result.NumMoves)
		return
	}
	ui.PrintWinner(result.Board)
}

// initialBoard returns the standard opening, or the board read from -board.
func initialBoard() Board {
	if *flagBoard == "" {
		return NewBoard()
	}
	text, err := os.ReadFile(*flagBoard)
	if err != nil {
		klog.Exitf("Failed to read -board=%q: %v", *flagBoard, err)
	}
	board, err := Parse(string(text))
	if err != nil {
		klog.Exitf("Invalid board in %q: %+v", *flagBoard, err)
	}
	return board
}

// display wraps player to print the board before it plays, and a spinner while an AI thinks.
func display(ui *cli.UI, playerNum PlayerNum, player players.Player, lastMove *Movement) players.Player {
	_, isHuman := player.(*cli.Human)
	return searchers.StrategyFunc[Board, Movement](func(board Board) (Movement, bool) {
		if isHuman || !*flagQuiet {
			ui.Print(board, *lastMove)
		}
		if isHuman {
			return player.ComputeNextMove(board)
		}
		fmt.Printf("%s (%v) thinking ", ui.PlayerString(playerNum), player)
		move, found := spinning.While(globalCtx, os.Stdout, func() (Movement, bool) {
			return player.ComputeNextMove(board)
		})
		fmt.Println()
		return move, found
	})
}

// runSearchProcess is the -anytime mode: failing to connect to the register aborts the process, since there
// is no one to report the error to.
func runSearchProcess() {
	driver, err := players.NewAnytimeDriver(*flagSearch)
	if err != nil {
		klog.Exitf("Invalid -search=%q: %+v", *flagSearch, err)
	}
	if klog.V(1).Enabled() {
		driver.WithProgress(func(depth int, move Movement, _ bool, elapsed time.Duration) {
			klog.Infof("Search process: depth %d, move %s, %s", depth, move, elapsed)
		})
	}
	if err = supervisor.RunSearchProcess(context.Background(), os.Stdin, driver); err != nil {
		klog.Fatalf("Search process failed: %+v", err)
	}
}
