package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	. "github.com/blobwar/blobwarGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// MaxInputErrors is the number of invalid inputs accepted before the list of movements is printed again.
const MaxInputErrors = 3

// Human implements a player reading movements typed by the user, e.g. "c3" to duplicate to c3, or
// "a1c3" to jump from a1 to c3.
type Human struct {
	player PlayerNum
	reader *bufio.Reader
	out    io.Writer
}

// NewHuman creates a human player reading from in, and printing prompts to out.
func NewHuman(player PlayerNum, in io.Reader, out io.Writer) *Human {
	return &Human{player: player, reader: bufio.NewReader(in), out: out}
}

// String implements fmt.Stringer.
func (h *Human) String() string {
	return "Human"
}

// ComputeNextMove implements searchers.Strategy: it blocks until the user types a valid movement.
//
// If the input is closed, the first movement is played.
func (h *Human) ComputeNextMove(board Board) (move Movement, found bool) {
	if board.NumMovements() == 0 {
		return
	}
	for {
		h.printMovements(board)
		for numErrs := 0; numErrs < MaxInputErrors; numErrs++ {
			var err error
			move, err = h.readMovement(board)
			if err == nil {
				return move, true
			}
			if err == io.EOF {
				for move = range board.Movements() {
					break
				}
				klog.Warningf("Input closed for %s, playing the first movement %s", h.player, move)
				return move, true
			}
			_, _ = fmt.Fprintf(h.out, "    * %v, please try again.\n", err)
		}
	}
}

// readMovement reads one line and parses it as a valid movement.
func (h *Human) readMovement(board Board) (Movement, error) {
	_, _ = fmt.Fprintf(h.out, "    %s movement > ", board.NextPlayer)
	text, err := h.reader.ReadString('\n')
	if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
		return Movement{}, io.EOF
	}
	move, err := ParseMovement(text)
	if err != nil {
		return move, err
	}
	if !board.IsValid(move) {
		return move, errors.Errorf("movement %s is not valid", move)
	}
	return move, nil
}

func (h *Human) printMovements(board Board) {
	var duplicates, jumps []string
	for move := range board.Movements() {
		if move.IsJump() {
			jumps = append(jumps, move.String())
		} else {
			duplicates = append(duplicates, move.String())
		}
	}
	_, _ = fmt.Fprintln(h.out, "- Available movements:")
	if len(duplicates) > 0 {
		_, _ = fmt.Fprintf(h.out, "  - Duplicate to one of [%s], e.g. type %q\n",
			strings.Join(duplicates, ", "), duplicates[0])
	}
	if len(jumps) > 0 {
		_, _ = fmt.Fprintf(h.out, "  - Jump with one of [%s], e.g. type %q to jump from %s to %s\n",
			strings.Join(jumps, ", "), jumps[0], jumps[0][:2], jumps[0][2:])
	}
}
