// Package cli implements a command-line UI for the game: board printing and the Human player.
package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	. "github.com/blobwar/blobwarGo/internal/state"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const CharsPerColumn = 3

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// terminalWidth returns the width of w if it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func printCentered(w io.Writer, block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((terminalWidth(w)-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(w)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// UI prints the board and the progress of a match.
type UI struct {
	out                io.Writer
	color, clearScreen bool
}

var (
	playerStyles = [NumPlayers]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9")).Bold(true),
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Bold(true),
	}
	holeStyle       = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	coordinateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// New creates a UI that prints to stdout.
func New(color bool, clearScreen bool) *UI {
	return NewWithWriter(os.Stdout, color, clearScreen)
}

// NewWithWriter creates a UI that prints to out.
func NewWithWriter(out io.Writer, color bool, clearScreen bool) *UI {
	return &UI{out: out, color: color, clearScreen: clearScreen}
}

func (ui *UI) render(style lipgloss.Style, s string) string {
	if !ui.color {
		return s
	}
	return style.Render(s)
}

// PlayerString returns the colored name of the player.
func (ui *UI) PlayerString(player PlayerNum) string {
	if player >= NumPlayers {
		return player.String()
	}
	return ui.render(playerStyles[player], fmt.Sprintf(" %s ", player))
}

// Print the board, the blob counts and whose turn it is. The target of lastMove, if valid, is highlighted.
func (ui *UI) Print(board Board, lastMove Movement) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	_, _ = fmt.Fprintf(ui.out, "\nMove #%d\n\n", board.MoveNumber)
	ui.PrintBoard(board, lastMove)
	_, _ = fmt.Fprintln(ui.out)
	printCentered(ui.out, fmt.Sprintf("%s %d  x  %d %s",
		ui.PlayerString(PlayerFirst), board.Count(PlayerFirst),
		board.Count(PlayerSecond), ui.PlayerString(PlayerSecond)))
	if !board.IsFinished() {
		printCentered(ui.out, fmt.Sprintf("Turn to play: %s", ui.PlayerString(board.NextPlayer)))
	}
	_, _ = fmt.Fprintln(ui.out)
}

// PrintBoard prints the grid, rank 8 on top, with coordinates around it.
func (ui *UI) PrintBoard(board Board, lastMove Movement) {
	var sb strings.Builder
	files := "  "
	for file := range BoardSize {
		files += centerString(string(rune('a'+file)), CharsPerColumn)
	}
	files = ui.render(coordinateStyle, files)
	sb.WriteString(files + "\n")
	for rank := BoardSize - 1; rank >= 0; rank-- {
		rankStr := ui.render(coordinateStyle, fmt.Sprintf("%d ", rank+1))
		sb.WriteString(rankStr)
		for file := range BoardSize {
			sq := SquareAt(file, rank)
			sb.WriteString(ui.cell(board, sq, lastMove.To.Valid() && sq == lastMove.To))
		}
		sb.WriteString(" " + rankStr + "\n")
	}
	sb.WriteString(files + "\n")
	printCentered(ui.out, sb.String())
}

func (ui *UI) cell(board Board, sq Square, highlight bool) string {
	player := board.PlayerAt(sq)
	switch {
	case player != PlayerInvalid:
		text := centerString(string(PlayerChars[player]), CharsPerColumn)
		if highlight && ui.color {
			return playerStyles[player].Underline(true).Render(text)
		}
		return ui.render(playerStyles[player], text)
	case board.IsHole(sq):
		return ui.render(holeStyle, centerString(string(HoleChar), CharsPerColumn))
	case highlight:
		return ui.render(highlightStyle, centerString(string(EmptyChar), CharsPerColumn))
	}
	return ui.render(emptyStyle, centerString(string(EmptyChar), CharsPerColumn))
}

func centerString(s string, fit int) string {
	if len(s) >= fit {
		return s
	}
	marginLeft := (fit - len(s)) / 2
	marginRight := fit - len(s) - marginLeft
	return strings.Repeat(" ", marginLeft) + s + strings.Repeat(" ", marginRight)
}

// PrintMove prints the movement played by player.
func (ui *UI) PrintMove(player PlayerNum, move Movement) {
	kind := "duplicates to"
	if move.IsJump() {
		kind = fmt.Sprintf("jumps from %s to", move.From)
	}
	_, _ = fmt.Fprintf(ui.out, "%s %s %s\n", ui.PlayerString(player), kind, move.To)
}

// PrintPass prints that player has no available movements.
func (ui *UI) PrintPass(player PlayerNum) {
	_, _ = fmt.Fprintf(ui.out, "\n%s has no available movements, skipping.\n\n", ui.PlayerString(player))
}

// PrintWinner prints the result of a finished match.
func (ui *UI) PrintWinner(b Board) {
	winner := b.Winner()
	_, _ = fmt.Fprintln(ui.out)
	score := fmt.Sprintf("%d x %d", b.Count(PlayerFirst), b.Count(PlayerSecond))
	if winner == PlayerInvalid {
		printCentered(ui.out, ui.render(
			lipgloss.NewStyle().
				Background(lipgloss.Color("13")).
				Foreground(lipgloss.Color("0")).
				Padding(1, 2),
			fmt.Sprintf("*** DRAW (%s) ***", score)))
	} else {
		printCentered(ui.out, ui.render(
			playerStyles[winner].Padding(1, 2),
			fmt.Sprintf("*** %s PLAYER WINS (%s)!! Congratulations! ***", strings.ToUpper(winner.String()), score)))
	}
	_, _ = fmt.Fprintln(ui.out)
}
