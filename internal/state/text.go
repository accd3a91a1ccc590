package state

import (
	"strings"

	"github.com/pkg/errors"
)

// Cell characters used by the text snapshot of the board.
const (
	EmptyChar = '.'
	HoleChar  = '#'
)

// PlayerChars are the characters used for each player's blobs.
var PlayerChars = [NumPlayers]byte{'R', 'B'}

// String returns a compact snapshot of the board: 8 rows (rank 8 first) of '.', '#', 'R' or 'B',
// followed by a line with the character of the next player. Parse reads it back.
func (b Board) String() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		for file := 0; file < BoardSize; file++ {
			sq := SquareAt(file, rank)
			switch player := b.PlayerAt(sq); {
			case player != PlayerInvalid:
				sb.WriteByte(PlayerChars[player])
			case b.IsHole(sq):
				sb.WriteByte(HoleChar)
			default:
				sb.WriteByte(EmptyChar)
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte(PlayerChars[b.NextPlayer])
	sb.WriteByte('\n')
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler with the same format as String.
func (b Board) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, see Parse.
func (b *Board) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Parse a board in the format generated by Board.String. Blank lines and surrounding spaces are ignored.
// If the next player line is missing, red plays next.
func Parse(text string) (Board, error) {
	var b Board
	b.MoveNumber = 1
	lines := strings.Fields(text)
	if len(lines) != BoardSize && len(lines) != BoardSize+1 {
		return b, errors.Errorf("board must have %d rows plus an optional next player, got %d lines",
			BoardSize, len(lines))
	}
	for row, line := range lines[:BoardSize] {
		if len(line) != BoardSize {
			return b, errors.Errorf("row %d (%q) must have %d cells", row+1, line, BoardSize)
		}
		rank := BoardSize - 1 - row
		for file := 0; file < BoardSize; file++ {
			sq := SquareAt(file, rank)
			switch c := line[file]; c {
			case EmptyChar:
			case HoleChar:
				b = b.SetHole(sq)
			case PlayerChars[PlayerFirst]:
				b = b.SetBlob(sq, PlayerFirst)
			case PlayerChars[PlayerSecond]:
				b = b.SetBlob(sq, PlayerSecond)
			default:
				return b, errors.Errorf("invalid cell %q at %s", c, sq)
			}
		}
	}
	if len(lines) > BoardSize {
		switch next := lines[BoardSize]; next {
		case string(PlayerChars[PlayerFirst]):
			b.NextPlayer = PlayerFirst
		case string(PlayerChars[PlayerSecond]):
			b.NextPlayer = PlayerSecond
		default:
			return b, errors.Errorf("invalid next player %q, expected %q or %q",
				next, PlayerChars[PlayerFirst], PlayerChars[PlayerSecond])
		}
	}
	return b, nil
}

// ParseSquare parses the algebraic notation of a square, e.g. "c3".
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, errors.Errorf("invalid square %q, expected a file a-h followed by a rank 1-8", s)
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'1')), nil
}

// ParseMovement parses "c3" (duplication to c3) or "a1c3" (from a1 to c3).
// A source adjacent to the target is normalized to a duplication, since the source doesn't matter then.
func ParseMovement(s string) (Movement, error) {
	s = strings.Join(strings.Fields(s), "")
	switch len(s) {
	case 2:
		to, err := ParseSquare(s)
		if err != nil {
			return Movement{}, err
		}
		return Movement{From: NoSquare, To: to}, nil
	case 4:
		from, err := ParseSquare(s[:2])
		if err != nil {
			return Movement{}, err
		}
		to, err := ParseSquare(s[2:])
		if err != nil {
			return Movement{}, err
		}
		if from.Distance(to) == 1 {
			from = NoSquare
		}
		return Movement{From: from, To: to}, nil
	}
	return Movement{}, errors.Errorf("invalid movement %q, expected a target (\"c3\") or source and target (\"a1c3\")", s)
}
