package entity

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	BoardRows = 10
	BoardCols = 9
)

// Position - a single board cell. Rows run 0..9, columns 0..8.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Key - the stable "row-col" string used as a board map key and on the wire.
func (that Position) Key() string {
	return strconv.Itoa(that.Row) + "-" + strconv.Itoa(that.Col)
}

// OnBoard - reports whether the position lies inside the 10x9 grid.
func (that Position) OnBoard() bool {
	return that.Row >= 0 && that.Row < BoardRows && that.Col >= 0 && that.Col < BoardCols
}

// ParsePosition - parses a "row-col" key back into a Position.
func ParsePosition(key string) (Position, error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("malformed position key: %q", key)
	}

	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return Position{}, fmt.Errorf("malformed position row: %q", key)
	}

	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return Position{}, fmt.Errorf("malformed position col: %q", key)
	}

	pos := Position{Row: row, Col: col}
	if !pos.OnBoard() {
		return Position{}, fmt.Errorf("position out of range: %q", key)
	}

	return pos, nil
}

// Board - maps position keys to pieces. Absent keys are empty cells.
type Board map[string]Piece

// NewBoard - builds the canonical initial layout. Red occupies the top half
// (rows 0..4) and advances toward higher rows, black mirrors it from below.
func NewBoard() Board {
	return Board{
		"0-0": RedRook, "0-1": RedHorse, "0-2": RedElephant, "0-3": RedAdvisor, "0-4": RedKing,
		"0-5": RedAdvisor, "0-6": RedElephant, "0-7": RedHorse, "0-8": RedRook,
		"2-1": RedCannon, "2-7": RedCannon,
		"3-0": RedSoldier, "3-2": RedSoldier, "3-4": RedSoldier, "3-6": RedSoldier, "3-8": RedSoldier,

		"9-0": BlackRook, "9-1": BlackHorse, "9-2": BlackElephant, "9-3": BlackAdvisor, "9-4": BlackKing,
		"9-5": BlackAdvisor, "9-6": BlackElephant, "9-7": BlackHorse, "9-8": BlackRook,
		"7-1": BlackCannon, "7-7": BlackCannon,
		"6-0": BlackSoldier, "6-2": BlackSoldier, "6-4": BlackSoldier, "6-6": BlackSoldier, "6-8": BlackSoldier,
	}
}

// At - returns the piece on the given position, if any.
func (that Board) At(pos Position) (Piece, bool) {
	piece, ok := that[pos.Key()]
	return piece, ok
}

// Clone - returns an independent copy of the board.
func (that Board) Clone() Board {
	clone := make(Board, len(that))
	for key, piece := range that {
		clone[key] = piece
	}

	return clone
}

// HasKing - reports whether the given side still has its king on the board.
func (that Board) HasKing(side Side) bool {
	king := RedKing
	if side == SideBlack {
		king = BlackKing
	}

	for _, piece := range that {
		if piece == king {
			return true
		}
	}

	return false
}
