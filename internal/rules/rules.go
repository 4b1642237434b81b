// Package rules decides whether a proposed move is legal on a given board
// snapshot. All functions are pure: nothing here mutates a board, and every
// distance and screening check runs against the pre-move position.
package rules

import "github.com/rocketscienceinc/xiangqi-backend/internal/entity"

// IsLegal - reports whether moving piece from one cell to another is allowed.
// The caller is responsible for passing on-board coordinates and for the
// piece actually occupying the origin cell.
func IsLegal(from, to entity.Position, piece entity.Piece, board entity.Board) bool {
	if from == to {
		return false
	}

	if target, ok := board.At(to); ok && piece.SameSide(target) {
		return false
	}

	switch piece.Role() {
	case entity.RoleSoldier:
		return legalSoldierMove(from, to, piece)
	case entity.RoleRook:
		return legalRookMove(from, to, board)
	case entity.RoleHorse:
		return legalHorseMove(from, to, board)
	case entity.RoleCannon:
		return legalCannonMove(from, to, board)
	case entity.RoleKing:
		return legalKingMove(from, to, piece)
	case entity.RoleAdvisor:
		return legalAdvisorMove(from, to, piece)
	case entity.RoleElephant:
		return legalElephantMove(from, to, piece, board)
	default:
		return false
	}
}

// legalSoldierMove - one step forward, plus one lateral step after the
// soldier has crossed the river. Never backward, never diagonal.
func legalSoldierMove(from, to entity.Position, piece entity.Piece) bool {
	direction := 1
	crossedRiver := from.Row >= 5
	if piece.Side() == entity.SideBlack {
		direction = -1
		crossedRiver = from.Row <= 4
	}

	if to.Row == from.Row+direction && to.Col == from.Col {
		return true
	}

	if crossedRiver && to.Row == from.Row && abs(to.Col-from.Col) == 1 {
		return true
	}

	return false
}

// legalRookMove - any distance along a clear row or column.
func legalRookMove(from, to entity.Position, board entity.Board) bool {
	if from.Row != to.Row && from.Col != to.Col {
		return false
	}

	return countScreens(from, to, board) == 0
}

// legalHorseMove - an L-shaped step, blocked when the cell adjacent to the
// origin along the long axis is occupied.
func legalHorseMove(from, to entity.Position, board entity.Board) bool {
	rowDiff := abs(from.Row - to.Row)
	colDiff := abs(from.Col - to.Col)

	var leg entity.Position
	switch {
	case rowDiff == 2 && colDiff == 1:
		leg = entity.Position{Row: (from.Row + to.Row) / 2, Col: from.Col}
	case rowDiff == 1 && colDiff == 2:
		leg = entity.Position{Row: from.Row, Col: (from.Col + to.Col) / 2}
	default:
		return false
	}

	_, blocked := board.At(leg)

	return !blocked
}

// legalCannonMove - rook-like with zero screens when the destination is
// empty; a capture requires exactly one screen of either side in between.
func legalCannonMove(from, to entity.Position, board entity.Board) bool {
	if from.Row != to.Row && from.Col != to.Col {
		return false
	}

	screens := countScreens(from, to, board)

	if _, capturing := board.At(to); capturing {
		return screens == 1
	}

	return screens == 0
}

// legalKingMove - one orthogonal step inside the king's own palace.
func legalKingMove(from, to entity.Position, piece entity.Piece) bool {
	if abs(from.Row-to.Row)+abs(from.Col-to.Col) != 1 {
		return false
	}

	return inPalace(to, piece.Side())
}

// legalAdvisorMove - one diagonal step inside the advisor's own palace.
func legalAdvisorMove(from, to entity.Position, piece entity.Piece) bool {
	if abs(from.Row-to.Row) != 1 || abs(from.Col-to.Col) != 1 {
		return false
	}

	return inPalace(to, piece.Side())
}

// legalElephantMove - exactly two diagonal steps, blocked by an occupied
// midpoint. Elephants never cross the river.
func legalElephantMove(from, to entity.Position, piece entity.Piece, board entity.Board) bool {
	if abs(from.Row-to.Row) != 2 || abs(from.Col-to.Col) != 2 {
		return false
	}

	midpoint := entity.Position{Row: (from.Row + to.Row) / 2, Col: (from.Col + to.Col) / 2}
	if _, blocked := board.At(midpoint); blocked {
		return false
	}

	if piece.Side() == entity.SideRed {
		return to.Row <= 4
	}

	return to.Row >= 5
}

// countScreens - counts occupied cells strictly between two positions that
// share a row or a column.
func countScreens(from, to entity.Position, board entity.Board) int {
	count := 0

	if from.Row == to.Row {
		for col := min(from.Col, to.Col) + 1; col < max(from.Col, to.Col); col++ {
			if _, ok := board.At(entity.Position{Row: from.Row, Col: col}); ok {
				count++
			}
		}

		return count
	}

	for row := min(from.Row, to.Row) + 1; row < max(from.Row, to.Row); row++ {
		if _, ok := board.At(entity.Position{Row: row, Col: from.Col}); ok {
			count++
		}
	}

	return count
}

// inPalace - reports whether the position lies inside the given side's
// 3x3 palace. Red's palace spans rows 0..2, black's rows 7..9.
func inPalace(pos entity.Position, side entity.Side) bool {
	if pos.Col < 3 || pos.Col > 5 {
		return false
	}

	if side == entity.SideRed {
		return pos.Row >= 0 && pos.Row <= 2
	}

	return pos.Row >= 7 && pos.Row <= 9
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
