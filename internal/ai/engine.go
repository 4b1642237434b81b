// Package ai implements the computer opponent: a single-ply scored search
// over every legal move of the side to play.
package ai

import (
	"math/rand"
	"sort"

	"github.com/rocketscienceinc/xiangqi-backend/internal/entity"
	"github.com/rocketscienceinc/xiangqi-backend/internal/rules"
)

const (
	captureWeight      = 2
	riverCrossBonus    = 50
	centerColumnBonus  = 10
	kingGuardBonus     = 30
	advancedPawnBonus  = 50
	topCandidatesCount = 3
)

type candidate struct {
	from  entity.Position
	to    entity.Position
	piece entity.Piece
	score int
}

// Engine - stateless between calls; safe to share across rooms.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// ChooseMove - picks a move for the given side, or nil when the position is
// terminal (opposing king captured) or no legal move exists. Candidates are
// scored deterministically, then one of the top three is chosen at random so
// the opponent does not play the same game every time.
func (that *Engine) ChooseMove(state *entity.GameState, side entity.Side) *entity.Move {
	if !state.Board.HasKing(side.Opponent()) || !state.Board.HasKing(side) {
		return nil
	}

	candidates := that.collectCandidates(state.Board, side)
	if len(candidates) == 0 {
		return nil
	}

	for i := range candidates {
		after := applyCandidate(state.Board, candidates[i])
		candidates[i].score += evaluatePosition(after, side)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	top := topCandidatesCount
	if len(candidates) < top {
		top = len(candidates)
	}
	chosen := candidates[rand.Intn(top)] //nolint:gosec // game variety, not crypto

	from, to := chosen.from, chosen.to

	return &entity.Move{
		Board: applyCandidate(state.Board, chosen),
		Turn:  side.Opponent(),
		From:  &from,
		To:    &to,
	}
}

// collectCandidates - every (from, to) pair legal for the side, with the
// immediate score of the move itself.
func (that *Engine) collectCandidates(board entity.Board, side entity.Side) []candidate {
	var candidates []candidate

	for key, piece := range board {
		if piece.Side() != side {
			continue
		}

		from, err := entity.ParsePosition(key)
		if err != nil {
			continue
		}

		for row := 0; row < entity.BoardRows; row++ {
			for col := 0; col < entity.BoardCols; col++ {
				to := entity.Position{Row: row, Col: col}
				if !rules.IsLegal(from, to, piece, board) {
					continue
				}

				candidates = append(candidates, candidate{
					from:  from,
					to:    to,
					piece: piece,
					score: scoreMove(board, piece, to, side),
				})
			}
		}
	}

	return candidates
}

// scoreMove - the heuristic value of the move in isolation: capture value,
// soldier river crossing, central columns and keeping defenders near the
// king's files.
func scoreMove(board entity.Board, piece entity.Piece, to entity.Position, side entity.Side) int {
	score := 0

	if target, ok := board.At(to); ok {
		score += target.Value() * captureWeight
	}

	if piece.Role() == entity.RoleSoldier && soldierCrossedRiver(to.Row, side) {
		score += riverCrossBonus
	}

	if to.Col >= 3 && to.Col <= 5 {
		score += centerColumnBonus

		if piece.Role() == entity.RoleAdvisor || piece.Role() == entity.RoleElephant {
			score += kingGuardBonus
		}
	}

	return score
}

// evaluatePosition - material balance of the board from the given side's
// point of view, with a bonus for soldiers past the river.
func evaluatePosition(board entity.Board, side entity.Side) int {
	score := 0

	for key, piece := range board {
		value := piece.Value()

		if piece.Role() == entity.RoleSoldier {
			pos, err := entity.ParsePosition(key)
			if err == nil && soldierCrossedRiver(pos.Row, piece.Side()) {
				value += advancedPawnBonus
			}
		}

		if piece.Side() == side {
			score += value
		} else {
			score -= value
		}
	}

	return score
}

func soldierCrossedRiver(row int, side entity.Side) bool {
	if side == entity.SideRed {
		return row >= 5
	}

	return row <= 4
}

// applyCandidate - the board after the candidate move, origin cleared and
// destination replaced.
func applyCandidate(board entity.Board, c candidate) entity.Board {
	after := board.Clone()
	delete(after, c.from.Key())
	after[c.to.Key()] = c.piece

	return after
}
