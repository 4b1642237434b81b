package entity

// Side - one of the two factions of a game.
type Side string

const (
	SideRed   Side = "red"
	SideBlack Side = "black"
)

// Opponent - returns the opposing side.
func (that Side) Opponent() Side {
	if that == SideRed {
		return SideBlack
	}

	return SideRed
}

// Role - what a piece does on the board, independent of its side.
type Role int

const (
	RoleUnknown Role = iota
	RoleKing
	RoleAdvisor
	RoleElephant
	RoleRook
	RoleHorse
	RoleCannon
	RoleSoldier
)

// Piece - a single board piece, identified by its traditional character.
// The side is derived from the character, there is no separate side field.
type Piece string

const (
	RedKing     Piece = "帥"
	RedAdvisor  Piece = "仕"
	RedElephant Piece = "相"
	RedRook     Piece = "車"
	RedHorse    Piece = "馬"
	RedCannon   Piece = "炮"
	RedSoldier  Piece = "卒"

	BlackKing     Piece = "将"
	BlackAdvisor  Piece = "士"
	BlackElephant Piece = "象"
	BlackRook     Piece = "车"
	BlackHorse    Piece = "马"
	BlackCannon   Piece = "砲"
	BlackSoldier  Piece = "兵"
)

var pieceSides = map[Piece]Side{
	RedKing: SideRed, RedAdvisor: SideRed, RedElephant: SideRed,
	RedRook: SideRed, RedHorse: SideRed, RedCannon: SideRed, RedSoldier: SideRed,

	BlackKing: SideBlack, BlackAdvisor: SideBlack, BlackElephant: SideBlack,
	BlackRook: SideBlack, BlackHorse: SideBlack, BlackCannon: SideBlack, BlackSoldier: SideBlack,
}

var pieceRoles = map[Piece]Role{
	RedKing: RoleKing, BlackKing: RoleKing,
	RedAdvisor: RoleAdvisor, BlackAdvisor: RoleAdvisor,
	RedElephant: RoleElephant, BlackElephant: RoleElephant,
	RedRook: RoleRook, BlackRook: RoleRook,
	RedHorse: RoleHorse, BlackHorse: RoleHorse,
	RedCannon: RoleCannon, BlackCannon: RoleCannon,
	RedSoldier: RoleSoldier, BlackSoldier: RoleSoldier,
}

var pieceValues = map[Role]int{
	RoleKing:     10000,
	RoleAdvisor:  200,
	RoleElephant: 200,
	RoleRook:     900,
	RoleHorse:    400,
	RoleCannon:   450,
	RoleSoldier:  100,
}

// Side - returns the side owning the piece.
func (that Piece) Side() Side {
	return pieceSides[that]
}

// Role - returns the movement role of the piece.
func (that Piece) Role() Role {
	return pieceRoles[that]
}

// Value - returns the material value of the piece.
func (that Piece) Value() int {
	return pieceValues[that.Role()]
}

// SameSide - reports whether both pieces belong to the same faction.
func (that Piece) SameSide(other Piece) bool {
	return that.Side() == other.Side()
}

// IsValid - reports whether the character is one of the 14 known pieces.
func (that Piece) IsValid() bool {
	_, ok := pieceSides[that]
	return ok
}
