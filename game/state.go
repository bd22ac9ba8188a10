package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
)

// Barriers marks, per owner, the common cells holding two or more pieces of
// that owner. Opponent pieces can neither land on nor cross them.
type Barriers [NumPlayers][TotalPositions + 1]bool

// Has reports whether owner has a barrier on position.
func (b Barriers) Has(owner PlayerNumber, position Position) bool {
	if owner < 1 || owner > NumPlayers || !IsCommonPosition(position) {
		return false
	}
	return b[owner-1][position]
}

// Positions lists the barriers of owner in ring order.
func (b Barriers) Positions(owner PlayerNumber) []Position {
	var positions []Position
	for position := Position(1); position <= TotalPositions; position++ {
		if b.Has(owner, position) {
			positions = append(positions, position)
		}
	}
	return positions
}

func loadBarriers(players [NumPlayers]Player) Barriers {
	var barriers Barriers
	for _, player := range players {
		for _, piece := range player.Pieces {
			// Only common positions can hold a barrier
			if !IsCommonPosition(piece) {
				continue
			}
			if player.CountPiecesIn(piece) >= MaxPiecesOnCell {
				barriers[player.Number-1][piece] = true
			}
		}
	}
	return barriers
}

// Game is the table: both players plus the state derived from their pieces.
// It is a plain value; assigning it makes an independent copy.
type Game struct {
	Players [NumPlayers]Player

	barriers    Barriers
	lastTouched [NumPlayers]int // piece slot last moved by each player
}

// NewGame returns a table with every piece at home.
func NewGame() Game {
	g, _ := NewGameFromPlayers([NumPlayers]Player{NewPlayer(1), NewPlayer(2)})
	return g
}

// NewGameFromPlayers builds a table from piece positions. Players must be
// given in order, player 1 first, with every piece on the board.
func NewGameFromPlayers(players [NumPlayers]Player) (Game, error) {
	for i, player := range players {
		if player.Number != PlayerNumber(i+1) {
			return Game{}, fmt.Errorf("%w: %d given in slot %d", ErrInvalidPlayer, player.Number, i+1)
		}
		for _, piece := range player.Pieces {
			if ClassOf(piece) == InvalidClass {
				return Game{}, fmt.Errorf("%w: player %d has a piece at %d", ErrInvalidPosition, player.Number, piece)
			}
		}
	}
	return Game{
		Players:  players,
		barriers: loadBarriers(players),
	}, nil
}

// Barriers returns the barriers derived from the current pieces.
func (g Game) Barriers() Barriers {
	return g.barriers
}

func (g *Game) player(number PlayerNumber) (*Player, error) {
	if number < 1 || number > NumPlayers {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, number)
	}
	return &g.Players[number-1], nil
}

// Player returns a copy of a player's state.
func (g Game) Player(number PlayerNumber) (Player, error) {
	p, err := g.player(number)
	if err != nil {
		return Player{}, err
	}
	return *p, nil
}

// LastTouched returns where the piece last moved by player currently is.
func (g Game) LastTouched(number PlayerNumber) (Position, error) {
	p, err := g.player(number)
	if err != nil {
		return HOME, err
	}
	return p.Pieces[g.lastTouched[number-1]], nil
}

// MovePiece advances one of the player's pieces following the board rules.
func (g *Game) MovePiece(number PlayerNumber, piece Position, advance int) (Position, error) {
	p, err := g.player(number)
	if err != nil {
		return piece, err
	}
	slot := p.index(piece)
	dest, err := p.MovePiece(piece, advance, g.barriers)
	if err != nil {
		return piece, err
	}
	g.updateInnerState(number, slot)
	return dest, nil
}

// TakePiece relocates a piece without checking any rule. Clients use it to
// replay moves computed elsewhere.
func (g *Game) TakePiece(number PlayerNumber, piece Position, dest Position) error {
	p, err := g.player(number)
	if err != nil {
		return err
	}
	slot := p.index(piece)
	if slot < 0 {
		return fmt.Errorf("%w: player %d has no piece at %d", ErrPieceNotFound, number, piece)
	}
	p.Pieces[slot] = dest
	g.updateInnerState(number, slot)
	return nil
}

// PieceEaten sends a piece of player back home. It is not one of the
// player's own moves, so its last touched piece is kept.
func (g *Game) PieceEaten(number PlayerNumber, piece Position) error {
	p, err := g.player(number)
	if err != nil {
		return err
	}
	if err := p.pieceEaten(piece); err != nil {
		return err
	}
	g.barriers = loadBarriers(g.Players)
	return nil
}

// ApplyPlay replays the moves of a play in order. Moves back home are
// applied as pieces being eaten.
func (g *Game) ApplyPlay(play Play) error {
	for _, move := range play {
		var err error
		if move.Dest == HOME {
			err = g.PieceEaten(move.Player, move.Origin)
		} else {
			err = g.TakePiece(move.Player, move.Origin, move.Dest)
		}
		if err != nil {
			return fmt.Errorf("cannot apply %v: %w", move, err)
		}
	}
	return nil
}

func (g *Game) updateInnerState(number PlayerNumber, slot int) {
	g.barriers = loadBarriers(g.Players)
	g.lastTouched[number-1] = slot
}

// EatenPlayer returns the player whose piece is sent home when eater lands on
// dest. On a safe cell that only happens on the eater's own start position
// once three pieces share it: the enemy one has no room left.
func (g Game) EatenPlayer(eater PlayerNumber, dest Position) (PlayerNumber, bool) {
	if !IsEatingPosition(dest) {
		start, err := StartPosition(eater)
		if err != nil || dest != start {
			return 0, false
		}

		var eaten PlayerNumber
		piecesCounter := 0
		for _, player := range g.Players {
			count := player.CountPiecesIn(dest)
			piecesCounter += count
			if count > 0 && player.Number != eater {
				eaten = player.Number
			}
		}
		if piecesCounter == MaxPiecesOnCell+1 && eaten != 0 {
			return eaten, true
		}
		return 0, false
	}

	for _, player := range g.Players {
		// I cannot eat myself
		if player.Number == eater {
			continue
		}
		if player.HasPiece(dest) {
			return player.Number, true
		}
	}
	return 0, false
}

// StateAfterMovement returns the table after player advances the piece at
// origin, leaving the receiver untouched. Only rule violations come back as
// *ImpossibleMovementError.
func (g Game) StateAfterMovement(number PlayerNumber, origin Position, advance int) (Game, error) {
	next := g
	if _, err := next.MovePiece(number, origin, advance); err != nil {
		if errors.Is(err, ErrWrongMove) {
			return Game{}, &ImpossibleMovementError{Player: number, Piece: origin, Advance: advance, Err: err}
		}
		return Game{}, err
	}
	return next, nil
}

// Winner returns the player with every piece on the goal, or 0.
func (g Game) Winner() PlayerNumber {
	for _, player := range g.Players {
		if player.HasWon() {
			return player.Number
		}
	}
	return 0
}

func (g Game) Hash() StateHash {
	hasher := fnv.New64a()

	for _, player := range g.Players {
		binary.Write(hasher, binary.LittleEndian, int64(player.Number))
		for _, piece := range player.Pieces {
			binary.Write(hasher, binary.LittleEndian, int64(piece))
		}
	}

	// Hash last touched pieces
	for _, slot := range g.lastTouched {
		binary.Write(hasher, binary.LittleEndian, int64(slot))
	}

	return StateHash(hasher.Sum64())
}
