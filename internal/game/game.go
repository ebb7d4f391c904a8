package game

import "fmt"

// #region move

// Move is one of the three playable symbols.
type Move int

const (
	Rock Move = iota
	Paper
	Scissors

	// NumMoves is the size of the move alphabet.
	NumMoves = 3
)

// Moves lists all moves in canonical order.
var Moves = [NumMoves]Move{Rock, Paper, Scissors}

var moveNames = [NumMoves]string{"rock", "paper", "scissors"}

// String returns the lowercase move name.
func (m Move) String() string {
	if m < 0 || m >= NumMoves {
		return fmt.Sprintf("move(%d)", int(m))
	}
	return moveNames[m]
}

// Valid reports whether m is one of the three playable symbols.
func (m Move) Valid() bool {
	return m >= 0 && m < NumMoves
}

// ParseMove converts a move name (or its first letter) to a Move.
func ParseMove(s string) (Move, error) {
	switch s {
	case "rock", "r":
		return Rock, nil
	case "paper", "p":
		return Paper, nil
	case "scissors", "s":
		return Scissors, nil
	}
	return 0, fmt.Errorf("parse move %q: unknown symbol", s)
}

// #endregion move

// #region relations

// beats[m] is the move that m defeats.
var beats = [NumMoves]Move{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// Beats reports whether a defeats b.
func Beats(a, b Move) bool {
	return beats[a] == b
}

// Counter returns the move that defeats m.
func Counter(m Move) Move {
	switch m {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	default:
		return Rock
	}
}

// Countered returns the move that m defeats, inverting Counter.
// Given the move the AI actually played, this recovers the player
// move the AI was targeting.
func Countered(m Move) Move {
	return beats[m]
}

// #endregion relations

// #region outcome

// Outcome is a round result from the player's perspective:
// Win means the player's move beat the AI's.
type Outcome int

const (
	Tie Outcome = iota
	Win
	Lose

	// NumOutcomes is the size of the outcome alphabet.
	NumOutcomes = 3
)

var outcomeNames = [NumOutcomes]string{"tie", "win", "lose"}

// String returns the lowercase outcome name.
func (o Outcome) String() string {
	if o < 0 || o >= NumOutcomes {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Judge scores a round from the player's perspective.
func Judge(player, ai Move) Outcome {
	switch {
	case player == ai:
		return Tie
	case Beats(player, ai):
		return Win
	default:
		return Lose
	}
}

// #endregion outcome
