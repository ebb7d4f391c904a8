package game

// #region history

// History is the chronological record of completed rounds visible to
// the predictors. The three slices are positionally aligned; entry i
// describes round i.
type History struct {
	Player   []Move
	AI       []Move
	Outcomes []Outcome
}

// Len returns the number of completed rounds.
func (h History) Len() int {
	return len(h.Player)
}

// LastPlayer returns the player's previous move. ok is false before
// any round has completed.
func (h History) LastPlayer() (Move, bool) {
	if len(h.Player) == 0 {
		return 0, false
	}
	return h.Player[len(h.Player)-1], true
}

// LastAI returns the AI's previous move.
func (h History) LastAI() (Move, bool) {
	if len(h.AI) == 0 {
		return 0, false
	}
	return h.AI[len(h.AI)-1], true
}

// LastOutcome returns the previous round's outcome.
func (h History) LastOutcome() (Outcome, bool) {
	if len(h.Outcomes) == 0 {
		return 0, false
	}
	return h.Outcomes[len(h.Outcomes)-1], true
}

// Append records a completed round.
func (h *History) Append(player, ai Move, outcome Outcome) {
	h.Player = append(h.Player, player)
	h.AI = append(h.AI, ai)
	h.Outcomes = append(h.Outcomes, outcome)
}

// Tail returns the last n player moves (fewer when the history is shorter).
func (h History) Tail(n int) []Move {
	if n >= len(h.Player) {
		return h.Player
	}
	return h.Player[len(h.Player)-n:]
}

// #endregion history
