package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/rps-oracle/internal/game"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string           `json:"description"`
	ProfileID   string           `json:"profile_id"`
	Moves       []string         `json:"moves"`
	Expected    []ExpectedResult `json:"expected_results,omitempty"`
}

// ExpectedResult pins the policy and outcome expected for one round.
type ExpectedResult struct {
	RoundNumber int    `json:"round_number"`
	Policy      string `json:"policy"`
	Outcome     string `json:"outcome,omitempty"`
}

// #endregion fixture-types

// #region load

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	if len(f.Moves) == 0 {
		return Fixture{}, fmt.Errorf("fixture %s: no moves", path)
	}
	return f, nil
}

// ParseMoves converts the fixture's move names into Moves.
func (f Fixture) ParseMoves() ([]game.Move, error) {
	moves := make([]game.Move, len(f.Moves))
	for i, s := range f.Moves {
		m, err := game.ParseMove(s)
		if err != nil {
			return nil, fmt.Errorf("fixture move %d: %w", i, err)
		}
		moves[i] = m
	}
	return moves, nil
}

// #endregion load

// #region verify

// Mismatch reports one divergence between a run and the fixture's
// expected results.
type Mismatch struct {
	RoundNumber int
	Field       string
	Want        string
	Got         string
}

// Verify compares run results against the fixture's expectations.
func (f Fixture) Verify(results []Result) []Mismatch {
	byRound := make(map[int]Result, len(results))
	for _, r := range results {
		byRound[r.RoundNumber] = r
	}

	var mismatches []Mismatch
	for _, exp := range f.Expected {
		got, ok := byRound[exp.RoundNumber]
		if !ok {
			mismatches = append(mismatches, Mismatch{
				RoundNumber: exp.RoundNumber, Field: "round", Want: "present", Got: "missing",
			})
			continue
		}
		if exp.Policy != "" && exp.Policy != got.Policy {
			mismatches = append(mismatches, Mismatch{
				RoundNumber: exp.RoundNumber, Field: "policy", Want: exp.Policy, Got: got.Policy,
			})
		}
		if exp.Outcome != "" && exp.Outcome != got.Outcome.String() {
			mismatches = append(mismatches, Mismatch{
				RoundNumber: exp.RoundNumber, Field: "outcome", Want: exp.Outcome, Got: got.Outcome.String(),
			})
		}
	}
	return mismatches
}

// #endregion verify
