package policy

import (
	"testing"

	"github.com/danielpatrickdp/rps-oracle/internal/game"
)

func TestColdStartIsHeuristic(t *testing.T) {
	s := NewSelector(DefaultConfig())
	if s.Current() != StateHeuristic {
		t.Fatalf("fresh selector should be heuristic, got %s", s.Current())
	}
	d := s.Decide(0, 0.9)
	if d.State != StateHeuristic {
		t.Fatalf("zero rounds must stay heuristic, got %s: %s", d.State, d.Reason)
	}
}

func TestPromotionOnRounds(t *testing.T) {
	s := NewSelector(DefaultConfig())
	if d := s.Decide(9, 0.3); d.State != StateHeuristic {
		t.Fatalf("9 rounds at low confidence should stay heuristic, got %s", d.State)
	}
	if d := s.Decide(10, 0.3); d.State != StateMixer {
		t.Fatalf("10 rounds should promote, got %s", d.State)
	}
}

func TestEarlyPromotionOnConfidence(t *testing.T) {
	s := NewSelector(DefaultConfig())
	if d := s.Decide(4, 0.9); d.State != StateHeuristic {
		t.Fatalf("4 rounds should not promote even at high confidence, got %s", d.State)
	}
	if d := s.Decide(5, 0.56); d.State != StateMixer {
		t.Fatalf("5 confident rounds should promote early, got %s", d.State)
	}
}

func TestPromotionIsMonotonic(t *testing.T) {
	s := NewSelector(DefaultConfig())
	s.Decide(10, 0.3)
	if s.Current() != StateMixer {
		t.Fatal("expected promotion")
	}
	// Even implausible inputs never demote within a version.
	if d := s.Decide(0, 0); d.State != StateMixer {
		t.Fatalf("selector must never demote, got %s", d.State)
	}
}

func TestHeuristicColdStart(t *testing.T) {
	move, confidence, reason := Heuristic(game.History{})
	if move != game.Rock {
		t.Fatalf("cold heuristic should default to rock, got %s", move)
	}
	if confidence != 1.0/3 {
		t.Fatalf("cold confidence should be uniform, got %v", confidence)
	}
	if reason == "" {
		t.Fatal("reason must never be empty")
	}
}

func TestHeuristicCountersFrequentMove(t *testing.T) {
	var h game.History
	for i := 0; i < 4; i++ {
		h.Append(game.Scissors, game.Rock, game.Judge(game.Scissors, game.Rock))
	}
	h.Append(game.Paper, game.Rock, game.Judge(game.Paper, game.Rock))

	move, confidence, _ := Heuristic(h)
	if move != game.Scissors {
		t.Fatalf("expected scissors as the frequent move, got %s", move)
	}
	if confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", confidence)
	}
}

func TestHeuristicDeterministicOnTies(t *testing.T) {
	var h game.History
	h.Append(game.Paper, game.Rock, game.Win)
	h.Append(game.Scissors, game.Rock, game.Lose)

	move1, _, _ := Heuristic(h)
	move2, _, _ := Heuristic(h)
	if move1 != move2 {
		t.Fatal("heuristic must be deterministic")
	}
	if move1 != game.Paper {
		t.Fatalf("tie should resolve to the lowest move index seen, got %s", move1)
	}
}
