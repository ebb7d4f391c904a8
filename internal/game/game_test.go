package game

import (
	"math"
	"testing"
)

func TestBeatsRelation(t *testing.T) {
	cases := []struct {
		winner, loser Move
	}{
		{Rock, Scissors},
		{Paper, Rock},
		{Scissors, Paper},
	}
	for _, c := range cases {
		if !Beats(c.winner, c.loser) {
			t.Fatalf("%s should beat %s", c.winner, c.loser)
		}
		if Beats(c.loser, c.winner) {
			t.Fatalf("%s should not beat %s", c.loser, c.winner)
		}
		if Counter(c.loser) != c.winner {
			t.Fatalf("counter of %s should be %s", c.loser, c.winner)
		}
		if Countered(c.winner) != c.loser {
			t.Fatalf("%s counters %s", c.winner, c.loser)
		}
	}
}

func TestJudgePlayerPerspective(t *testing.T) {
	if got := Judge(Paper, Rock); got != Win {
		t.Fatalf("paper vs rock: expected win, got %s", got)
	}
	if got := Judge(Rock, Paper); got != Lose {
		t.Fatalf("rock vs paper: expected lose, got %s", got)
	}
	if got := Judge(Scissors, Scissors); got != Tie {
		t.Fatalf("mirror: expected tie, got %s", got)
	}
}

func TestParseMove(t *testing.T) {
	for _, c := range []struct {
		in   string
		want Move
	}{
		{"rock", Rock}, {"r", Rock},
		{"paper", Paper}, {"p", Paper},
		{"scissors", Scissors}, {"s", Scissors},
	} {
		got, err := ParseMove(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("parse %q: got %s", c.in, got)
		}
	}
	if _, err := ParseMove("lizard"); err == nil {
		t.Fatal("expected error for unknown move")
	}
}

func TestNormalizeSumsToOne(t *testing.T) {
	d := Distribution{3, 1, 1}.Normalize()
	var sum float64
	for _, p := range d {
		if p < 0 || p > 1 {
			t.Fatalf("probability out of range: %v", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("sum %v != 1", sum)
	}
}

func TestNormalizeDegenerateToUniform(t *testing.T) {
	for _, d := range []Distribution{
		{0, 0, 0},
		{math.NaN(), 0.5, 0.5},
		{math.Inf(1), 0, 0},
		{-1, 1, 1},
	} {
		got := d.Normalize()
		if got != Uniform() {
			t.Fatalf("degenerate %v should normalize to uniform, got %v", d, got)
		}
	}
}

func TestArgMaxDeterministicOnTies(t *testing.T) {
	move, p := Uniform().ArgMax()
	if move != Rock {
		t.Fatalf("uniform tie should resolve to rock, got %s", move)
	}
	if math.Abs(p-1.0/3) > 1e-12 {
		t.Fatalf("unexpected probability %v", p)
	}
}

func TestEntropyBounds(t *testing.T) {
	if h := (Distribution{1, 0, 0}).Entropy(); h != 0 {
		t.Fatalf("one-hot entropy should be 0, got %v", h)
	}
	if h := Uniform().Entropy(); math.Abs(h-math.Log(3)) > 1e-12 {
		t.Fatalf("uniform entropy should be ln 3, got %v", h)
	}
}

func TestHistoryAccessors(t *testing.T) {
	var h History
	if _, ok := h.LastPlayer(); ok {
		t.Fatal("empty history should have no last player move")
	}
	h.Append(Rock, Paper, Lose)
	h.Append(Scissors, Rock, Lose)

	if got, _ := h.LastPlayer(); got != Scissors {
		t.Fatalf("last player move: got %s", got)
	}
	if got, _ := h.LastAI(); got != Rock {
		t.Fatalf("last ai move: got %s", got)
	}
	if got, _ := h.LastOutcome(); got != Lose {
		t.Fatalf("last outcome: got %s", got)
	}
	if tail := h.Tail(1); len(tail) != 1 || tail[0] != Scissors {
		t.Fatalf("tail(1): got %v", tail)
	}
	if tail := h.Tail(10); len(tail) != 2 {
		t.Fatalf("tail beyond length should return all, got %v", tail)
	}
}
