package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/rps-oracle/internal/blend"
	"github.com/danielpatrickdp/rps-oracle/internal/expert"
	"github.com/danielpatrickdp/rps-oracle/internal/game"
	"github.com/danielpatrickdp/rps-oracle/internal/hedge"
	"github.com/danielpatrickdp/rps-oracle/internal/model"
	"github.com/danielpatrickdp/rps-oracle/internal/policy"
	"github.com/danielpatrickdp/rps-oracle/internal/trace"
)

// #region session

// Session owns one match's learning state. Exactly one logical writer
// (the match loop) drives Predict/Observe between rounds; Predict
// never mutates, so it is safe to call speculatively.
type Session struct {
	engine *Engine

	ProfileID string
	MatchID   string

	history  game.History
	combiner *blend.Combiner
	selector *policy.Selector
	stored   model.StoredModel

	rounds  []trace.RoundLog
	roundNo int
}

// StartSession restores the profile's persisted model as the history
// mixer and pairs it with a fresh fast-adapting realtime mixer.
// Malformed persisted state silently restarts at version 1.
func (e *Engine) StartSession(profileID string) *Session {
	stored := e.models.Load(profileID)

	history, err := hedge.Restore(stored.State.Eta, stored.State.Weights, stored.State.Experts, stored.RoundsSeen)
	if err != nil {
		log.Printf("[ENGINE] profile %s: %v; reinitializing", profileID, err)
		stored = model.Fresh(profileID)
		history = hedge.NewMixer(stored.State.Eta, stored.State.Experts)
	}
	realtime := hedge.NewMixer(e.config.RealtimeEta, expert.DefaultPool())

	return &Session{
		engine:    e,
		ProfileID: profileID,
		MatchID:   uuid.New().String(),
		combiner:  blend.NewCombiner(realtime, history, e.config.Blend),
		selector:  policy.NewSelector(e.config.Policy),
		stored:    stored,
	}
}

// History returns the session's completed rounds as move history.
func (s *Session) History() game.History {
	return s.history
}

// Rounds returns the session's round log in chronological order.
func (s *Session) Rounds() []trace.RoundLog {
	return s.rounds
}

// Model returns the current persisted-model snapshot.
func (s *Session) Model() model.StoredModel {
	return s.stored
}

// #endregion session

// #region predict

// Prediction is one round's forecast before the player has moved.
// Exactly one of Mixer or Heuristic is set, matching Policy.
type Prediction struct {
	Policy    policy.State
	AIMove    game.Move
	Blend     blend.Result
	Mixer     *trace.MixerTrace
	Heuristic *trace.HeuristicTrace
	ReadyAt   time.Time
}

// Predict produces this round's forecast and the AI's counter-move.
// Pure with respect to learning state: calling it repeatedly without
// an intervening Observe returns the same answer.
func (s *Session) Predict() Prediction {
	res := s.combiner.Predict(s.history)
	_, blendedMax := res.Combined.ArgMax()
	decision := s.selector.Decide(s.stored.RoundsSeen, blendedMax)

	pred := Prediction{
		Policy:  decision.State,
		Blend:   res,
		ReadyAt: time.Now().UTC(),
	}

	if decision.State == policy.StateHeuristic {
		target, confidence, reason := policy.Heuristic(s.history)
		pred.AIMove = game.Counter(target)
		pred.Heuristic = &trace.HeuristicTrace{
			Predicted:  target,
			Confidence: confidence,
			Reason:     reason,
		}
		return pred
	}

	target, _ := res.Combined.ArgMax()
	pred.AIMove = game.Counter(target)
	pred.Mixer = &trace.MixerTrace{
		Distribution:   res.Combined,
		Counter:        pred.AIMove,
		TopExperts:     s.combiner.Realtime.TopExperts(s.history, s.engine.config.TopK),
		RealtimeWeight: res.RealtimeWeight,
		HistoryWeight:  res.HistoryWeight,
		RealtimeDist:   res.RealtimeDist,
		HistoryDist:    res.HistoryDist,
		Conflict:       res.Conflict,
	}
	return pred
}

// #endregion predict

// #region observe

// Observe completes a round: scores it, updates every expert and both
// mixers from the revealed move, appends the round log, and queues a
// debounced model save. Call exactly once per Predict.
func (s *Session) Observe(pred Prediction, playerMove game.Move) (trace.RoundLog, error) {
	if !playerMove.Valid() {
		return trace.RoundLog{}, fmt.Errorf("observe: invalid move %d", int(playerMove))
	}

	outcome := game.Judge(playerMove, pred.AIMove)

	// Learning updates see the pre-reveal context.
	s.combiner.Update(s.history, playerMove)
	s.history.Append(playerMove, pred.AIMove, outcome)
	s.roundNo++

	rec := trace.RoundLog{
		RoundID:     uuid.New().String(),
		MatchID:     s.MatchID,
		ProfileID:   s.ProfileID,
		RoundNumber: s.roundNo,
		ReadyAt:     pred.ReadyAt,
		CompletedAt: time.Now().UTC(),
		PlayerMove:  playerMove,
		AIMove:      pred.AIMove,
		Outcome:     outcome,
		Policy:      string(pred.Policy),
		Mixer:       pred.Mixer,
		Heuristic:   pred.Heuristic,
	}
	s.rounds = append(s.rounds, rec)
	if s.engine.rounds != nil {
		if err := s.engine.rounds.Append(rec); err != nil {
			log.Printf("[ENGINE] round log append: %v", err)
		}
	}

	// The history mixer is the durable one; snapshot it for the saver.
	// The saver flushes from its timer goroutine, so the queued state
	// must not alias the live mixer's weights or expert tables.
	s.stored.RoundsSeen++
	s.stored.State = model.MixerState{
		Eta:     s.combiner.History.Eta,
		Weights: append([]float64(nil), s.combiner.History.Weights...),
		Experts: expert.ClonePool(s.combiner.History.Experts),
	}
	s.engine.saver.Queue(s.stored)

	log.Printf("[ENGINE] round %d: policy=%s ai=%s player=%s outcome=%s",
		s.roundNo, pred.Policy, pred.AIMove, playerMove, outcome)
	return rec, nil
}

// #endregion observe
