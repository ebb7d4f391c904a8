package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/danielpatrickdp/rps-oracle/internal/game"
	"github.com/danielpatrickdp/rps-oracle/internal/trace"
)

// #region meta

// MatchMeta carries the collaborator-owned fields of the export row.
type MatchMeta struct {
	Mode       string
	Difficulty string
	BestOf     int
}

// Telemetry is the per-round UI counters owned by the capture
// collaborator; zero values are written when absent.
type Telemetry struct {
	ClickCount       int
	InteractionCount int
}

// #endregion meta

// #region header

var header = []string{
	"matchId", "roundNumber", "mode", "difficulty", "bestOf",
	"readyAt", "completedAt", "responseTimeMs", "responseSpeedMs", "interRoundDelayMs",
	"outcome", "aiStreak", "youStreak", "clicks", "interactions",
	"policy", "playerMove", "aiMove",
	"pRock", "pPaper", "pScissors", "predicted", "confidence", "reason",
}

// #endregion header

// #region write

// Write emits the row-oriented round table. telemetry may be nil or
// shorter than the round list. The trailing trace columns carry
// enough to reconstruct analyzer input with Read.
func Write(w io.Writer, rounds []trace.RoundLog, meta MatchMeta, telemetry []Telemetry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	aiStreak, youStreak := 0, 0
	var prevCompleted time.Time
	for i, rec := range rounds {
		switch rec.Outcome {
		case game.Win:
			youStreak++
			aiStreak = 0
		case game.Lose:
			aiStreak++
			youStreak = 0
		default:
			aiStreak, youStreak = 0, 0
		}

		responseMs := rec.CompletedAt.Sub(rec.ReadyAt).Milliseconds()
		interRoundMs := int64(0)
		if i > 0 {
			interRoundMs = rec.ReadyAt.Sub(prevCompleted).Milliseconds()
		}
		prevCompleted = rec.CompletedAt

		var tel Telemetry
		if i < len(telemetry) {
			tel = telemetry[i]
		}

		row := []string{
			rec.MatchID,
			strconv.Itoa(rec.RoundNumber),
			meta.Mode,
			meta.Difficulty,
			strconv.Itoa(meta.BestOf),
			rec.ReadyAt.Format(time.RFC3339Nano),
			rec.CompletedAt.Format(time.RFC3339Nano),
			strconv.FormatInt(responseMs, 10),
			strconv.FormatInt(responseMs, 10),
			strconv.FormatInt(interRoundMs, 10),
			rec.Outcome.String(),
			strconv.Itoa(aiStreak),
			strconv.Itoa(youStreak),
			strconv.Itoa(tel.ClickCount),
			strconv.Itoa(tel.InteractionCount),
		}
		row = append(row, traceColumns(rec)...)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write round %d: %w", rec.RoundNumber, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func traceColumns(rec trace.RoundLog) []string {
	cols := []string{rec.Policy, rec.PlayerMove.String(), rec.AIMove.String()}
	switch {
	case rec.Mixer != nil:
		d := rec.Mixer.Distribution
		predicted, confidence := d.ArgMax()
		cols = append(cols,
			formatProb(d[game.Rock]), formatProb(d[game.Paper]), formatProb(d[game.Scissors]),
			predicted.String(), formatProb(confidence), "")
	case rec.Heuristic != nil:
		cols = append(cols, "", "", "",
			rec.Heuristic.Predicted.String(), formatProb(rec.Heuristic.Confidence), rec.Heuristic.Reason)
	default:
		cols = append(cols, "", "", "", "", "", "")
	}
	return cols
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'f', 6, 64)
}

// #endregion write

// #region read

// Read reconstructs round logs from an exported table so the analyzer
// can run over data that only survives in CSV form. Unparseable rows
// are skipped rather than failing the whole import.
func Read(r io.Reader) ([]trace.RoundLog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var records []trace.RoundLog
	for _, row := range rows[1:] {
		rec, ok := parseRow(row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (trace.RoundLog, bool) {
	var rec trace.RoundLog
	rec.MatchID = row[0]
	n, err := strconv.Atoi(row[1])
	if err != nil {
		return rec, false
	}
	rec.RoundNumber = n
	rec.ReadyAt, _ = time.Parse(time.RFC3339Nano, row[5])
	rec.CompletedAt, _ = time.Parse(time.RFC3339Nano, row[6])

	player, err := game.ParseMove(row[16])
	if err != nil {
		return rec, false
	}
	ai, err := game.ParseMove(row[17])
	if err != nil {
		return rec, false
	}
	rec.PlayerMove = player
	rec.AIMove = ai
	rec.Outcome = game.Judge(player, ai)
	rec.Policy = row[15]

	switch rec.Policy {
	case "mixer":
		pRock, e1 := strconv.ParseFloat(row[18], 64)
		pPaper, e2 := strconv.ParseFloat(row[19], 64)
		pScissors, e3 := strconv.ParseFloat(row[20], 64)
		if e1 != nil || e2 != nil || e3 != nil {
			break
		}
		d := game.Distribution{pRock, pPaper, pScissors}.Normalize()
		rec.Mixer = &trace.MixerTrace{Distribution: d, Counter: ai}
	case "heuristic":
		predicted, err := game.ParseMove(row[21])
		if err != nil {
			break
		}
		confidence, err := strconv.ParseFloat(row[22], 64)
		if err != nil {
			break
		}
		rec.Heuristic = &trace.HeuristicTrace{
			Predicted:  predicted,
			Confidence: confidence,
			Reason:     row[23],
		}
	}
	return rec, true
}

// #endregion read
