package engine

import (
	"time"

	"github.com/danielpatrickdp/rps-oracle/internal/blend"
	"github.com/danielpatrickdp/rps-oracle/internal/model"
	"github.com/danielpatrickdp/rps-oracle/internal/policy"
	"github.com/danielpatrickdp/rps-oracle/internal/trace"
)

// #region config

// Config bundles the tunables for one engine instance.
type Config struct {
	// RealtimeEta is the session mixer's learning rate. Faster than
	// the persisted history mixer so the session adapts visibly.
	RealtimeEta float64
	// TopK limits the per-round expert annotations in mixer traces.
	TopK int
	// Debounce is the model-save coalescing window.
	Debounce time.Duration

	Policy policy.Config
	Blend  blend.Policy
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() Config {
	return Config{
		RealtimeEta: 0.5,
		TopK:        3,
		Debounce:    model.DefaultDebounce,
		Policy:      policy.DefaultConfig(),
		Blend:       blend.DefaultPolicy(),
	}
}

// #endregion config

// #region engine

// Engine is the explicit context object owned by the composition
// root: it holds the stores and the write buffer, is created at
// session start, and is released with Close. Nothing in this package
// relies on ambient module state.
type Engine struct {
	models *model.Store
	saver  *model.Saver
	rounds *trace.Store
	config Config
}

// New wires an engine over a model repository and an optional durable
// round-log store (nil keeps rounds in memory only).
func New(repo model.Repository, rounds *trace.Store, config Config) *Engine {
	models := model.NewStore(repo)
	return &Engine{
		models: models,
		saver:  model.NewSaver(models, config.Debounce),
		rounds: rounds,
		config: config,
	}
}

// Close force-flushes any buffered model write. Best-effort on
// shutdown signals; idempotent.
func (e *Engine) Close() error {
	return e.saver.Close()
}

// Flush persists the buffered model immediately (explicit save
// request or session-suspend signal).
func (e *Engine) Flush() error {
	return e.saver.Flush()
}

// #endregion engine
