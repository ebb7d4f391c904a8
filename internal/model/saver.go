package model

import (
	"log"
	"sync"
	"time"
)

// #region saver

// DefaultDebounce coalesces rapid successive saves into one write.
const DefaultDebounce = 2 * time.Second

// Saver is the write buffer between the engine and the repository.
// Queue replaces the buffered model and arms a timer; Flush writes
// whatever is buffered and is a no-op when the buffer is clean. At
// most the unflushed buffer can be lost on abrupt termination.
type Saver struct {
	store *Store
	delay time.Duration

	mu      sync.Mutex
	pending *StoredModel
	timer   *time.Timer
	closed  bool
}

// NewSaver wraps a model store with a debounce window.
func NewSaver(store *Store, delay time.Duration) *Saver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Saver{store: store, delay: delay}
}

// Queue buffers the model for a deferred write. Later queues within
// the window replace the buffer; only the newest snapshot is written.
func (s *Saver) Queue(m StoredModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = &m
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		if err := s.Flush(); err != nil {
			log.Printf("[SAVER] deferred flush: %v", err)
		}
	})
}

// Flush writes the buffered model, if any. Idempotent: flushing a
// clean buffer does nothing and returns nil.
func (s *Saver) Flush() error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if pending == nil {
		return nil
	}
	return s.store.Save(*pending)
}

// Close stops the timer and force-flushes on a best-effort basis, for
// session-suspend and shutdown signals.
func (s *Saver) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.Flush()
}

// #endregion saver
