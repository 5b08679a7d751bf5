package calls

import (
	"log/slog"
	"sync"

	"github.com/jackzampolin/grounded/internal/gemini"
)

// DefaultStoreSize bounds the in-memory call log when no size is configured.
const DefaultStoreSize = 256

// Store is a bounded in-memory log of recorded calls. When full, the oldest
// record is evicted.
type Store struct {
	mu       sync.Mutex
	calls    []*Call
	capacity int
}

// NewStore creates a store holding at most capacity calls.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultStoreSize
	}
	return &Store{capacity: capacity}
}

// Add appends a call, evicting the oldest record at capacity.
func (s *Store) Add(c *Call) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.calls) == s.capacity {
		copy(s.calls, s.calls[1:])
		s.calls[len(s.calls)-1] = c
		return
	}
	s.calls = append(s.calls, c)
}

// Recent returns up to n calls, newest first.
func (s *Store) Recent(n int) []*Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > len(s.calls) {
		n = len(s.calls)
	}
	out := make([]*Call, n)
	for i := 0; i < n; i++ {
		out[i] = s.calls[len(s.calls)-1-i]
	}
	return out
}

// Len returns the number of stored calls.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Recorder captures interaction calls into a Store and logs them.
type Recorder struct {
	store  *Store
	logger *slog.Logger
}

// NewRecorder creates a recorder. A nil store disables retention (calls are
// still logged).
func NewRecorder(store *Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Record captures one API call.
func (r *Recorder) Record(result *gemini.InteractionResult, opts RecordOptions) {
	call := FromResult(result, opts)
	if call == nil {
		return
	}

	if call.Success {
		r.logger.Info("interaction call",
			"tool", call.Tool,
			"model", call.Model,
			"thinking_level", call.ThinkingLevel,
			"interaction_id", call.InteractionID,
			"latency_ms", call.LatencyMs,
			"input_tokens", call.InputTokens,
			"output_tokens", call.OutputTokens)
	} else {
		r.logger.Warn("interaction call failed",
			"tool", call.Tool,
			"latency_ms", call.LatencyMs,
			"error", call.Error)
	}

	if r.store != nil {
		r.store.Add(call)
	}
}

// Recent returns up to n recorded calls, newest first.
func (r *Recorder) Recent(n int) []*Call {
	if r.store == nil {
		return nil
	}
	return r.store.Recent(n)
}
