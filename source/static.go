package source

import (
	"context"
	"sync"

	"github.com/Moaila/tdma/types"
)

// Static implements a decision source with scripted replies.
//
// Replies are queued per station and consumed in FIFO order. When a
// station's queue is exhausted the source returns ErrNoReply, which the
// coordinator treats as "no proposal" and falls back to heuristic
// selection. Useful for testing and for replaying recorded negotiations.
type Static struct {
	mu      sync.Mutex
	replies map[string][]string
}

var _ types.DecisionSource = (*Static)(nil)

// NewStatic creates a new static decision source.
//
// Parameters:
//   - replies: Per-station reply queues, consumed front to back
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic(map[string][]string{
//	    "AP1": {`{"channels": [0, 1, 2]}`},
//	    "AP2": {`{"channels": [3, 4, 5]}`},
//	})
//	coord, err := tdma.NewCoordinator(&cfg, src)
//	if err != nil { /* handle */ }
func NewStatic(replies map[string][]string) *Static {
	queues := make(map[string][]string, len(replies))
	for station, queue := range replies {
		queues[station] = append([]string(nil), queue...)
	}

	return &Static{replies: queues}
}

// Decide pops and returns the next scripted reply for the station.
//
// Returns:
//   - string: The next queued reply
//   - error: ErrNoReply when the station's queue is empty
func (s *Static) Decide(ctx context.Context, req types.DecisionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.replies[req.Station]
	if len(queue) == 0 {
		return "", ErrNoReply
	}

	reply := queue[0]
	s.replies[req.Station] = queue[1:]

	return reply, nil
}

// Push appends replies to a station's queue.
//
// This allows tests to script additional rounds after the source has
// been created.
//
// Parameters:
//   - station: Station whose queue to extend
//   - replies: Replies appended in order
func (s *Static) Push(station string, replies ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replies[station] = append(s.replies[station], replies...)
}

// Remaining reports how many scripted replies a station has left.
func (s *Static) Remaining(station string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.replies[station])
}
