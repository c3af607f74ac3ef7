package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// UUIDSource produces ids such as "ORD-5f0c...".
type UUIDSource struct{}

func (UUIDSource) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// SequenceSource produces predictable ids ("ORD-1", "ORD-2", ...), one
// counter per prefix. Used by replays and tests. The zero value is ready
// to use.
type SequenceSource struct {
	mu   sync.Mutex
	next map[string]int
}

func NewSequenceSource() *SequenceSource {
	return &SequenceSource{next: make(map[string]int)}
}

func (s *SequenceSource) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next == nil {
		s.next = make(map[string]int)
	}
	s.next[prefix]++
	return fmt.Sprintf("%s-%d", prefix, s.next[prefix])
}
