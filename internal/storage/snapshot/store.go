// Package snapshot
package snapshot

import (
	"sync"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
)

// SampleStore holds the most recent sample per target. The monitor loop
// writes, the status reporter reads. Nothing is persisted; a restart
// starts empty.
type SampleStore struct {
	mu   sync.RWMutex
	data map[string]domain.Sample
}

func NewSampleStore() *SampleStore {
	return &SampleStore{
		data: make(map[string]domain.Sample),
	}
}

func (s *SampleStore) Set(target string, smp domain.Sample) {
	s.mu.Lock()
	s.data[target] = smp
	s.mu.Unlock()
}

func (s *SampleStore) Get(target string) (domain.Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	smp, ok := s.data[target]
	return smp, ok
}
