package logging

import "sync"

// ProgressSampler suppresses repetitive progress logs, emitting only when the
// completed share of a batch crosses a percentage bucket boundary. It is safe
// for concurrent use by batch workers.
type ProgressSampler struct {
	mu         sync.Mutex
	bucketSize float64
	lastBucket int
}

// NewProgressSampler constructs a sampler that emits when progress crosses
// bucket boundaries (default 10%).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether progress at done of total should be logged.
// Completion always logs once. A nil sampler logs everything.
func (s *ProgressSampler) ShouldLog(done, total int) bool {
	if s == nil {
		return true
	}
	if total <= 0 {
		return false
	}
	done = min(max(done, 0), total)
	percent := float64(done) * 100 / float64(total)
	bucket := int(percent / s.bucketSize)
	if done == total {
		bucket = int(100/s.bucketSize) + 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bucket <= s.lastBucket {
		return false
	}
	s.lastBucket = bucket
	return true
}

// Reset clears the sampler state (e.g. when a new batch starts).
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.lastBucket = -1
	s.mu.Unlock()
}
