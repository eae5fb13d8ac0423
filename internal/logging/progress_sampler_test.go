package logging

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 10},
		{"default bucket size for negative", -1, 10},
		{"custom bucket size", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			assert.Equal(t, tt.wantSize, s.bucketSize)
			assert.EqualValues(t, -1, s.lastBucket)
		})
	}
}

func TestProgressSamplerNilSampler(t *testing.T) {
	var s *ProgressSampler
	assert.True(t, s.ShouldLog(1, 10), "ShouldLog on nil sampler should always return true")
	assert.NotPanics(t, s.Reset)
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(25)

	steps := []struct {
		done int
		want bool
	}{
		{0, true},   // bucket 0
		{1, false},  // 10%
		{2, false},  // 20%
		{3, true},   // 30% -> bucket 1
		{4, false},  // 40%
		{5, true},   // 50% -> bucket 2
		{9, true},   // 90% -> bucket 3
		{10, true},  // completion
		{10, false}, // completion logs once
	}
	for _, step := range steps {
		require.Equal(t, step.want, s.ShouldLog(step.done, 10), "ShouldLog(%d, 10)", step.done)
	}

	s.Reset()
	assert.True(t, s.ShouldLog(0, 10), "expected log after reset")
}

func TestProgressSamplerZeroTotal(t *testing.T) {
	s := NewProgressSampler(10)
	assert.False(t, s.ShouldLog(0, 0), "empty batch should not log progress")
}

func TestProgressSamplerConcurrentCompletionLogsOnce(t *testing.T) {
	s := NewProgressSampler(10)
	var logged atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.ShouldLog(5, 5) {
				logged.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, logged.Load(), "completion should log once")
}
