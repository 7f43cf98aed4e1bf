package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	var counter int64
	For(1000, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, DefaultConfig())
	assert.Equal(t, int64(1000), counter)
}

func TestFor_Sequential(t *testing.T) {
	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, Config{Enabled: false})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestForChunks_CoversRangeOnce(t *testing.T) {
	tests := []struct {
		name string
		n    int
		cfg  Config
	}{
		{"workers", 10, Workers(3)},
		{"more workers than items", 3, Workers(8)},
		{"min chunk", 200, Config{Enabled: true, NumWorkers: 4, MinChunkSize: 64}},
		{"small input", 10, DefaultConfig()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mu sync.Mutex
			seen := make([]int, tt.n)
			ForChunks(tt.n, func(start, end int) {
				assert.Less(t, start, end)
				mu.Lock()
				defer mu.Unlock()
				for i := start; i < end; i++ {
					seen[i]++
				}
			}, tt.cfg)
			for i, c := range seen {
				assert.Equal(t, 1, c, "index %d", i)
			}
		})
	}
}

func TestForChunks_Empty(t *testing.T) {
	called := false
	ForChunks(0, func(_, _ int) { called = true }, Workers(4))
	assert.False(t, called)
}

func TestWorkers(t *testing.T) {
	assert.False(t, Workers(1).Enabled)
	assert.True(t, Workers(4).Enabled)
	assert.Equal(t, 1, Workers(4).MinChunkSize)
}
