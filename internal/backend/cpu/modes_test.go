package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMode("grid-wrap")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestModeIndex(t *testing.T) {
	// Input (a b c d) has n = 4; positions -4..-1 and 4..7 lie outside.
	tests := []struct {
		mode Mode
		want []int // images of positions -4 .. 7, -1 for zero padding
	}{
		{Reflect, []int{3, 2, 1, 0, 0, 1, 2, 3, 3, 2, 1, 0}},
		{Mirror, []int{2, 3, 2, 1, 0, 1, 2, 3, 2, 1, 0, 1}},
		{Nearest, []int{0, 0, 0, 0, 0, 1, 2, 3, 3, 3, 3, 3}},
		{Wrap, []int{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3}},
		{Constant, []int{-1, -1, -1, -1, 0, 1, 2, 3, -1, -1, -1, -1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := make([]int, 0, len(tt.want))
			for i := -4; i < 8; i++ {
				idx, ok := tt.mode.index(i, 4)
				if !ok {
					idx = -1
				}
				got = append(got, idx)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeIndex_SingleElement(t *testing.T) {
	for _, m := range []Mode{Reflect, Mirror, Nearest, Wrap} {
		for _, i := range []int{-3, -1, 1, 5} {
			idx, ok := m.index(i, 1)
			assert.True(t, ok, "%s", m)
			assert.Equal(t, 0, idx, "%s at %d", m, i)
		}
	}
}
