package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionWraps(t *testing.T) {
	var s Selection
	s.Reset(3)

	s.Move(-1)
	assert.Equal(t, 2, s.Index())
	s.Move(1)
	assert.Equal(t, 0, s.Index())
	s.Move(5)
	assert.Equal(t, 2, s.Index())
	s.Move(-5)
	assert.Equal(t, 0, s.Index())
}

func TestSelectionMoveIsSymmetric(t *testing.T) {
	for size := 1; size <= 7; size++ {
		for start := 0; start < size; start++ {
			for _, delta := range []int{1, AutocompleteSkip} {
				var s Selection
				s.Reset(size)
				s.Set(start)

				s.Move(delta)
				s.Move(-delta)
				assert.Equal(t, start, s.Index(), "size=%d start=%d delta=%d", size, start, delta)
			}
		}
	}
}

func TestSelectionEmpty(t *testing.T) {
	var s Selection
	s.Reset(0)
	s.Move(1)
	assert.Equal(t, -1, s.Index())
	assert.False(t, s.Set(0))
}
