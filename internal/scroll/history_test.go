package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryFIFO(t *testing.T) {
	h := NewHistory(3)
	assert.Equal(t, 0, h.Len())
	_, ok := h.Last()
	assert.False(t, ok)

	for i := 0; i < 5; i++ {
		h.Push(Sample{T: float64(i), Pos: float64(i * 10)})
	}

	require.Equal(t, 3, h.Len())
	assert.Equal(t, []Sample{{2, 20}, {3, 30}, {4, 40}}, h.Samples())

	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, Sample{4, 40}, last)
	assert.Equal(t, Sample{2, 20}, h.At(0))
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(4)
	h.Push(Sample{1, 1})
	h.Push(Sample{2, 2})

	h.Reset(Sample{9, 99})
	assert.Equal(t, []Sample{{9, 99}}, h.Samples())

	h.Reset()
	assert.Equal(t, 0, h.Len())
}

func TestHistoryResize(t *testing.T) {
	h := NewHistory(5)
	for i := 0; i < 5; i++ {
		h.Push(Sample{T: float64(i), Pos: float64(i)})
	}

	h.Resize(2)
	assert.Equal(t, 2, h.Cap())
	assert.Equal(t, []Sample{{3, 3}, {4, 4}}, h.Samples())

	h.Resize(4)
	h.Push(Sample{5, 5})
	assert.Equal(t, []Sample{{3, 3}, {4, 4}, {5, 5}}, h.Samples())
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, 1, h.Cap())
	h.Push(Sample{1, 1})
	h.Push(Sample{2, 2})
	assert.Equal(t, []Sample{{2, 2}}, h.Samples())
}

func TestHistoryAtOutOfRange(t *testing.T) {
	h := NewHistory(2)
	assert.Panics(t, func() { h.At(0) })
}
