package histogram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	h := New("run length", 10)

	require.NoError(t, h.Add(3))
	require.NoError(t, h.Add(3))
	require.NoError(t, h.AddN(7, 4))

	assert.Equal(t, 2, h.Count(3))
	assert.Equal(t, 4, h.Count(7))
	assert.Equal(t, 0, h.Count(5))
	assert.Equal(t, 0, h.Count(100))
	assert.Equal(t, 0, h.Count(-1))
	assert.Equal(t, 7, h.Max())
	assert.Equal(t, 6, h.Total())
	assert.Equal(t, []int{0, 0, 0, 2, 0, 0, 0, 4}, h.Counts())
}

func TestCapacity(t *testing.T) {
	h := New("run length", 10)

	require.NoError(t, h.Add(9))

	tests := []struct {
		name  string
		value int
	}{
		{"at limit", 10},
		{"beyond limit", 1000},
		{"negative", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Add(tt.value)
			require.Error(t, err)

			var capErr *CapacityExceededError
			require.True(t, errors.As(err, &capErr))
			assert.Equal(t, "run length", capErr.Name)
			assert.Equal(t, tt.value, capErr.Value)
			assert.Equal(t, 10, capErr.Limit)
		})
	}

	require.Error(t, h.AddUpTo(10))
	assert.Equal(t, 1, h.Total())
}

func TestAddUpTo(t *testing.T) {
	h := New("best run", 100)

	require.NoError(t, h.AddUpTo(3))
	require.NoError(t, h.AddUpTo(1))
	require.NoError(t, h.AddUpTo(0))

	assert.Equal(t, 3, h.Count(0))
	assert.Equal(t, 2, h.Count(1))
	assert.Equal(t, 1, h.Count(2))
	assert.Equal(t, 1, h.Count(3))
	assert.Equal(t, 0, h.Count(4))
}

func TestEmptyAndReset(t *testing.T) {
	h := New("empty", 5)
	assert.Equal(t, -1, h.Max())
	assert.Empty(t, h.Counts())

	require.NoError(t, h.Add(4))
	h.Reset()

	assert.Equal(t, -1, h.Max())
	assert.Equal(t, 0, h.Total())
	assert.Equal(t, 0, h.Count(4))

	require.NoError(t, h.Add(2))
	assert.Equal(t, 1, h.Count(2))
}

func BenchmarkAddUpTo(b *testing.B) {
	h := New("best run", 1000)
	for i := 0; i < b.N; i++ {
		_ = h.AddUpTo(i % 1000)
	}
}
