package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewBoard()

	for y := range Height {
		for x := range Width {
			c, ok := b.Get(x, y)
			require.True(t, ok, "(%d,%d) should be on the board", x, y)
			assert.Equal(t, Empty(), c)
		}
	}
	assert.Equal(t, 0, b.FilledCount())
}

func TestBoardGetOutOfBounds(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x at width", Width, 0},
		{"y at height", 0, Height},
		{"far away", 100, -100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := b.Get(tc.x, tc.y)
			assert.False(t, ok)
			assert.False(t, b.IsFilled(tc.x, tc.y))
		})
	}
}

func TestBoardSetGet(t *testing.T) {
	b := NewBoard()
	red := RGB{R: 1, G: 0.2, B: 0.2}

	b.Set(0, 0, FilledCell(red))
	b.Set(Width-1, Height-1, FilledCell(red))

	c, ok := b.Get(0, 0)
	require.True(t, ok)
	assert.Equal(t, FilledCell(red), c)

	c, ok = b.Get(Width-1, Height-1)
	require.True(t, ok)
	assert.True(t, c.Filled)

	b.Set(0, 0, Empty())
	assert.False(t, b.IsFilled(0, 0))
	assert.Equal(t, 1, b.FilledCount())
}

func TestBoardSetOutOfBoundsIsIgnored(t *testing.T) {
	b := NewBoard()
	b.Set(4, 4, FilledCell(RGB{R: 0.5, G: 0.5, B: 0.5}))
	before := b.Rows()

	b.Set(-1, 0, FilledCell(RGB{R: 1}))
	b.Set(0, -1, FilledCell(RGB{R: 1}))
	b.Set(Width, 5, FilledCell(RGB{R: 1}))
	b.Set(5, Height, FilledCell(RGB{R: 1}))

	assert.Equal(t, before, b.Rows())
	assert.Equal(t, 1, b.FilledCount())
}
