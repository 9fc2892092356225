package cv

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskOffsetsRadiusFive(t *testing.T) {
	offsets := DiskOffsets(5)

	assert.Contains(t, offsets, image.Pt(3, 4), "distance² = 25 is on the boundary")
	assert.Contains(t, offsets, image.Pt(-5, 0))
	assert.NotContains(t, offsets, image.Pt(5, 5), "distance² = 50 is outside the disk")
	assert.NotContains(t, offsets, image.Pt(4, 4), "distance² = 32 is outside the disk")

	for _, p := range offsets {
		assert.LessOrEqual(t, p.X*p.X+p.Y*p.Y, 25, "offset %v", p)
	}

	// 81 lattice points lie within a circle of radius 5
	assert.Len(t, offsets, 81)
}

func TestDiskOffsetsOrder(t *testing.T) {
	offsets := DiskOffsets(2)
	require.NotEmpty(t, offsets)

	assert.Equal(t, image.Pt(-2, 0), offsets[0], "dx outer starts at -radius")
	assert.Equal(t, image.Pt(-1, -1), offsets[1])

	for i := 1; i < len(offsets); i++ {
		prev, cur := offsets[i-1], offsets[i]
		ordered := prev.X < cur.X || (prev.X == cur.X && prev.Y < cur.Y)
		assert.True(t, ordered, "%v before %v", prev, cur)
	}
}

func TestDiskOffsetsEdgeRadii(t *testing.T) {
	assert.Equal(t, []image.Point{{0, 0}}, DiskOffsets(0))
	assert.Empty(t, DiskOffsets(-1))
	assert.Len(t, DiskOffsets(1), 5)
}

func TestDiskCache(t *testing.T) {
	var cache DiskCache

	first := cache.Offsets(3)
	again := cache.Offsets(3)
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &again[0], "same radius reuses the slice")

	other := cache.Offsets(4)
	assert.Equal(t, DiskOffsets(4), other)
}
