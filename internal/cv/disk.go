package cv

import (
	"image"
	"sync"
)

// DiskOffsets returns every integer offset within radius of the origin
// (dx*dx+dy*dy <= radius*radius). Order is dx ascending, then dy ascending,
// so the first match found while walking the slice is deterministic.
func DiskOffsets(radius int) []image.Point {
	if radius < 0 {
		return nil
	}

	r2 := radius * radius
	offsets := make([]image.Point, 0, (2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			offsets = append(offsets, image.Point{X: dx, Y: dy})
		}
	}
	return offsets
}

// DiskCache memoizes DiskOffsets for the last radius asked for.
// The radius slider changes rarely compared to the scan rate.
type DiskCache struct {
	mu      sync.Mutex
	radius  int
	offsets []image.Point
	valid   bool
}

// Offsets returns the (shared, read-only) offsets for radius
func (c *DiskCache) Offsets(radius int) []image.Point {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.radius != radius {
		c.offsets = DiskOffsets(radius)
		c.radius = radius
		c.valid = true
	}
	return c.offsets
}
