package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeValid(t *testing.T) {
	assert.True(t, Range{Start: 0, End: 1}.Valid())
	assert.False(t, Range{Start: 3, End: 3}.Valid())
	assert.False(t, Range{Start: 5, End: 2}.Valid())
	assert.False(t, Range{Start: -1, End: 4}.Valid())
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: 2, End: 5}
	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5), "End is exclusive")
}

func TestRangeOverlaps(t *testing.T) {
	r := Range{Start: 2, End: 5}
	assert.True(t, r.Overlaps(Range{Start: 4, End: 8}))
	assert.True(t, r.Overlaps(Range{Start: 0, End: 3}))
	assert.True(t, r.Overlaps(Range{Start: 3, End: 4}))
	assert.False(t, r.Overlaps(Range{Start: 5, End: 7}), "touching ranges do not overlap")
	assert.False(t, r.Overlaps(Range{Start: 0, End: 2}))
}

func TestRangeShiftAndLen(t *testing.T) {
	r := Range{Start: 2, End: 5}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, Range{Start: 4, End: 7}, r.Shift(2))
	assert.Equal(t, Range{Start: 0, End: 3}, r.Shift(-2))
}

func TestPositionBefore(t *testing.T) {
	assert.True(t, Position{Line: 0, Col: 5}.Before(Position{Line: 1, Col: 0}))
	assert.True(t, Position{Line: 1, Col: 2}.Before(Position{Line: 1, Col: 3}))
	assert.False(t, Position{Line: 1, Col: 3}.Before(Position{Line: 1, Col: 3}))
	assert.False(t, Position{Line: 2, Col: 0}.Before(Position{Line: 1, Col: 9}))
}
