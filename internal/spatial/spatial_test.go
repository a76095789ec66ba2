package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPositionScale(t *testing.T) {
	b := FromPositionScale([3]float32{2, 4, 6}, [3]float32{2, 2, 4})

	assert.Equal(t, [3]float32{1, 3, 4}, b.Min)
	assert.Equal(t, [3]float32{3, 5, 8}, b.Max)
}

func TestBoundingBox_Intersects(t *testing.T) {
	base := FromPositionScale([3]float32{0, 0, 0}, [3]float32{2, 2, 2})

	tests := []struct {
		name string
		box  BoundingBox
		want bool
	}{
		{"overlapping", FromPositionScale([3]float32{1, 0, 0}, [3]float32{2, 2, 2}), true},
		{"touching faces", FromPositionScale([3]float32{2, 0, 0}, [3]float32{2, 2, 2}), true},
		{"disjoint on x", FromPositionScale([3]float32{5, 0, 0}, [3]float32{2, 2, 2}), false},
		{"disjoint on y only", FromPositionScale([3]float32{0, 5, 0}, [3]float32{2, 2, 2}), false},
		{"contained", FromPositionScale([3]float32{0, 0, 0}, [3]float32{1, 1, 1}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.box))
			assert.Equal(t, tt.want, tt.box.Intersects(base), "intersection is symmetric")
		})
	}
}

func TestBoundingBox_Union(t *testing.T) {
	a := BoundingBox{Min: [3]float32{-1, 0, 0}, Max: [3]float32{1, 2, 1}}
	b := BoundingBox{Min: [3]float32{0, -3, 0}, Max: [3]float32{4, 1, 0.5}}

	u := a.Union(b)
	assert.Equal(t, [3]float32{-1, -3, 0}, u.Min)
	assert.Equal(t, [3]float32{4, 2, 1}, u.Max)
}

func TestIndex_InsertQueryRemove(t *testing.T) {
	idx := NewIndex()
	idx.Insert("near", [3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	idx.Insert("far", [3]float32{100, 0, 0}, [3]float32{1, 1, 1})
	assert.Equal(t, 2, idx.Len())

	hits := idx.QueryBounds(FromPositionScale([3]float32{0, 0, 0}, [3]float32{4, 4, 4}))
	assert.Equal(t, []string{"near"}, hits)

	idx.Remove("near")
	hits = idx.QueryBounds(FromPositionScale([3]float32{0, 0, 0}, [3]float32{4, 4, 4}))
	assert.Empty(t, hits)

	// Unknown removals are fine.
	idx.Remove("never-existed")
}

func TestIndex_InsertOverwrites(t *testing.T) {
	idx := NewIndex()
	idx.Insert("obj", [3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	idx.Insert("obj", [3]float32{50, 0, 0}, [3]float32{1, 1, 1})
	assert.Equal(t, 1, idx.Len())

	assert.Empty(t, idx.QueryBounds(FromPositionScale([3]float32{0, 0, 0}, [3]float32{2, 2, 2})))
	assert.Equal(t, []string{"obj"}, idx.QueryBounds(FromPositionScale([3]float32{50, 0, 0}, [3]float32{2, 2, 2})))
}

func TestIndex_Clear(t *testing.T) {
	idx := NewIndex()
	idx.Insert("a", [3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	idx.Clear()
	assert.Equal(t, 0, idx.Len())
}
