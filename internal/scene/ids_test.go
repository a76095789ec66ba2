package scene

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator_UniqueAndSortable(t *testing.T) {
	gen := UUIDv7Generator{}

	prev := ""
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())

		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true

		// UUIDv7 leads with a millisecond timestamp; ids minted in
		// sequence never sort backwards.
		assert.GreaterOrEqual(t, id, prev)
		prev = id
	}
}

func TestFixedIDs_ReturnsInOrder(t *testing.T) {
	gen := NewFixedIDs("one", "two")

	assert.Equal(t, "one", gen.Generate())
	assert.Equal(t, "two", gen.Generate())
}

func TestFixedIDs_PanicsWhenExhausted(t *testing.T) {
	gen := NewFixedIDs("only")
	gen.Generate()

	assert.Panics(t, func() { gen.Generate() })
}
