package search

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func itemsWithIDs(ids ...int) []types.Item {
	items := make([]types.Item, len(ids))
	for i, id := range ids {
		items[i] = types.Item{ItemID: id, Name: "item", Rarity: 1}
	}
	return items
}

func TestLinear(t *testing.T) {
	items := itemsWithIDs(5, 2, 9, 1)

	tests := []struct {
		name      string
		id        int
		wantFound bool
		wantComps int
	}{
		{"first element costs one comparison", 5, true, 1},
		{"third element costs three", 9, true, 3},
		{"last element costs n", 1, true, 4},
		{"absent id costs n", 42, false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Linear(slices.Values(items), tt.id)
			assert.Equal(t, tt.wantFound, res.Found)
			assert.Equal(t, tt.wantComps, res.Comparisons)
			if tt.wantFound {
				assert.Equal(t, tt.id, res.Item.ItemID)
			}
		})
	}

	t.Run("empty sequence", func(t *testing.T) {
		res := Linear(slices.Values([]types.Item(nil)), 1)
		assert.False(t, res.Found)
		assert.Zero(t, res.Comparisons)
	})
}

func TestBinary(t *testing.T) {
	sorted := itemsWithIDs(1, 2, 5, 9)

	t.Run("midpoint hit costs one comparison", func(t *testing.T) {
		res := Binary(sorted, 2)
		require.True(t, res.Found)
		assert.Equal(t, 1, res.Comparisons)
	})

	t.Run("each missed probe costs two", func(t *testing.T) {
		// Probes 2, 5, then hits 9.
		res := Binary(sorted, 9)
		require.True(t, res.Found)
		assert.Equal(t, 9, res.Item.ItemID)
		assert.Equal(t, 5, res.Comparisons)
	})

	t.Run("absent id below range", func(t *testing.T) {
		// Probes 2 then 1, interval empties.
		res := Binary(sorted, 0)
		assert.False(t, res.Found)
		assert.Equal(t, 4, res.Comparisons)
	})

	t.Run("empty slice", func(t *testing.T) {
		res := Binary(nil, 3)
		assert.False(t, res.Found)
		assert.Zero(t, res.Comparisons)
	})
}

func TestBinaryAgreesWithLinear(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 8, 31, 100} {
		items := make([]types.Item, n)
		for i := range items {
			items[i] = types.Item{ItemID: (i + 1) * 3, Name: "x", Rarity: 1}
		}
		bound := 2*int(math.Ceil(math.Log2(float64(n)))) + 2

		for id := 0; id <= 3*n+2; id++ {
			lin := Linear(slices.Values(items), id)
			bin := Binary(items, id)
			require.Equalf(t, lin.Found, bin.Found, "n=%d id=%d", n, id)
			require.LessOrEqualf(t, bin.Comparisons, bound, "n=%d id=%d", n, id)
		}
	}
}
