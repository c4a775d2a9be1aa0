package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

const sampleCatalog = `items:
  - id: 5
    name: Iron Sword
    category: Weapon
    rarity: 2
  - id: 2
    name: Healing Potion
    category: Potion
    rarity: 1
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	items, err := Load(path)
	require.NoError(t, err)

	want := []types.Item{
		{ItemID: 5, Name: "Iron Sword", Category: "Weapon", Rarity: 2},
		{ItemID: 2, Name: "Healing Potion", Category: "Potion", Rarity: 1},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantLen int
	}{
		{name: "empty document", input: "", wantLen: 0},
		{name: "empty list", input: "items: []\n", wantLen: 0},
		{name: "invalid rarity", input: "items:\n  - {id: 1, name: Orb, rarity: 9}\n", wantErr: types.ErrInvalidRarity},
		{name: "invalid id", input: "items:\n  - {id: 0, name: Orb, rarity: 1}\n", wantErr: types.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Parse([]byte(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.wantLen)
		})
	}

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := Parse([]byte("items:\n  - {id: 1, name: Orb, rarity: 1, weight: 3}\n"))
		assert.Error(t, err)
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	items := Generate(5, 7)
	data, err := Marshal(items)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, items, back)
}

func TestGenerate(t *testing.T) {
	items := Generate(200, 42)
	require.Len(t, items, 200)

	seen := make(map[int]bool)
	for _, it := range items {
		require.NoError(t, it.Validate())
		assert.False(t, seen[it.ItemID], "duplicate id %d", it.ItemID)
		seen[it.ItemID] = true
	}
	assert.Equal(t, items, Generate(200, 42))
	assert.NotEqual(t, items, Generate(200, 43))
}
