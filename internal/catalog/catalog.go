// Package catalog loads seed item catalogs from YAML and generates
// deterministic item sets for benchmarks.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// File is the on-disk shape of a seed catalog.
type File struct {
	Items []types.Item `yaml:"items"`
}

// Load reads a seed catalog from path and validates every item.
func Load(path string) ([]types.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes catalog YAML. Unknown fields are rejected so that typos in
// hand-written catalogs surface instead of yielding zero values.
func Parse(data []byte) ([]types.Item, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, it := range f.Items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %d (id %d): %w", i, it.ItemID, err)
		}
	}
	return f.Items, nil
}

// Marshal renders items in catalog form.
func Marshal(items []types.Item) ([]byte, error) {
	return yaml.Marshal(File{Items: items})
}

var (
	categories = []string{"Weapon", "Armor", "Potion", "Scroll", "Ring", "Material"}
	adjectives = []string{"Rusty", "Gleaming", "Cursed", "Ancient", "Blessed", "Shadow", "Frost", "Ember"}
	nouns      = map[string][]string{
		"Weapon":   {"Sword", "Axe", "Bow", "Dagger"},
		"Armor":    {"Helm", "Cuirass", "Greaves", "Shield"},
		"Potion":   {"Elixir", "Tonic", "Draught"},
		"Scroll":   {"Scroll", "Tome", "Codex"},
		"Ring":     {"Ring", "Band", "Signet"},
		"Material": {"Ore", "Hide", "Crystal"},
	}
)

// Generate returns n valid items with distinct IDs in 1..n, shuffled, so
// benchmarks see unsorted input. The same seed yields the same items.
func Generate(n int, seed uint64) []types.Item {
	r := rand.New(rand.NewPCG(seed, seed^0x5a7c4e1))
	items := make([]types.Item, n)
	for i := range items {
		cat := categories[r.IntN(len(categories))]
		names := nouns[cat]
		items[i] = types.Item{
			ItemID:   i + 1,
			Name:     adjectives[r.IntN(len(adjectives))] + " " + names[r.IntN(len(names))],
			Category: cat,
			Rarity:   r.IntN(types.MaxRarity) + types.MinRarity,
		}
	}
	r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return items
}
