package types

import "unicode/utf8"

// Field limits for Item values.
const (
	MaxNameLen     = 49
	MaxCategoryLen = 29
	MinRarity      = 1
	MaxRarity      = 5
)

// Item is a single entry of the RPG item catalog. Items are plain values;
// containers copy them in and out and sorts move them wholesale.
type Item struct {
	ItemID   int    `json:"id" yaml:"id"`             // Positive, unique within a container.
	Name     string `json:"name" yaml:"name"`         // Up to MaxNameLen characters.
	Category string `json:"category" yaml:"category"` // Free-form label such as "Weapon".
	Rarity   int    `json:"rarity" yaml:"rarity"`     // MinRarity..MaxRarity.
}

// Validate checks the field limits of the item. Containers never call it;
// it guards input coming from the user or a seed catalog.
func (it Item) Validate() error {
	if it.ItemID <= 0 {
		return ErrInvalidID
	}
	if it.Name == "" || utf8.RuneCountInString(it.Name) > MaxNameLen {
		return ErrInvalidName
	}
	if utf8.RuneCountInString(it.Category) > MaxCategoryLen {
		return ErrInvalidCategory
	}
	if it.Rarity < MinRarity || it.Rarity > MaxRarity {
		return ErrInvalidRarity
	}
	return nil
}
