// Package bounded implements the fixed-capacity inventory backed by one
// contiguous buffer. It is the only backend that supports sorting and
// binary search, and it tracks whether its items are ordered by ID.
package bounded

import (
	"fmt"
	"iter"

	"github.com/mesh-intelligence/satchel/internal/search"
	"github.com/mesh-intelligence/satchel/internal/sorting"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Compile-time interface check: Inventory must implement SortableInventory.
var _ types.SortableInventory = (*Inventory)(nil)

// Inventory holds at most capacity items in insertion order unless a sort
// has rearranged them. sortedByID is true only right after SortByIdentifier.
type Inventory struct {
	items      []types.Item
	capacity   int
	sortedByID bool
}

// New allocates an empty inventory with room for capacity items.
// Returns ErrCapacityInvalid if capacity is not positive.
func New(capacity int) (*Inventory, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("bounded inventory capacity %d: %w", capacity, types.ErrCapacityInvalid)
	}
	return &Inventory{
		items:    make([]types.Item, 0, capacity),
		capacity: capacity,
	}, nil
}

// Kind returns types.KindBounded.
func (inv *Inventory) Kind() string { return types.KindBounded }

// Len returns the number of stored items.
func (inv *Inventory) Len() int { return len(inv.items) }

// Cap returns the fixed capacity.
func (inv *Inventory) Cap() int { return inv.capacity }

// IsSortedByID reports whether the items are known to be ordered by ID.
func (inv *Inventory) IsSortedByID() bool { return inv.sortedByID }

// Insert appends item at the end. A duplicate ID is reported before a full
// buffer. Any successful insert clears the sorted-by-ID flag.
func (inv *Inventory) Insert(item types.Item) error {
	if inv.indexOf(item.ItemID) >= 0 {
		return &types.InsertError{Item: item, Err: types.ErrDuplicate}
	}
	if len(inv.items) == inv.capacity {
		return &types.InsertError{Item: item, Err: types.ErrFull}
	}
	inv.items = append(inv.items, item)
	inv.sortedByID = false
	return nil
}

// Remove deletes the item with the given ID, shifting every later item one
// slot to the left. The sorted-by-ID flag is cleared even though removal
// keeps the remaining items in order.
func (inv *Inventory) Remove(id int) (types.Item, error) {
	idx := inv.indexOf(id)
	if idx < 0 {
		return types.Item{}, fmt.Errorf("item %d: %w", id, types.ErrNotFound)
	}
	removed := inv.items[idx]
	for i := idx; i < len(inv.items)-1; i++ {
		inv.items[i] = inv.items[i+1]
	}
	inv.items[len(inv.items)-1] = types.Item{}
	inv.items = inv.items[:len(inv.items)-1]
	inv.sortedByID = false
	return removed, nil
}

// Items yields the items in physical order.
func (inv *Inventory) Items() iter.Seq[types.Item] {
	return func(yield func(types.Item) bool) {
		for _, it := range inv.items {
			if !yield(it) {
				return
			}
		}
	}
}

// LinearSearch scans the buffer from index 0.
func (inv *Inventory) LinearSearch(id int) types.SearchResult {
	return search.Linear(inv.Items(), id)
}

// BinarySearch runs a binary search over the buffer. The caller must have
// checked IsSortedByID; on unsorted data the verdict is meaningless.
func (inv *Inventory) BinarySearch(id int) types.SearchResult {
	return search.Binary(inv.items, id)
}

// SortByRarity sorts in place by ascending rarity and clears the
// sorted-by-ID flag. An unknown algorithm leaves the inventory untouched.
func (inv *Inventory) SortByRarity(alg types.Algorithm) (types.SortReport, error) {
	rep, err := sorting.ByRarity(alg, inv.items)
	if err != nil {
		return types.SortReport{}, err
	}
	inv.sortedByID = false
	return rep, nil
}

// SortByIdentifier sorts in place by ascending ID and sets the sorted-by-ID
// flag, which is the precondition for BinarySearch.
func (inv *Inventory) SortByIdentifier() types.SortReport {
	rep := sorting.InsertionByID(inv.items)
	inv.sortedByID = true
	return rep
}

// indexOf returns the position of id or -1.
func (inv *Inventory) indexOf(id int) int {
	for i := range inv.items {
		if inv.items[i].ItemID == id {
			return i
		}
	}
	return -1
}
