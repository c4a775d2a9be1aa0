// Package linked implements the unbounded inventory as a singly linked
// chain. New items go to the head, so iteration runs newest first.
package linked

import (
	"fmt"
	"iter"

	"github.com/mesh-intelligence/satchel/internal/search"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Compile-time interface check: Inventory must implement Inventory.
var _ types.Inventory = (*Inventory)(nil)

// node owns its item and the rest of the chain.
type node struct {
	item types.Item
	next *node
}

// Inventory is an acyclic chain of nodes; each node is referenced only by
// its predecessor or by head.
type Inventory struct {
	head *node
	size int
}

// New returns an empty linked inventory.
func New() *Inventory {
	return &Inventory{}
}

// Kind returns types.KindLinked.
func (inv *Inventory) Kind() string { return types.KindLinked }

// Len returns the number of nodes in the chain.
func (inv *Inventory) Len() int { return inv.size }

// Insert scans the whole chain for a duplicate ID, then links a new head.
func (inv *Inventory) Insert(item types.Item) error {
	for n := inv.head; n != nil; n = n.next {
		if n.item.ItemID == item.ItemID {
			return &types.InsertError{Item: item, Err: types.ErrDuplicate}
		}
	}
	inv.head = &node{item: item, next: inv.head}
	inv.size++
	return nil
}

// Remove unlinks the node holding id and returns its item.
func (inv *Inventory) Remove(id int) (types.Item, error) {
	var prev *node
	cur := inv.head
	for cur != nil && cur.item.ItemID != id {
		prev = cur
		cur = cur.next
	}
	if cur == nil {
		return types.Item{}, fmt.Errorf("item %d: %w", id, types.ErrNotFound)
	}

	if prev == nil {
		inv.head = cur.next
	} else {
		prev.next = cur.next
	}
	cur.next = nil
	inv.size--
	return cur.item, nil
}

// Items yields the items from head to tail.
func (inv *Inventory) Items() iter.Seq[types.Item] {
	return func(yield func(types.Item) bool) {
		for n := inv.head; n != nil; n = n.next {
			if !yield(n.item) {
				return
			}
		}
	}
}

// LinearSearch walks the chain from the head.
func (inv *Inventory) LinearSearch(id int) types.SearchResult {
	return search.Linear(inv.Items(), id)
}

// Clear releases every node, breaking each link so no node keeps the tail
// reachable, and returns how many nodes were released.
func (inv *Inventory) Clear() int {
	released := 0
	for n := inv.head; n != nil; {
		next := n.next
		n.next = nil
		n = next
		released++
	}
	inv.head = nil
	inv.size = 0
	return released
}
