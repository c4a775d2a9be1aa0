package types

import (
	"errors"
	"fmt"
	"iter"
)

// Inventory kinds. A session picks exactly one for its lifetime.
const (
	KindBounded = "bounded"
	KindLinked  = "linked"
)

// Inventory is the storage contract shared by the bounded and linked
// containers. Implementations are not safe for concurrent use.
type Inventory interface {
	// Kind returns KindBounded or KindLinked.
	Kind() string

	// Insert adds the item. On failure it returns an *InsertError wrapping
	// ErrDuplicate or ErrFull and leaves the container unchanged.
	Insert(item Item) error

	// Remove deletes the item with the given ID and returns it.
	// Returns ErrNotFound if no item has that ID.
	Remove(id int) (Item, error)

	// Items yields the items in the container's current order.
	Items() iter.Seq[Item]

	// Len returns the number of stored items.
	Len() int

	// LinearSearch scans the container in order for the given ID.
	LinearSearch(id int) SearchResult
}

// SortableInventory is an Inventory backed by contiguous storage, which
// makes in-place sorting and binary search possible.
type SortableInventory interface {
	Inventory

	// BinarySearch looks up id by midpoint halving. The result is only
	// meaningful when IsSortedByID reports true; callers check first.
	BinarySearch(id int) SearchResult

	// SortByRarity orders the items by ascending rarity using alg and
	// clears the sorted-by-identifier flag.
	// Returns ErrUnknownAlgorithm for algorithms other than bubble,
	// selection and insertion.
	SortByRarity(alg Algorithm) (SortReport, error)

	// SortByIdentifier orders the items by ascending ID and sets the
	// sorted-by-identifier flag.
	SortByIdentifier() SortReport

	// IsSortedByID reports whether BinarySearch may be used.
	IsSortedByID() bool
}

// Inventory operation errors.
var (
	ErrDuplicate        = errors.New("item ID already exists")
	ErrFull             = errors.New("inventory is full")
	ErrNotFound         = errors.New("item not found")
	ErrCapacityInvalid  = errors.New("capacity must be positive")
	ErrUnknownAlgorithm = errors.New("unknown sort algorithm")
	ErrNotSortedByID    = errors.New("inventory is not sorted by ID")
	ErrUnsupported      = errors.New("operation not supported by this inventory")
)

// Item validation errors.
var (
	ErrInvalidID       = errors.New("item ID must be a positive integer")
	ErrInvalidName     = errors.New("item name must be 1 to 49 characters")
	ErrInvalidCategory = errors.New("item category must be at most 29 characters")
	ErrInvalidRarity   = errors.New("item rarity must be between 1 and 5")
)

// InsertError reports a rejected insert together with the item that was
// refused, so callers can name it when reporting.
type InsertError struct {
	Item Item
	Err  error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert item %d (%s): %v", e.Item.ItemID, e.Item.Name, e.Err)
}

func (e *InsertError) Unwrap() error { return e.Err }
