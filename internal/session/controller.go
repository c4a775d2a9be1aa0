// Package session implements the controller that owns the single inventory
// of an interactive session. It translates menu commands into inventory
// operations and returns structured outcomes; it never reads input or
// prints. Every operation is logged and, when configured, recorded in the
// journal and the metrics recorder.
package session

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/satchel/internal/bounded"
	"github.com/mesh-intelligence/satchel/internal/journal"
	"github.com/mesh-intelligence/satchel/internal/linked"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Journal receives one entry per operation.
type Journal interface {
	Record(e journal.Entry) error
	Close() error
}

// Recorder receives operation counters for metrics export.
type Recorder interface {
	Observe(operation, backend, algorithm, outcome string, comparisons, swaps int)
	SetItems(backend string, n int)
	WriteTextfile(path string) error
}

// Outcome is the result of one controller operation. Err is nil when OK is
// true; when OK is false Err wraps one of the pkg/types sentinels.
type Outcome struct {
	Op          string
	OK          bool
	Message     string
	Item        types.Item
	Items       []types.Item
	Algorithm   types.Algorithm
	Comparisons int
	Swaps       int
	Err         error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithJournal records every operation in j. The controller closes j.
func WithJournal(j Journal) Option {
	return func(c *Controller) { c.journal = j }
}

// WithRecorder counts every operation in r.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// Controller owns one inventory for the lifetime of a session.
type Controller struct {
	cfg      types.Config
	inv      types.Inventory
	sortable types.SortableInventory // nil for the linked backend
	logger   *zap.Logger
	journal  Journal
	recorder Recorder
	closed   bool
}

// New validates cfg and creates the inventory it names.
func New(cfg types.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	c := &Controller{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	switch cfg.Backend {
	case types.KindBounded:
		inv, err := bounded.New(cfg.Capacity)
		if err != nil {
			return nil, err
		}
		c.inv = inv
		c.sortable = inv
	case types.KindLinked:
		c.inv = linked.New()
	}

	c.logger = c.logger.With(zap.String("backend", cfg.Backend))
	c.logger.Info("Inventory initialized", zap.Int("capacity", c.Capacity()))
	return c, nil
}

// Backend returns the inventory kind chosen for the session.
func (c *Controller) Backend() string { return c.inv.Kind() }

// Len returns the current number of items.
func (c *Controller) Len() int { return c.inv.Len() }

// Capacity returns the bounded capacity, or 0 for the unbounded backend.
func (c *Controller) Capacity() int {
	if b, ok := c.inv.(*bounded.Inventory); ok {
		return b.Cap()
	}
	return 0
}

// Sortable reports whether sorting and binary search are available.
func (c *Controller) Sortable() bool { return c.sortable != nil }

// SortedByID reports whether binary search may run.
func (c *Controller) SortedByID() bool {
	return c.sortable != nil && c.sortable.IsSortedByID()
}

// Insert validates item and adds it to the inventory.
func (c *Controller) Insert(item types.Item) Outcome {
	o := Outcome{Op: journal.OpInsert, Item: item}
	if err := item.Validate(); err != nil {
		o.Err = err
		o.Message = fmt.Sprintf("Error: %v.", err)
		return c.finish(o)
	}

	if err := c.inv.Insert(item); err != nil {
		o.Err = err
		switch {
		case errors.Is(err, types.ErrDuplicate):
			o.Message = fmt.Sprintf("Error: ID %d already exists in the inventory.", item.ItemID)
		case errors.Is(err, types.ErrFull):
			o.Message = fmt.Sprintf("Error: inventory is full (%d/%d).", c.inv.Len(), c.Capacity())
		default:
			o.Message = fmt.Sprintf("Error: %v.", err)
		}
		return c.finish(o)
	}

	o.OK = true
	o.Message = fmt.Sprintf("Item '%s' (ID: %d) added.", item.Name, item.ItemID)
	return c.finish(o)
}

// Seed inserts items in order and returns one outcome per item.
func (c *Controller) Seed(items []types.Item) []Outcome {
	outcomes := make([]Outcome, 0, len(items))
	for _, it := range items {
		outcomes = append(outcomes, c.Insert(it))
	}
	return outcomes
}

// Remove deletes the item with the given ID.
func (c *Controller) Remove(id int) Outcome {
	o := Outcome{Op: journal.OpRemove}
	removed, err := c.inv.Remove(id)
	if err != nil {
		o.Err = err
		o.Message = fmt.Sprintf("Error: item with ID %d not found.", id)
		return c.finish(o)
	}
	o.OK = true
	o.Item = removed
	o.Message = fmt.Sprintf("Item '%s' (ID: %d) removed.", removed.Name, removed.ItemID)
	return c.finish(o)
}

// List returns a snapshot of the items in inventory order. An empty
// inventory is a successful outcome with no items.
func (c *Controller) List() Outcome {
	o := Outcome{Op: journal.OpList, OK: true, Items: slices.Collect(c.inv.Items())}
	if len(o.Items) == 0 {
		o.Message = "Inventory is empty."
	} else if c.Capacity() > 0 {
		o.Message = fmt.Sprintf("Inventory (%s) [%d/%d]", c.Backend(), len(o.Items), c.Capacity())
	} else {
		o.Message = fmt.Sprintf("Inventory (%s) [%d]", c.Backend(), len(o.Items))
	}
	return c.finish(o)
}

// LinearSearch scans the inventory for id.
func (c *Controller) LinearSearch(id int) Outcome {
	return c.searchOutcome(journal.OpLinearSearch, "Linear search", id, c.inv.LinearSearch(id))
}

// BinarySearch looks id up by binary search. It refuses to run on the
// linked backend and on a bounded inventory that is not sorted by ID.
func (c *Controller) BinarySearch(id int) Outcome {
	o := Outcome{Op: journal.OpBinarySearch}
	if c.sortable == nil {
		o.Err = fmt.Errorf("binary search: %w", types.ErrUnsupported)
		o.Message = "Binary search is not available for the linked inventory."
		return c.finish(o)
	}
	if !c.sortable.IsSortedByID() {
		o.Err = fmt.Errorf("binary search: %w", types.ErrNotSortedByID)
		o.Message = "Binary search requires the inventory to be sorted by ID. Sort by ID first."
		return c.finish(o)
	}
	return c.searchOutcome(journal.OpBinarySearch, "Binary search", id, c.sortable.BinarySearch(id))
}

func (c *Controller) searchOutcome(op, label string, id int, res types.SearchResult) Outcome {
	o := Outcome{Op: op, OK: res.Found, Item: res.Item, Comparisons: res.Comparisons}
	if res.Found {
		o.Message = fmt.Sprintf("%s: item found. %d comparisons.", label, res.Comparisons)
	} else {
		o.Err = fmt.Errorf("item %d: %w", id, types.ErrNotFound)
		o.Message = fmt.Sprintf("%s: item with ID %d not found. %d comparisons.", label, id, res.Comparisons)
	}
	return c.finish(o)
}

// SortByRarity sorts the bounded inventory by rarity with alg.
func (c *Controller) SortByRarity(alg types.Algorithm) Outcome {
	o := Outcome{Op: journal.OpSortByRarity, Algorithm: alg}
	if c.sortable == nil {
		o.Err = fmt.Errorf("sort by rarity: %w", types.ErrUnsupported)
		o.Message = "Sorting is not available for the linked inventory."
		return c.finish(o)
	}
	rep, err := c.sortable.SortByRarity(alg)
	if err != nil {
		o.Err = err
		o.Message = fmt.Sprintf("Error: %v.", err)
		return c.finish(o)
	}
	o.OK = true
	o.Comparisons, o.Swaps = rep.Comparisons, rep.Swaps
	o.Message = fmt.Sprintf("Sorted with %s sort. Comparisons: %d, swaps: %d.", alg, rep.Comparisons, rep.Swaps)
	return c.finish(o)
}

// SortByIdentifier sorts the bounded inventory by ID, enabling binary search.
func (c *Controller) SortByIdentifier() Outcome {
	o := Outcome{Op: journal.OpSortByIdentifier, Algorithm: types.AlgorithmIdentifier}
	if c.sortable == nil {
		o.Err = fmt.Errorf("sort by identifier: %w", types.ErrUnsupported)
		o.Message = "Sorting is not available for the linked inventory."
		return c.finish(o)
	}
	rep := c.sortable.SortByIdentifier()
	o.OK = true
	o.Comparisons, o.Swaps = rep.Comparisons, rep.Swaps
	o.Message = fmt.Sprintf("Sorted by ID (insertion sort). Binary search is ready. Comparisons: %d, moves: %d.",
		rep.Comparisons, rep.Swaps)
	return c.finish(o)
}

// Close tears the session down: it releases the linked chain, writes the
// metrics textfile and closes the journal. Close is idempotent.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if l, ok := c.inv.(*linked.Inventory); ok {
		released := l.Clear()
		c.logger.Info("Linked inventory released", zap.Int("nodes", released))
	}
	if c.recorder != nil && c.cfg.MetricsFile != "" {
		if err := c.recorder.WriteTextfile(c.cfg.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}
	if c.journal != nil {
		if err := c.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close journal: %w", err))
		}
	}
	return errors.Join(errs...)
}

// finish logs and records o, then returns it.
func (c *Controller) finish(o Outcome) Outcome {
	outcome := outcomeLabel(o)
	fields := []zap.Field{
		zap.String("op", o.Op),
		zap.String("outcome", outcome),
		zap.Int("size", c.inv.Len()),
	}
	if o.Algorithm != "" {
		fields = append(fields, zap.String("algorithm", string(o.Algorithm)))
	}
	if o.Comparisons > 0 || o.Swaps > 0 {
		fields = append(fields, zap.Int("comparisons", o.Comparisons), zap.Int("swaps", o.Swaps))
	}
	if o.Err != nil {
		fields = append(fields, zap.Error(o.Err))
	}
	c.logger.Debug("Inventory operation", fields...)

	if c.recorder != nil {
		c.recorder.Observe(o.Op, c.Backend(), string(o.Algorithm), outcome, o.Comparisons, o.Swaps)
		c.recorder.SetItems(c.Backend(), c.inv.Len())
	}
	if c.journal != nil {
		err := c.journal.Record(journal.Entry{
			Operation:   o.Op,
			Backend:     c.Backend(),
			Algorithm:   string(o.Algorithm),
			Size:        c.inv.Len(),
			Comparisons: o.Comparisons,
			Swaps:       o.Swaps,
			Outcome:     outcome,
		})
		if err != nil {
			c.logger.Warn("Failed to record operation", zap.Error(err))
		}
	}
	return o
}

// outcomeLabel maps an outcome to the journal's outcome vocabulary.
func outcomeLabel(o Outcome) string {
	switch {
	case o.OK:
		return journal.OutcomeOK
	case errors.Is(o.Err, types.ErrDuplicate):
		return journal.OutcomeDuplicate
	case errors.Is(o.Err, types.ErrFull):
		return journal.OutcomeFull
	case errors.Is(o.Err, types.ErrNotFound) && (o.Op == journal.OpLinearSearch || o.Op == journal.OpBinarySearch):
		return journal.OutcomeMiss
	case errors.Is(o.Err, types.ErrNotFound):
		return journal.OutcomeNotFound
	default:
		return journal.OutcomeRejected
	}
}
