package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/satchel/internal/journal"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// fakeJournal keeps entries in memory.
type fakeJournal struct {
	entries []journal.Entry
	closed  int
	failOn  string
}

func (f *fakeJournal) Record(e journal.Entry) error {
	if e.Operation == f.failOn {
		return errors.New("disk full")
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeJournal) Close() error {
	f.closed++
	return nil
}

// fakeRecorder keeps the last observation per operation.
type fakeRecorder struct {
	observed map[string]int
	items    int
	written  string
}

func (f *fakeRecorder) Observe(operation, backend, algorithm, outcome string, comparisons, swaps int) {
	if f.observed == nil {
		f.observed = make(map[string]int)
	}
	f.observed[operation+"/"+outcome]++
}

func (f *fakeRecorder) SetItems(backend string, n int) { f.items = n }

func (f *fakeRecorder) WriteTextfile(path string) error {
	f.written = path
	return nil
}

func item(id, rarity int) types.Item {
	return types.Item{ItemID: id, Name: "Item", Category: "Misc", Rarity: rarity}
}

func newController(t *testing.T, backend string, capacity int, opts ...Option) *Controller {
	t.Helper()
	c, err := New(types.Config{Backend: backend, Capacity: capacity}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(types.Config{Backend: "", Capacity: 10})
	assert.ErrorIs(t, err, types.ErrBackendEmpty)

	_, err = New(types.Config{Backend: types.KindBounded, Capacity: 0})
	assert.ErrorIs(t, err, types.ErrCapacityInvalid)

	c := newController(t, types.KindLinked, 0)
	assert.Equal(t, types.KindLinked, c.Backend())
	assert.Zero(t, c.Capacity())
	assert.False(t, c.Sortable())
}

func TestInsertOutcomes(t *testing.T) {
	c := newController(t, types.KindBounded, 2)

	o := c.Insert(types.Item{ItemID: 1, Name: "Iron Sword", Category: "Weapon", Rarity: 2})
	require.True(t, o.OK)
	assert.Contains(t, o.Message, "Iron Sword")

	o = c.Insert(item(1, 3))
	assert.False(t, o.OK)
	assert.ErrorIs(t, o.Err, types.ErrDuplicate)

	o = c.Insert(item(0, 3))
	assert.ErrorIs(t, o.Err, types.ErrInvalidID)

	o = c.Insert(item(2, 9))
	assert.ErrorIs(t, o.Err, types.ErrInvalidRarity)
	assert.Equal(t, 1, c.Len())

	require.True(t, c.Insert(item(2, 1)).OK)
	o = c.Insert(item(3, 1))
	assert.ErrorIs(t, o.Err, types.ErrFull)
	assert.Contains(t, o.Message, "2/2")
}

func TestRemoveAndList(t *testing.T) {
	c := newController(t, types.KindLinked, 0)

	o := c.List()
	assert.True(t, o.OK)
	assert.Empty(t, o.Items)
	assert.Equal(t, "Inventory is empty.", o.Message)

	for _, id := range []int{1, 2, 3} {
		require.True(t, c.Insert(item(id, 1)).OK)
	}

	o = c.List()
	var ids []int
	for _, it := range o.Items {
		ids = append(ids, it.ItemID)
	}
	assert.Equal(t, []int{3, 2, 1}, ids)

	o = c.Remove(2)
	require.True(t, o.OK)
	assert.Equal(t, 2, o.Item.ItemID)
	assert.Equal(t, 2, c.Len())

	o = c.Remove(2)
	assert.ErrorIs(t, o.Err, types.ErrNotFound)
}

func TestSearch(t *testing.T) {
	c := newController(t, types.KindBounded, 100)
	for _, id := range []int{5, 2, 9, 1} {
		require.True(t, c.Insert(item(id, 1)).OK)
	}

	o := c.LinearSearch(9)
	require.True(t, o.OK)
	assert.Equal(t, 3, o.Comparisons)

	o = c.LinearSearch(42)
	assert.False(t, o.OK)
	assert.ErrorIs(t, o.Err, types.ErrNotFound)
	assert.Equal(t, 4, o.Comparisons)

	t.Run("binary search requires sort by id", func(t *testing.T) {
		o := c.BinarySearch(9)
		assert.ErrorIs(t, o.Err, types.ErrNotSortedByID)
		assert.Zero(t, o.Comparisons)
	})

	require.True(t, c.SortByIdentifier().OK)
	require.True(t, c.SortedByID())

	o = c.BinarySearch(9)
	require.True(t, o.OK)
	assert.Equal(t, 9, o.Item.ItemID)
	assert.LessOrEqual(t, o.Comparisons, 6)

	t.Run("insert resets sorted flag", func(t *testing.T) {
		require.True(t, c.Insert(item(7, 1)).OK)
		assert.False(t, c.SortedByID())
		assert.ErrorIs(t, c.BinarySearch(7).Err, types.ErrNotSortedByID)
	})
}

func TestLinkedRejectsSortAndBinarySearch(t *testing.T) {
	c := newController(t, types.KindLinked, 0)
	require.True(t, c.Insert(item(1, 1)).OK)

	assert.ErrorIs(t, c.BinarySearch(1).Err, types.ErrUnsupported)
	assert.ErrorIs(t, c.SortByRarity(types.AlgorithmBubble).Err, types.ErrUnsupported)
	assert.ErrorIs(t, c.SortByIdentifier().Err, types.ErrUnsupported)
	assert.False(t, c.SortedByID())
}

func TestSortByRarity(t *testing.T) {
	c := newController(t, types.KindBounded, 10)
	for i, r := range []int{3, 1, 2} {
		require.True(t, c.Insert(item(i+1, r)).OK)
	}

	o := c.SortByRarity(types.AlgorithmBubble)
	require.True(t, o.OK)
	assert.Equal(t, 3, o.Comparisons)
	assert.Equal(t, 2, o.Swaps)

	var rs []int
	for _, it := range c.List().Items {
		rs = append(rs, it.Rarity)
	}
	assert.Equal(t, []int{1, 2, 3}, rs)

	o = c.SortByRarity("heap")
	assert.ErrorIs(t, o.Err, types.ErrUnknownAlgorithm)
}

func TestSeed(t *testing.T) {
	c := newController(t, types.KindBounded, 2)
	outcomes := c.Seed([]types.Item{item(1, 1), item(1, 2), item(2, 3), item(3, 4)})
	require.Len(t, outcomes, 4)
	assert.True(t, outcomes[0].OK)
	assert.ErrorIs(t, outcomes[1].Err, types.ErrDuplicate)
	assert.True(t, outcomes[2].OK)
	assert.ErrorIs(t, outcomes[3].Err, types.ErrFull)
}

func TestJournalAndRecorder(t *testing.T) {
	j := &fakeJournal{}
	r := &fakeRecorder{}
	c, err := New(types.Config{Backend: types.KindBounded, Capacity: 5, MetricsFile: "/tmp/satchel.prom"},
		WithJournal(j), WithRecorder(r))
	require.NoError(t, err)

	c.Insert(item(4, 2))
	c.Insert(item(4, 2))
	c.LinearSearch(8)
	c.BinarySearch(4)
	c.SortByIdentifier()
	c.SortByRarity(types.AlgorithmSelection)
	c.Remove(99)

	require.Len(t, j.entries, 7)
	outcomes := make([]string, len(j.entries))
	for i, e := range j.entries {
		outcomes[i] = e.Outcome
		assert.Equal(t, types.KindBounded, e.Backend)
	}
	assert.Equal(t, []string{
		journal.OutcomeOK,
		journal.OutcomeDuplicate,
		journal.OutcomeMiss,
		journal.OutcomeRejected,
		journal.OutcomeOK,
		journal.OutcomeOK,
		journal.OutcomeNotFound,
	}, outcomes)
	assert.Equal(t, "selection", j.entries[5].Algorithm)
	assert.Equal(t, 1, j.entries[2].Comparisons)

	assert.Equal(t, 1, r.observed["insert/duplicate"])
	assert.Equal(t, 1, r.items)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, j.closed)
	assert.Equal(t, "/tmp/satchel.prom", r.written)
}

func TestJournalFailureDoesNotFailOperation(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	j := &fakeJournal{failOn: journal.OpInsert}
	c := newController(t, types.KindLinked, 0, WithJournal(j), WithLogger(zap.New(core)))

	o := c.Insert(item(1, 1))
	assert.True(t, o.OK)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to record operation").Len())
}

func TestCloseReleasesLinkedChain(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c, err := New(types.Config{Backend: types.KindLinked}, WithLogger(zap.New(core)))
	require.NoError(t, err)
	c.Seed([]types.Item{item(1, 1), item(2, 1), item(3, 1)})

	require.NoError(t, c.Close())
	assert.Zero(t, c.Len())

	released := logs.FilterMessage("Linked inventory released").All()
	require.Len(t, released, 1)
	assert.Equal(t, int64(3), released[0].ContextMap()["nodes"])
}
