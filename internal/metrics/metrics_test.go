package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	r := NewRecorder()

	r.Observe("linear_search", "bounded", "", "ok", 4, 0)
	r.Observe("linear_search", "bounded", "", "miss", 10, 0)
	r.Observe("sort_rarity", "bounded", "bubble", "ok", 6, 3)
	r.Observe("insert", "linked", "", "duplicate", 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("linear_search", "bounded", "ok")))
	assert.Equal(t, 14.0, testutil.ToFloat64(r.comparisons.WithLabelValues("linear_search", "bounded", "")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.swaps.WithLabelValues("bounded", "bubble")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("insert", "linked", "duplicate")))

	count, err := testutil.GatherAndCount(r.Gatherer(), "satchel_comparisons_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "insert carries no comparison series")
}

func TestSetItems(t *testing.T) {
	r := NewRecorder()
	r.SetItems("linked", 3)
	r.SetItems("linked", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.items.WithLabelValues("linked")))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Observe("sort_identifier", "bounded", "identifier", "ok", 5, 4)

	path := filepath.Join(t.TempDir(), "satchel.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `satchel_swaps_total{algorithm="identifier",backend="bounded"} 4`), text)
	assert.True(t, strings.Contains(text, "# TYPE satchel_operations_total counter"), text)
}
