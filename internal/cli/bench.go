package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/satchel/internal/bounded"
	"github.com/mesh-intelligence/satchel/internal/catalog"
	"github.com/mesh-intelligence/satchel/internal/journal"
	"github.com/mesh-intelligence/satchel/internal/linked"
	"github.com/mesh-intelligence/satchel/internal/metrics"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Default benchmark input.
const (
	defaultBenchSize = 1000
	defaultBenchSeed = 1
)

var errBenchSize = errors.New("bench size must be positive")

// benchRow is one measured operation.
type benchRow struct {
	Structure   string `json:"structure"`
	Operation   string `json:"operation"`
	Algorithm   string `json:"algorithm,omitempty"`
	Target      int    `json:"target,omitempty"`
	Outcome     string `json:"outcome"`
	Comparisons int    `json:"comparisons"`
	Swaps       int    `json:"swaps"`
}

func (a *app) newBenchCmd() *cobra.Command {
	var (
		size     int
		seed     uint64
		jsonMode bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare search and sort costs on generated items",
		Long: `Bench fills both structures with the same generated items and reports the
comparisons and swaps of linear search (last item and an absent ID), binary
search after sorting by ID, and each rarity sort on its own copy.

Example:
  satchel bench
  satchel bench --size 5000 --seed-value 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size <= 0 {
				return userError(fmt.Errorf("%w: %d", errBenchSize, size))
			}
			rows, err := benchmark(size, seed)
			if err != nil {
				return systemError(err)
			}
			a.logger.Debug("Benchmark finished", zap.Int("size", size), zap.Uint64("seed", seed), zap.Int("rows", len(rows)))

			if path := a.v.GetString(cfgKeyMetricsFile); path != "" {
				rec := metrics.NewRecorder()
				for _, r := range rows {
					rec.Observe(r.Operation, r.Structure, r.Algorithm, r.Outcome, r.Comparisons, r.Swaps)
				}
				if err := rec.WriteTextfile(path); err != nil {
					return systemError(err)
				}
			}

			if jsonMode {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Benchmark: %d items, seed %d\n", size, seed)
			renderBench(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", defaultBenchSize, "number of generated items")
	cmd.Flags().Uint64Var(&seed, "seed-value", defaultBenchSeed, "generator seed")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output as JSON")
	return cmd
}

// benchmark measures every algorithm on n items generated from seed.
func benchmark(n int, seed uint64) ([]benchRow, error) {
	items := catalog.Generate(n, seed)
	last := items[len(items)-1].ItemID
	absent := n + 1

	b, err := fillBounded(items)
	if err != nil {
		return nil, err
	}
	l := linked.New()
	defer l.Clear()
	for _, it := range items {
		if err := l.Insert(it); err != nil {
			return nil, fmt.Errorf("fill linked inventory: %w", err)
		}
	}

	var rows []benchRow
	for _, inv := range []types.Inventory{b, l} {
		for _, id := range []int{last, absent} {
			rows = append(rows, searchRow(inv.Kind(), journal.OpLinearSearch, id, inv.LinearSearch(id)))
		}
	}

	rep := b.SortByIdentifier()
	rows = append(rows, benchRow{
		Structure:   b.Kind(),
		Operation:   journal.OpSortByIdentifier,
		Algorithm:   string(rep.Algorithm),
		Outcome:     journal.OutcomeOK,
		Comparisons: rep.Comparisons,
		Swaps:       rep.Swaps,
	})
	for _, id := range []int{last, absent} {
		rows = append(rows, searchRow(b.Kind(), journal.OpBinarySearch, id, b.BinarySearch(id)))
	}

	for _, alg := range types.RarityAlgorithms {
		inv, err := fillBounded(items)
		if err != nil {
			return nil, err
		}
		rep, err := inv.SortByRarity(alg)
		if err != nil {
			return nil, err
		}
		rows = append(rows, benchRow{
			Structure:   inv.Kind(),
			Operation:   journal.OpSortByRarity,
			Algorithm:   string(alg),
			Outcome:     journal.OutcomeOK,
			Comparisons: rep.Comparisons,
			Swaps:       rep.Swaps,
		})
	}
	return rows, nil
}

func fillBounded(items []types.Item) (*bounded.Inventory, error) {
	inv, err := bounded.New(len(items))
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := inv.Insert(it); err != nil {
			return nil, fmt.Errorf("fill bounded inventory: %w", err)
		}
	}
	return inv, nil
}

func searchRow(structure, op string, id int, res types.SearchResult) benchRow {
	outcome := journal.OutcomeMiss
	if res.Found {
		outcome = journal.OutcomeOK
	}
	return benchRow{
		Structure:   structure,
		Operation:   op,
		Target:      id,
		Outcome:     outcome,
		Comparisons: res.Comparisons,
	}
}

func renderBench(w io.Writer, rows []benchRow) {
	t := newTable("STRUCTURE", "OPERATION", "ALGORITHM", "TARGET", "OUTCOME", "COMPARISONS", "SWAPS")
	for _, r := range rows {
		target := ""
		if r.Target != 0 {
			target = strconv.Itoa(r.Target)
		}
		t.Row(r.Structure, r.Operation, r.Algorithm, target, r.Outcome,
			strconv.Itoa(r.Comparisons), strconv.Itoa(r.Swaps))
	}
	fmt.Fprintln(w, t.Render())
}

// newTable returns a bordered table with the given headers.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return systemError(fmt.Errorf("marshal output: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}
