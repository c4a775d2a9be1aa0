// Package search implements the identifier lookups used by the inventory
// backends. Both functions report how many identifier comparisons they made
// so sessions can contrast linear and logarithmic behavior.
package search

import (
	"iter"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Linear scans seq in order and stops at the first item whose ID matches.
// Every ID check counts as one comparison, so a hit at position i costs i+1
// and a miss costs the length of the sequence.
func Linear(seq iter.Seq[types.Item], id int) types.SearchResult {
	var res types.SearchResult
	for it := range seq {
		res.Comparisons++
		if it.ItemID == id {
			res.Found = true
			res.Item = it
			return res
		}
	}
	return res
}

// Binary halves [0, len(items)-1] until it hits id or the interval is empty.
// Each probe costs one comparison for equality and, on a miss, a second for
// the less-than test that picks the half. items must be ordered by ID; on
// unordered input the verdict is meaningless.
func Binary(items []types.Item, id int) types.SearchResult {
	var res types.SearchResult
	lo, hi := 0, len(items)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2

		res.Comparisons++
		if items[mid].ItemID == id {
			res.Found = true
			res.Item = items[mid]
			return res
		}

		res.Comparisons++
		if items[mid].ItemID < id {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return res
}
