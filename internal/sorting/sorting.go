// Package sorting implements the quadratic in-place sorts used to rank the
// bounded inventory. Each sort returns its comparison and swap counters
// instead of writing through out-parameters.
package sorting

import (
	"fmt"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// ByRarity sorts items by ascending rarity with the named algorithm.
// Returns ErrUnknownAlgorithm for anything but bubble, selection and insertion.
func ByRarity(alg types.Algorithm, items []types.Item) (types.SortReport, error) {
	switch alg {
	case types.AlgorithmBubble:
		return BubbleByRarity(items), nil
	case types.AlgorithmSelection:
		return SelectionByRarity(items), nil
	case types.AlgorithmInsertion:
		return InsertionByRarity(items), nil
	default:
		return types.SortReport{}, fmt.Errorf("%q: %w", alg, types.ErrUnknownAlgorithm)
	}
}

// BubbleByRarity runs every adjacent pass without the early exit for an
// already sorted pass, so comparisons are always n(n-1)/2.
func BubbleByRarity(items []types.Item) types.SortReport {
	rep := types.SortReport{Algorithm: types.AlgorithmBubble}
	n := len(items)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			rep.Comparisons++
			if items[j].Rarity > items[j+1].Rarity {
				items[j], items[j+1] = items[j+1], items[j]
				rep.Swaps++
			}
		}
	}
	return rep
}

// SelectionByRarity picks the minimum of the unsorted remainder for each
// position. A swap is counted only when the minimum is not already in place.
func SelectionByRarity(items []types.Item) types.SortReport {
	rep := types.SortReport{Algorithm: types.AlgorithmSelection}
	n := len(items)
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			rep.Comparisons++
			if items[j].Rarity < items[minIdx].Rarity {
				minIdx = j
			}
		}
		if minIdx != i {
			items[i], items[minIdx] = items[minIdx], items[i]
			rep.Swaps++
		}
	}
	return rep
}

// InsertionByRarity sorts by rarity; Swaps counts shifts.
func InsertionByRarity(items []types.Item) types.SortReport {
	rep := insertion(items, func(it types.Item) int { return it.Rarity })
	rep.Algorithm = types.AlgorithmInsertion
	return rep
}

// InsertionByID sorts by ascending ItemID with the same mechanics as
// InsertionByRarity. It is the step that makes binary search valid.
func InsertionByID(items []types.Item) types.SortReport {
	rep := insertion(items, func(it types.Item) int { return it.ItemID })
	rep.Algorithm = types.AlgorithmIdentifier
	return rep
}

// insertion shifts each element left past strictly larger predecessors.
// One comparison per predecessor examined, including the one that stops the
// shift; one move per shift. Dropping the key into its slot is not a move.
func insertion(items []types.Item, key func(types.Item) int) types.SortReport {
	var rep types.SortReport
	for i := 1; i < len(items); i++ {
		cur := items[i]
		j := i - 1
		for j >= 0 {
			rep.Comparisons++
			if key(items[j]) <= key(cur) {
				break
			}
			items[j+1] = items[j]
			rep.Swaps++
			j--
		}
		items[j+1] = cur
	}
	return rep
}
