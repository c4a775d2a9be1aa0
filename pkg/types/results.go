package types

import "fmt"

// Algorithm names a sort strategy.
type Algorithm string

// Sort algorithms. The first three order by rarity; AlgorithmIdentifier is
// the insertion sort by ID that prepares the container for binary search.
const (
	AlgorithmBubble     Algorithm = "bubble"
	AlgorithmSelection  Algorithm = "selection"
	AlgorithmInsertion  Algorithm = "insertion"
	AlgorithmIdentifier Algorithm = "identifier"
)

// RarityAlgorithms lists the rarity sorts in menu order.
var RarityAlgorithms = []Algorithm{
	AlgorithmBubble,
	AlgorithmSelection,
	AlgorithmInsertion,
}

// ParseAlgorithm maps a name to a rarity Algorithm.
// Returns ErrUnknownAlgorithm for anything else.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range RarityAlgorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
}

// SearchResult is the outcome of a linear or binary search. Comparisons
// counts every identifier check performed, including the one that matched.
type SearchResult struct {
	Found       bool `json:"found"`
	Item        Item `json:"item"`
	Comparisons int  `json:"comparisons"`
}

// SortReport carries the work counters of a sort. For insertion-based sorts
// Swaps counts element moves.
type SortReport struct {
	Algorithm   Algorithm `json:"algorithm"`
	Comparisons int       `json:"comparisons"`
	Swaps       int       `json:"swaps"`
}
