package journal

import "fmt"

// Stat aggregates the successful runs of one operation on one backend with
// one algorithm. Searches report swaps as zero.
type Stat struct {
	Operation      string  `json:"operation"`
	Backend        string  `json:"backend"`
	Algorithm      string  `json:"algorithm,omitempty"`
	Runs           int     `json:"runs"`
	AvgSize        float64 `json:"avg_size"`
	AvgComparisons float64 `json:"avg_comparisons"`
	MinComparisons int     `json:"min_comparisons"`
	MaxComparisons int     `json:"max_comparisons"`
	AvgSwaps       float64 `json:"avg_swaps"`
	MaxSwaps       int     `json:"max_swaps"`
}

// summaryQuery groups counted operations; list, insert and remove carry no
// counters and are left out.
const summaryQuery = `SELECT operation, backend, algorithm, COUNT(*),
    AVG(size), AVG(comparisons), MIN(comparisons), MAX(comparisons),
    AVG(swaps), MAX(swaps)
FROM operations
WHERE operation IN (?, ?, ?, ?) AND outcome IN (?, ?)
GROUP BY operation, backend, algorithm
ORDER BY operation, backend, algorithm`

// Summary returns per-operation statistics across all sessions.
func (j *Journal) Summary() ([]Stat, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return nil, ErrClosed
	}

	rows, err := j.db.Query(summaryQuery,
		OpLinearSearch, OpBinarySearch, OpSortByRarity, OpSortByIdentifier,
		OutcomeOK, OutcomeMiss,
	)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var stats []Stat
	for rows.Next() {
		var s Stat
		if err := rows.Scan(&s.Operation, &s.Backend, &s.Algorithm, &s.Runs,
			&s.AvgSize, &s.AvgComparisons, &s.MinComparisons, &s.MaxComparisons,
			&s.AvgSwaps, &s.MaxSwaps); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}
	return stats, nil
}
