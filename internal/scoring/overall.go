package scoring

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// ComputeOverallScore is the weight-normalised mean of the domain scores.
// A zero total weight yields 0.
func ComputeOverallScore(results map[uuid.UUID]DomainResult) float64 {
	ids := make([]uuid.UUID, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	// fixed summation order keeps repeated runs bit-identical
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })

	var totalWeight, weighted float64
	for _, id := range ids {
		r := results[id]
		totalWeight += r.Weight
		weighted += r.Score * r.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return round2(weighted / totalWeight)
}
