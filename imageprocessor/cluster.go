package imageprocessor

import (
	"dupefinder/logging"
	"dupefinder/types"
)

// ClusterSimilar groups perceptually similar records with a single
// greedy pass. Records must arrive in enumeration order; records
// without a fingerprint are skipped. Each unassigned record anchors a
// candidate group, and every later unassigned record whose similarity
// to the anchor reaches the threshold joins it and is taken out of
// circulation. Groups keep only two or more members.
//
// Assignment is first-seen-wins and therefore order-sensitive: an
// image similar to two different anchors lands in whichever group the
// pass reaches first, and membership is judged against the anchor
// only, never between co-members. That non-transitivity is part of
// the contract, not an optimization target.
func ClusterSimilar(records []*types.ImageRecord, threshold float64) []types.SimilarGroup {
	groups := make([]types.SimilarGroup, 0)
	assigned := make(map[int]bool, len(records))

	for i, anchor := range records {
		if assigned[i] || anchor.Fingerprint == nil {
			continue
		}

		members := []*types.ImageRecord{anchor}
		for j := i + 1; j < len(records); j++ {
			if assigned[j] {
				continue
			}
			candidate := records[j]
			if candidate.Fingerprint == nil {
				continue
			}

			similarity, err := Similarity(anchor.Fingerprint, candidate.Fingerprint)
			if err != nil {
				logging.LogWarning("comparing %s with %s: %v", anchor.Path, candidate.Path, err)
				continue
			}

			if similarity >= threshold {
				members = append(members, candidate)
				assigned[j] = true
			}
		}

		// A group of one is no duplicate; the anchor stays ungrouped
		// and is never revisited.
		if len(members) >= 2 {
			assigned[i] = true
			groups = append(groups, types.SimilarGroup{Members: members})
		}
	}

	return groups
}
