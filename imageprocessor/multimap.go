package imageprocessor

import "dupefinder/types"

// DigestIndex is an insertion-ordered multimap from byte-digest to the
// records carrying it. Iterating groups follows the first-insertion
// order of each digest, which keeps group numbering deterministic for
// a given enumeration order.
type DigestIndex struct {
	order   []string
	records map[string][]*types.ImageRecord
}

func NewDigestIndex() *DigestIndex {
	return &DigestIndex{records: make(map[string][]*types.ImageRecord)}
}

// Add indexes a record under its digest. Records whose digest stage
// failed carry an empty digest and are ignored; they must never form
// or join a group.
func (ix *DigestIndex) Add(record *types.ImageRecord) {
	if record == nil || record.Digest == "" {
		return
	}
	if _, seen := ix.records[record.Digest]; !seen {
		ix.order = append(ix.order, record.Digest)
	}
	ix.records[record.Digest] = append(ix.records[record.Digest], record)
}

// Len returns the number of distinct digests indexed.
func (ix *DigestIndex) Len() int {
	return len(ix.order)
}

// DuplicateGroups returns the groups holding two or more records, in
// first-insertion order.
func (ix *DigestIndex) DuplicateGroups() []types.ExactGroup {
	groups := make([]types.ExactGroup, 0)
	for _, digest := range ix.order {
		members := ix.records[digest]
		if len(members) < 2 {
			continue
		}
		groups = append(groups, types.ExactGroup{Digest: digest, Members: members})
	}
	return groups
}
