package index

import "sort"

// Changes is a partition of the union of current and manifest document
// names into four disjoint sets. A document classifies exactly once per
// run: it can never be both added and removed, and modified documents
// are detected in the same pass as additions and removals.
type Changes struct {
	Added     []string
	Removed   []string
	Modified  []string
	Unchanged []string
}

// Total returns the number of documents requiring work.
func (c Changes) Total() int {
	return len(c.Added) + len(c.Removed) + len(c.Modified)
}

// Classify compares the current document set and timestamps against the
// manifest:
//
//	added     = current - manifest
//	removed   = manifest - current
//	modified  = intersection with differing timestamps
//	unchanged = intersection with equal timestamps
//
// Result slices are sorted for deterministic processing.
func Classify(current map[string]int64, manifest Manifest) Changes {
	var ch Changes

	for doc, mtime := range current {
		prev, known := manifest[doc]
		switch {
		case !known:
			ch.Added = append(ch.Added, doc)
		case prev != mtime:
			ch.Modified = append(ch.Modified, doc)
		default:
			ch.Unchanged = append(ch.Unchanged, doc)
		}
	}

	for doc := range manifest {
		if _, present := current[doc]; !present {
			ch.Removed = append(ch.Removed, doc)
		}
	}

	sort.Strings(ch.Added)
	sort.Strings(ch.Removed)
	sort.Strings(ch.Modified)
	sort.Strings(ch.Unchanged)
	return ch
}
