package index

import (
	"fmt"
	"sort"
)

// InconsistencyType categorizes detected checkpoint issues.
type InconsistencyType int

const (
	// InconsistencyDanglingDocument indicates a posting referencing a
	// document absent from the manifest.
	InconsistencyDanglingDocument InconsistencyType = iota
	// InconsistencyEmptyToken indicates a token with no postings.
	InconsistencyEmptyToken
	// InconsistencyBadPage indicates a non-positive page number.
	InconsistencyBadPage
)

// String returns a human-readable description of the inconsistency type.
func (t InconsistencyType) String() string {
	switch t {
	case InconsistencyDanglingDocument:
		return "dangling_document"
	case InconsistencyEmptyToken:
		return "empty_token"
	case InconsistencyBadPage:
		return "bad_page"
	default:
		return "unknown"
	}
}

// Inconsistency represents one detected issue.
type Inconsistency struct {
	Type    InconsistencyType
	Token   string
	Details string
}

// CheckConsistency validates a checkpoint against its invariants: every
// posting references a manifest document, no token has an empty posting
// set, and all page numbers are positive. The manifest may contain
// documents the index never mentions (zero-token documents); that is
// not an issue.
func CheckConsistency(ix *Index, manifest Manifest) []Inconsistency {
	var issues []Inconsistency

	tokens := make([]string, 0, len(ix.tokens))
	for token := range ix.tokens {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	for _, token := range tokens {
		postings := ix.tokens[token]
		if len(postings) == 0 {
			issues = append(issues, Inconsistency{
				Type:    InconsistencyEmptyToken,
				Token:   token,
				Details: "token has no postings",
			})
			continue
		}
		for doc, pages := range postings {
			if _, ok := manifest[doc]; !ok {
				issues = append(issues, Inconsistency{
					Type:    InconsistencyDanglingDocument,
					Token:   token,
					Details: fmt.Sprintf("document %s not in manifest", doc),
				})
			}
			for page := range pages {
				if page < 1 {
					issues = append(issues, Inconsistency{
						Type:    InconsistencyBadPage,
						Token:   token,
						Details: fmt.Sprintf("document %s has page %d", doc, page),
					})
				}
			}
		}
	}

	return issues
}
