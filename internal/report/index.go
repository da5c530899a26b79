// File path: internal/report/index.go
package report

import (
	"fmt"
	"sort"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/gri"
)

// IndexEntry cross-references one disclosure code to the section and page
// where the report covers it. Codes are unique within an index.
type IndexEntry struct {
	Code    string `json:"code"`
	Family  string `json:"family"`
	Title   string `json:"title"`
	Section string `json:"section"`
	Page    int    `json:"page"`
}

// IndexIntegrityError signals a catalog/layout mismatch: an index entry
// references a section the layout does not know. It is fatal because it
// indicates broken configuration, not a defective data record.
type IndexIntegrityError struct {
	Code    string
	Section string
}

func (e *IndexIntegrityError) Error() string {
	return fmt.Sprintf("content index entry %s references section %q absent from the layout", e.Code, e.Section)
}

// BuildIndex merges the universal disclosures with the topic-standard
// disclosures implied by the classification into one ordered content index.
//
// Universal disclosures are always included. Every classified family expands
// to its catalog indicators; a code cited by several issues appears exactly
// once. Entries are grouped by family (2 → 3 → 200 → 300 → 400 → sector) and
// sorted by numeric code within each family.
func BuildIndex(cls Classification, layout Layout) ([]IndexEntry, error) {
	if layout.empty() {
		layout = DefaultLayout()
	}
	catalog := gri.Standards()

	seen := make(map[string]struct{})
	var entries []IndexEntry
	add := func(d gri.Disclosure) error {
		if _, dup := seen[d.Code]; dup {
			return nil
		}
		page, ok := layout.Page(d.Section)
		if !ok {
			return &IndexIntegrityError{Code: d.Code, Section: d.Section}
		}
		seen[d.Code] = struct{}{}
		entries = append(entries, IndexEntry{
			Code:    d.Code,
			Family:  d.Family,
			Title:   d.Title,
			Section: d.Section,
			Page:    page,
		})
		return nil
	}

	for _, d := range catalog.Universal() {
		if err := add(d); err != nil {
			return nil, err
		}
	}
	for _, family := range cls.Families() {
		topic, ok := catalog.Topic(family)
		if !ok {
			continue
		}
		for _, d := range topic.Indicators {
			if err := add(d); err != nil {
				return nil, err
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := gri.FamilyRank(entries[i].Family), gri.FamilyRank(entries[j].Family)
		if ri != rj {
			return ri < rj
		}
		return gri.CompareCodes(entries[i].Code, entries[j].Code) < 0
	})
	return entries, nil
}

// indexSubset filters the entries assigned to one section, preserving order.
func indexSubset(entries []IndexEntry, section string) []IndexEntry {
	var out []IndexEntry
	for _, e := range entries {
		if e.Section == section {
			out = append(out, e)
		}
	}
	return out
}
