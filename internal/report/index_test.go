// File path: internal/report/index_test.go
package report

import (
	"errors"
	"testing"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/esg"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/gri"
)

func classification(names ...string) Classification {
	issues := make([]esg.MaterialIssue, 0, len(names))
	for _, n := range names {
		issues = append(issues, esg.MaterialIssue{Name: n, Financial: 50, Impact: 50})
	}
	return ClassifyIssues(issues)
}

func indexCodes(entries []IndexEntry) map[string]IndexEntry {
	out := make(map[string]IndexEntry, len(entries))
	for _, e := range entries {
		out[e.Code] = e
	}
	return out
}

func TestBuildIndexAlwaysSeedsUniversalDisclosures(t *testing.T) {
	entries, err := BuildIndex(classification("무관한 이슈"), DefaultLayout())
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	codes := indexCodes(entries)
	for _, want := range []string{"2-1", "2-22", "2-29", "3-1", "3-2", "3-3"} {
		if _, ok := codes[want]; !ok {
			t.Fatalf("universal disclosure %s missing from index", want)
		}
	}
	for code, entry := range codes {
		if entry.Family != gri.FamilyGeneral && entry.Family != gri.FamilyMaterial {
			t.Fatalf("unmapped-only classification produced topic entry %s", code)
		}
	}
}

func TestBuildIndexExpandsClassifiedFamilies(t *testing.T) {
	entries, err := BuildIndex(classification("기후변화 대응", "안전보건"), DefaultLayout())
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	codes := indexCodes(entries)
	for _, want := range []string{"302-1", "305-1", "305-5", "403-1", "403-9"} {
		if _, ok := codes[want]; !ok {
			t.Fatalf("expected indicator %s in index", want)
		}
	}
	if _, ok := codes["303-1"]; ok {
		t.Fatal("water indicators must not appear for climate/safety issues")
	}
}

func TestBuildIndexDeduplicatesSharedCodes(t *testing.T) {
	// Both issues classify to GRI 305; its indicators appear exactly once.
	entries, err := BuildIndex(classification("기후변화 대응", "탄소 중립"), DefaultLayout())
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	count := 0
	for _, e := range entries {
		if e.Code == "305-1" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("code 305-1 appears %d times, want exactly once", count)
	}
}

func TestBuildIndexOrdersByFamilyThenCode(t *testing.T) {
	entries, err := BuildIndex(classification("기후변화 대응", "윤리경영", "안전보건"), DefaultLayout())
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		pr, cr := gri.FamilyRank(prev.Family), gri.FamilyRank(cur.Family)
		if pr > cr {
			t.Fatalf("entry %s (rank %d) precedes %s (rank %d)", prev.Code, pr, cur.Code, cr)
		}
		if pr == cr && gri.CompareCodes(prev.Code, cur.Code) > 0 {
			t.Fatalf("entry %s precedes %s within family", prev.Code, cur.Code)
		}
	}
}

func TestBuildIndexRejectsUnknownSection(t *testing.T) {
	layout := Layout{Sections: []SectionPage{{Name: gri.SectionOverview, Page: 3}}}
	_, err := BuildIndex(classification("기후변화 대응"), layout)
	if err == nil {
		t.Fatal("expected integrity error for truncated layout")
	}
	var ierr *IndexIntegrityError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *IndexIntegrityError, got %T", err)
	}
	if ierr.Code == "" || ierr.Section == "" {
		t.Fatalf("integrity error must name the offending code and section: %+v", ierr)
	}
}

func TestBuildIndexAssignsLayoutPages(t *testing.T) {
	entries, err := BuildIndex(classification("기후변화 대응"), DefaultLayout())
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	layout := DefaultLayout()
	for _, e := range entries {
		page, ok := layout.Page(e.Section)
		if !ok {
			t.Fatalf("entry %s references section %q missing from layout", e.Code, e.Section)
		}
		if e.Page != page {
			t.Fatalf("entry %s page %d, want %d", e.Code, e.Page, page)
		}
	}
}
