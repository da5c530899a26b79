// File path: internal/report/layout_test.go
package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/gri"
)

func TestDefaultLayoutCoversAllSections(t *testing.T) {
	layout := DefaultLayout()
	for _, section := range gri.SectionOrder {
		if _, ok := layout.Page(section); !ok {
			t.Fatalf("default layout missing section %q", section)
		}
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	content := `sections:
  - name: Overview
    page: 2
  - name: Materiality
    page: 6
  - name: Environmental
    page: 10
  - name: Social
    page: 16
  - name: Governance
    page: 22
  - name: Appendices
    page: 28
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	layout, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	if page, ok := layout.Page("Environmental"); !ok || page != 10 {
		t.Fatalf("environmental page %d, want 10", page)
	}
}

func TestLoadLayoutRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte("sections: []\n"), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	if _, err := LoadLayout(path); err == nil {
		t.Fatal("expected error for layout without sections")
	}
}
