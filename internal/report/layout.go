// File path: internal/report/layout.go

// Package report assembles the ESG report: it classifies material issues,
// builds the GRI content index, composes the document sections and
// concatenates them into the final markdown artifact.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/gri"
)

// SectionPage places one composed section at a page in the print layout.
type SectionPage struct {
	Name string `yaml:"name" json:"name"`
	Page int    `yaml:"page" json:"page"`
}

// Layout is the static page map supplied by the report template. The index
// builder refuses entries whose section is absent from it.
type Layout struct {
	Sections []SectionPage `yaml:"sections" json:"sections"`
}

// DefaultLayout returns the page map of the bundled report template.
func DefaultLayout() Layout {
	return Layout{Sections: []SectionPage{
		{Name: gri.SectionOverview, Page: 3},
		{Name: gri.SectionMateriality, Page: 8},
		{Name: gri.SectionEnvironmental, Page: 12},
		{Name: gri.SectionSocial, Page: 18},
		{Name: gri.SectionGovernance, Page: 24},
		{Name: gri.SectionAppendices, Page: 30},
	}}
}

// LoadLayout reads a layout override from a YAML file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if len(layout.Sections) == 0 {
		return Layout{}, fmt.Errorf("layout %s defines no sections", path)
	}
	return layout, nil
}

// Page reports the page a section starts at.
func (l Layout) Page(section string) (int, bool) {
	for _, s := range l.Sections {
		if s.Name == section {
			return s.Page, true
		}
	}
	return 0, false
}

func (l Layout) empty() bool {
	return len(l.Sections) == 0
}
