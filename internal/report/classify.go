// File path: internal/report/classify.go
package report

import (
	"sort"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/esg"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/gri"
)

// Classification maps each declared material issue to the topic-standard
// families its name matched. Derived fresh for every run, never persisted.
type Classification struct {
	issues map[string][]string
	order  []string
}

// ClassifyIssues runs the keyword classifier over every material issue.
func ClassifyIssues(issues []esg.MaterialIssue) Classification {
	cls := Classification{issues: make(map[string][]string, len(issues))}
	for _, issue := range issues {
		if _, seen := cls.issues[issue.Name]; seen {
			continue
		}
		cls.issues[issue.Name] = gri.Classify(issue.Name)
		cls.order = append(cls.order, issue.Name)
	}
	return cls
}

// Families returns the union of all classified families in sorted order.
func (c Classification) Families() []string {
	set := make(map[string]struct{})
	for _, families := range c.issues {
		for _, f := range families {
			set[f] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// IssueFamilies returns the families classified for one issue name.
func (c Classification) IssueFamilies(name string) []string {
	return append([]string(nil), c.issues[name]...)
}

// Unmapped lists issues no keyword matched, in declaration order.
func (c Classification) Unmapped() []string {
	var out []string
	for _, name := range c.order {
		if len(c.issues[name]) == 0 {
			out = append(out, name)
		}
	}
	return out
}
