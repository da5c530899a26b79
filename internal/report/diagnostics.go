// File path: internal/report/diagnostics.go
package report

// Diagnostic kinds. Non-fatal conditions are accumulated during assembly and
// returned alongside the finished document; nothing is silently swallowed.
const (
	DiagUnmappedIssue   = "unmapped_issue"
	DiagPlaceholderUsed = "placeholder_used"
)

// Diagnostic records one non-fatal condition observed while assembling:
// a material issue no keyword matched, or an optional field rendered as a
// placeholder. The caller decides whether the draft is publishable.
type Diagnostic struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Detail  string `json:"detail,omitempty"`
}

type diagnostics struct {
	items []Diagnostic
}

func (d *diagnostics) add(kind, subject, detail string) {
	d.items = append(d.items, Diagnostic{Kind: kind, Subject: subject, Detail: detail})
}
