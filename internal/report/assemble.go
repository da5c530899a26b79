// File path: internal/report/assemble.go
package report

import (
	"strings"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/common"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/esg"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/gri"
)

// Document is the completed report artifact: the rendered markdown plus the
// content index it embeds, for callers that want the cross-reference data
// without re-parsing the document.
type Document struct {
	Markdown string       `json:"markdown"`
	Index    []IndexEntry `json:"index"`
	Sections []string     `json:"sections"`
}

// Options tune one assembly run. The zero value uses the bundled layout and
// the average-of-scores materiality ranking.
type Options struct {
	Layout Layout
	Rank   RankRule
}

// Assemble orchestrates one full report run: validate the record, classify
// the material issues, build the content index, compose every section in the
// fixed order and concatenate the result.
//
// Fatal failures (*esg.ValidationError, *IndexIntegrityError) return no
// document. Non-fatal conditions - unmapped issues, placeholders used - are
// accumulated into the returned diagnostics. The function is a pure function
// of its inputs: identical input yields a byte-identical document, and
// concurrent calls share nothing but the read-only catalog.
func Assemble(rec esg.Record, opts Options) (*Document, []Diagnostic, error) {
	logger := common.Logger()

	if err := rec.Validate(); err != nil {
		logger.Warn("report: payload rejected", "error", err)
		return nil, nil, err
	}
	rec = rec.Normalized()

	cls := ClassifyIssues(rec.MaterialIssues)

	layout := opts.Layout
	if layout.empty() {
		layout = DefaultLayout()
	}
	index, err := BuildIndex(cls, layout)
	if err != nil {
		logger.Error("report: content index build failed", "error", err)
		return nil, nil, err
	}

	diags := &diagnostics{}
	for _, name := range cls.Unmapped() {
		diags.add(DiagUnmappedIssue, name, "no keyword matched; issue rendered without topic-standard codes")
	}

	c := &composer{rec: rec, cls: cls, index: index, rank: opts.Rank, diags: diags}
	blocks := make([]string, 0, len(gri.SectionOrder))
	for _, section := range gri.SectionOrder {
		blocks = append(blocks, c.section(section))
	}

	doc := &Document{
		Markdown: strings.Join(blocks, "\n"),
		Index:    index,
		Sections: append([]string(nil), gri.SectionOrder...),
	}
	logger.Info("report: assembled",
		"company", rec.CompanyName,
		"year", rec.ReportYear,
		"issues", len(rec.MaterialIssues),
		"index_entries", len(index),
		"diagnostics", len(diags.items))
	return doc, diags.items, nil
}
