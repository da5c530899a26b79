// File path: internal/report/compose.go
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/esg"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/gri"
)

// Placeholder marks an optional field the caller still owes. It is rendered
// instead of omitting the field so the draft always shows what is missing.
const Placeholder = "입력 필요"

// RankRule selects how material issues are ordered in the materiality table.
// The source weighting is not pinned down, so the rule stays configurable.
type RankRule string

const (
	RankAverage   RankRule = "average"
	RankFinancial RankRule = "financial"
	RankImpact    RankRule = "impact"
)

type composer struct {
	rec   esg.Record
	cls   Classification
	index []IndexEntry
	rank  RankRule
	diags *diagnostics
}

// section renders one report section as a markdown block. The entries cited
// inline all come from the content index subset for that section, so every
// code in prose resolves through the index and vice versa.
func (c *composer) section(name string) string {
	entries := indexSubset(c.index, name)
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", name)
	if line := codeLine(entries); line != "" {
		fmt.Fprintf(&b, "적용 공시: %s\n\n", line)
	}
	switch name {
	case gri.SectionOverview:
		c.overview(&b)
	case gri.SectionMateriality:
		c.materiality(&b)
	case gri.SectionEnvironmental:
		c.pillar(&b, "환경 정책", "env_policy", c.rec.EnvPolicy, name)
	case gri.SectionSocial:
		c.pillar(&b, "사회 정책", "social_policy", c.rec.SocialPolicy, name)
	case gri.SectionGovernance:
		c.pillar(&b, "지배구조", "gov_structure", c.rec.GovStructure, name)
	case gri.SectionAppendices:
		c.appendices(&b)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (c *composer) overview(b *strings.Builder) {
	fmt.Fprintf(b, "**%s %d 지속가능경영보고서**\n\n", c.rec.CompanyName, c.rec.ReportYear)

	fmt.Fprint(b, "### CEO 메시지\n\n")
	fmt.Fprintf(b, "%s\n\n", c.optional("ceo_message", c.rec.CEOMessage))

	fmt.Fprint(b, "### ESG 전략\n\n")
	fmt.Fprintf(b, "%s\n\n", c.optional("esg_strategy", c.rec.ESGStrategy))

	fmt.Fprint(b, "### ESG 하이라이트\n\n")
	names := c.rec.SeriesNames()
	if len(names) == 0 {
		c.diags.add(DiagPlaceholderUsed, "metrics", "no metric series supplied")
		fmt.Fprintf(b, "%s\n\n", Placeholder)
		return
	}
	fmt.Fprint(b, "| 지표 | 최근 연도 | 값 |\n|------|-----------|----|\n")
	for _, series := range names {
		points := c.rec.Metrics[series]
		latest := points[len(points)-1]
		fmt.Fprintf(b, "| %s | %d | %s |\n", series, latest.Year, formatValue(latest.Value))
	}
	fmt.Fprint(b, "\n")
}

func (c *composer) materiality(b *strings.Builder) {
	fmt.Fprint(b, "### 중대성 평가 매트릭스\n\n")
	issues := rankIssues(c.rec.MaterialIssues, c.rank)
	fmt.Fprint(b, "| 순위 | 중대 이슈 | 재무 중요도 | 임팩트 중요도 | 관련 GRI |\n")
	fmt.Fprint(b, "|------|-----------|-------------|---------------|----------|\n")
	for i, issue := range issues {
		families := c.cls.IssueFamilies(issue.Name)
		tag := "-"
		if len(families) > 0 {
			tag = strings.Join(families, ", ")
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n",
			i+1, issue.Name, formatValue(issue.Financial), formatValue(issue.Impact), tag)
	}
	fmt.Fprint(b, "\n")
}

func (c *composer) pillar(b *strings.Builder, heading, field, value, section string) {
	fmt.Fprintf(b, "### %s\n\n", heading)
	fmt.Fprintf(b, "%s\n\n", c.optional(field, value))

	series := c.sectionSeries(section)
	if len(series) == 0 {
		return
	}
	fmt.Fprint(b, "### 주요 지표 추이\n\n")
	for _, name := range series {
		fmt.Fprintf(b, "**%s**\n\n", name)
		fmt.Fprint(b, "| 연도 | 값 |\n|------|----|\n")
		for _, p := range c.rec.Metrics[name] {
			fmt.Fprintf(b, "| %d | %s |\n", p.Year, formatValue(p.Value))
		}
		fmt.Fprint(b, "\n")
	}
}

func (c *composer) appendices(b *strings.Builder) {
	catalog := gri.Standards()

	fmt.Fprint(b, "### GRI 1: Foundation 2021\n\n")
	fmt.Fprintf(b, "적용 원칙: %s\n\n", strings.Join(catalog.Principles(), ", "))

	fmt.Fprint(b, "### GRI Content Index\n\n")
	fmt.Fprint(b, "| 공시 코드 | 제목 | 위치 | 페이지 |\n|-----------|------|------|--------|\n")
	for _, e := range c.index {
		fmt.Fprintf(b, "| %s | %s | %s | %d |\n", e.Code, e.Title, e.Section, e.Page)
	}
	fmt.Fprint(b, "\n")

	fmt.Fprint(b, "### Sector Standards\n\n")
	fmt.Fprint(b, "해당 산업의 GRI 섹터 표준이 미발행인 경우 SASB 기준으로 보완한다.\n")
}

// optional returns the field value, or the fixed placeholder plus a recorded
// notice when the caller has not supplied it yet.
func (c *composer) optional(field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		c.diags.add(DiagPlaceholderUsed, field, "optional field rendered as placeholder")
		return Placeholder
	}
	return trimmed
}

// sectionSeries picks the metric series whose names classify into families
// rendered by the given section. Series that no keyword matches stay out of the
// pillar sections and appear only in the highlights table.
func (c *composer) sectionSeries(section string) []string {
	catalog := gri.Standards()
	var out []string
	for _, name := range c.rec.SeriesNames() {
		for _, family := range gri.Classify(name) {
			if topic, ok := catalog.Topic(family); ok && topic.Section == section {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

func rankIssues(issues []esg.MaterialIssue, rule RankRule) []esg.MaterialIssue {
	ranked := append([]esg.MaterialIssue(nil), issues...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankScore(ranked[i], rule) > rankScore(ranked[j], rule)
	})
	return ranked
}

func rankScore(issue esg.MaterialIssue, rule RankRule) float64 {
	switch rule {
	case RankFinancial:
		return issue.Financial
	case RankImpact:
		return issue.Impact
	default:
		return (issue.Financial + issue.Impact) / 2
	}
}

func codeLine(entries []IndexEntry) string {
	if len(entries) == 0 {
		return ""
	}
	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		codes = append(codes, e.Code)
	}
	return strings.Join(codes, ", ")
}

// formatValue renders a numeric value with thousands separators, nothing
// more. The underlying number is never rounded or converted.
func formatValue(v float64) string {
	return humanize.Commaf(v)
}
