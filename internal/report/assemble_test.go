// File path: internal/report/assemble_test.go
package report

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/esg"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/gri"
)

func scenarioRecord() esg.Record {
	return esg.Record{
		CompanyName:  "한빛건설",
		ReportYear:   2025,
		CEOMessage:   "지속가능한 성장을 위해 최선을 다하겠습니다.",
		ESGStrategy:  "2030 탄소중립 로드맵과 안전 최우선 경영.",
		EnvPolicy:    "전 사업장 에너지 효율화 및 재생에너지 전환.",
		SocialPolicy: "무재해 사업장 실현을 위한 안전보건 관리체계 운영.",
		GovStructure: "이사회 산하 ESG 위원회가 분기별로 성과를 감독.",
		MaterialIssues: []esg.MaterialIssue{
			{Name: "기후변화 대응", Financial: 90, Impact: 85},
			{Name: "안전보건", Financial: 88, Impact: 95},
		},
		Metrics: map[string][]esg.MetricPoint{
			"에너지 사용량":   {{Year: 2023, Value: 41250}, {Year: 2024, Value: 39800}},
			"안전교육 이수율": {{Year: 2023, Value: 92}, {Year: 2024, Value: 97}},
		},
	}
}

var codePattern = regexp.MustCompile(`\b\d{1,3}-\d{1,2}\b`)

func TestAssembleScenario(t *testing.T) {
	doc, diags, err := Assemble(scenarioRecord(), Options{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected empty diagnostics, got %+v", diags)
	}

	codes := indexCodes(doc.Index)
	for _, want := range []string{"2-1", "2-22", "2-29", "302-1", "305-1", "403-1"} {
		if _, ok := codes[want]; !ok {
			t.Fatalf("expected %s in content index", want)
		}
	}
	if _, ok := codes["205-1"]; ok {
		t.Fatal("ethics indicators must not appear for climate/safety issues")
	}

	// Materiality ranks by descending mean of the two scores: 안전보건
	// (91.5) ahead of 기후변화 대응 (87.5).
	safetyRow := strings.Index(doc.Markdown, "| 1 | 안전보건 |")
	climateRow := strings.Index(doc.Markdown, "| 2 | 기후변화 대응 |")
	if safetyRow == -1 || climateRow == -1 || safetyRow > climateRow {
		t.Fatalf("materiality rows misordered:\n%s", doc.Markdown)
	}
	if !strings.Contains(doc.Markdown, "GRI 302, GRI 305") {
		t.Fatal("climate issue row must carry its topic-standard families")
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	first, firstDiags, err := Assemble(scenarioRecord(), Options{})
	if err != nil {
		t.Fatalf("first assemble: %v", err)
	}
	second, secondDiags, err := Assemble(scenarioRecord(), Options{})
	if err != nil {
		t.Fatalf("second assemble: %v", err)
	}
	if first.Markdown != second.Markdown {
		t.Fatal("documents differ between identical runs")
	}
	if !reflect.DeepEqual(first.Index, second.Index) {
		t.Fatal("content indexes differ between identical runs")
	}
	if !reflect.DeepEqual(firstDiags, secondDiags) {
		t.Fatal("diagnostics differ between identical runs")
	}
}

func TestAssembleCompletenessInvariant(t *testing.T) {
	rec := scenarioRecord()
	rec.MaterialIssues = append(rec.MaterialIssues, esg.MaterialIssue{Name: "윤리경영", Financial: 70, Impact: 60})
	doc, _, err := Assemble(rec, Options{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	indexed := indexCodes(doc.Index)
	// Every code cited anywhere in the document resolves through the index.
	for _, match := range codePattern.FindAllString(doc.Markdown, -1) {
		if _, ok := indexed[match]; !ok {
			t.Fatalf("code %s cited in prose but absent from the content index", match)
		}
	}
	// Every index entry's code appears in the document and its section was
	// actually composed.
	for _, e := range doc.Index {
		if !strings.Contains(doc.Markdown, e.Code) {
			t.Fatalf("index entry %s never cited in the document", e.Code)
		}
		if !strings.Contains(doc.Markdown, "## "+e.Section) {
			t.Fatalf("index entry %s references uncomposed section %q", e.Code, e.Section)
		}
	}
}

func TestAssembleRequiredFieldGate(t *testing.T) {
	rec := scenarioRecord()
	rec.MaterialIssues = nil
	doc, diags, err := Assemble(rec, Options{})
	if doc != nil || diags != nil {
		t.Fatal("no document may be produced on validation failure")
	}
	var verr *esg.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *esg.ValidationError, got %v", err)
	}
	found := false
	for _, f := range verr.Missing {
		if f == "material_issues" {
			found = true
		}
	}
	if !found {
		t.Fatalf("validation error must name material_issues: %+v", verr)
	}
}

func TestAssemblePlaceholderBehavior(t *testing.T) {
	rec := scenarioRecord()
	rec.EnvPolicy = ""
	doc, diags, err := Assemble(rec, Options{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	envSection := sectionBlock(t, doc.Markdown, gri.SectionEnvironmental)
	if !strings.Contains(envSection, Placeholder) {
		t.Fatalf("environmental section must carry the %q placeholder:\n%s", Placeholder, envSection)
	}
	if !hasDiagnostic(diags, DiagPlaceholderUsed, "env_policy") {
		t.Fatalf("expected placeholder_used diagnostic for env_policy, got %+v", diags)
	}
}

func TestAssembleReportsUnmappedIssues(t *testing.T) {
	rec := scenarioRecord()
	rec.MaterialIssues = append(rec.MaterialIssues, esg.MaterialIssue{Name: "무관한 이슈", Financial: 40, Impact: 30})
	doc, diags, err := Assemble(rec, Options{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !hasDiagnostic(diags, DiagUnmappedIssue, "무관한 이슈") {
		t.Fatalf("expected unmapped_issue diagnostic, got %+v", diags)
	}
	// The issue still renders in the materiality table, without topic codes.
	if !strings.Contains(doc.Markdown, "| 무관한 이슈 |") {
		t.Fatal("unmapped issue missing from materiality table")
	}
}

func TestAssembleRankRuleConfigurable(t *testing.T) {
	rec := scenarioRecord()
	doc, _, err := Assemble(rec, Options{Rank: RankFinancial})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	// By financial score alone 기후변화 대응 (90) outranks 안전보건 (88).
	climateRow := strings.Index(doc.Markdown, "| 1 | 기후변화 대응 |")
	safetyRow := strings.Index(doc.Markdown, "| 2 | 안전보건 |")
	if climateRow == -1 || safetyRow == -1 || climateRow > safetyRow {
		t.Fatalf("financial ranking misordered:\n%s", doc.Markdown)
	}
}

func TestAssembleMetricsRenderChronologically(t *testing.T) {
	rec := scenarioRecord()
	rec.Metrics["에너지 사용량"] = []esg.MetricPoint{{Year: 2024, Value: 39800}, {Year: 2023, Value: 41250}}
	doc, _, err := Assemble(rec, Options{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	envSection := sectionBlock(t, doc.Markdown, gri.SectionEnvironmental)
	first := strings.Index(envSection, "| 2023 | 41,250 |")
	second := strings.Index(envSection, "| 2024 | 39,800 |")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("metric rows not chronological:\n%s", envSection)
	}
}

func TestAssembleIntegrityErrorOnTruncatedLayout(t *testing.T) {
	layout := Layout{Sections: []SectionPage{{Name: gri.SectionOverview, Page: 3}}}
	_, _, err := Assemble(scenarioRecord(), Options{Layout: layout})
	var ierr *IndexIntegrityError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *IndexIntegrityError, got %v", err)
	}
}

func sectionBlock(t *testing.T, markdown, section string) string {
	t.Helper()
	start := strings.Index(markdown, "## "+section)
	if start == -1 {
		t.Fatalf("section %q not found in document", section)
	}
	rest := markdown[start+3:]
	if end := strings.Index(rest, "\n## "); end != -1 {
		return markdown[start : start+3+end]
	}
	return markdown[start:]
}

func hasDiagnostic(diags []Diagnostic, kind, subject string) bool {
	for _, d := range diags {
		if d.Kind == kind && d.Subject == subject {
			return true
		}
	}
	return false
}
