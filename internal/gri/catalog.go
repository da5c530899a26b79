// File path: internal/gri/catalog.go

// Package gri carries the GRI Standards 2021 reference data: the universal
// disclosures (GRI 1/2/3), the topic-standard families with their indicator
// disclosures, and the keyword mapping from declared material issues to
// families. The catalog is built once at first use and read-only afterwards.
package gri

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Report section names the catalog assigns disclosures to. These are the six
// sections the composer produces, in presentation order.
const (
	SectionOverview      = "Overview"
	SectionMateriality   = "Materiality"
	SectionEnvironmental = "Environmental"
	SectionSocial        = "Social"
	SectionGovernance    = "Governance"
	SectionAppendices    = "Appendices"
)

// SectionOrder lists the composed sections in their fixed document order.
var SectionOrder = []string{
	SectionOverview,
	SectionMateriality,
	SectionEnvironmental,
	SectionSocial,
	SectionGovernance,
	SectionAppendices,
}

// Standard family identifiers. Topic families use their "GRI NNN" code.
const (
	FamilyGeneral  = "GRI 2"
	FamilyMaterial = "GRI 3"
)

// Disclosure is one immutable reporting item: its code ("305-1"), the family
// that owns it, its Korean title and the report section it defaults to.
type Disclosure struct {
	Code    string `json:"code"`
	Family  string `json:"family"`
	Title   string `json:"title"`
	Section string `json:"section"`
}

// Topic groups the indicator disclosures of one topic-standard family and
// remembers which report section the family renders into.
type Topic struct {
	Family     string
	Name       string
	Section    string
	Indicators []Disclosure
}

// Catalog is the process-wide disclosure table. Obtain it via Standards();
// never mutate it after initialization.
type Catalog struct {
	principles []string
	universal  []Disclosure
	topics     map[string]Topic
	families   []string
}

var (
	catalog     *Catalog
	catalogOnce sync.Once
)

// Standards returns the GRI 2021 catalog, building it on first call.
func Standards() *Catalog {
	catalogOnce.Do(func() {
		catalog = buildCatalog()
	})
	return catalog
}

// Principles lists the GRI 1 reporting principles.
func (c *Catalog) Principles() []string {
	return append([]string(nil), c.principles...)
}

// Universal returns the GRI 2 and GRI 3 disclosures every report carries
// regardless of material-issue classification, in code order.
func (c *Catalog) Universal() []Disclosure {
	return append([]Disclosure(nil), c.universal...)
}

// Topic looks up a topic-standard family by its "GRI NNN" code.
func (c *Catalog) Topic(family string) (Topic, bool) {
	t, ok := c.topics[family]
	return t, ok
}

// Families lists every known topic-standard family code in ascending order.
func (c *Catalog) Families() []string {
	return append([]string(nil), c.families...)
}

// FamilyRank orders standard families for presentation:
// 2 → 3 → 200 → 300 → 400 → Sector.
func FamilyRank(family string) int {
	switch family {
	case FamilyGeneral:
		return 0
	case FamilyMaterial:
		return 1
	}
	series := strings.TrimPrefix(family, "GRI ")
	if n, err := strconv.Atoi(series); err == nil {
		switch {
		case n >= 200 && n < 300:
			return 2
		case n >= 300 && n < 400:
			return 3
		case n >= 400 && n < 500:
			return 4
		}
	}
	return 5 // sector standards trail everything numbered
}

// CompareCodes orders two disclosure codes numerically: first by the series
// number before the dash, then by the indicator number after it.
func CompareCodes(a, b string) int {
	amaj, amin := splitCode(a)
	bmaj, bmin := splitCode(b)
	if amaj != bmaj {
		if amaj < bmaj {
			return -1
		}
		return 1
	}
	if amin != bmin {
		if amin < bmin {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func splitCode(code string) (int, int) {
	major, minor, _ := strings.Cut(code, "-")
	mj, _ := strconv.Atoi(strings.TrimSpace(major))
	mn, _ := strconv.Atoi(strings.TrimSpace(minor))
	return mj, mn
}

func buildCatalog() *Catalog {
	c := &Catalog{
		principles: []string{
			"정확성", "균형", "명확성", "비교가능성",
			"완전성", "지속가능성 맥락", "적시성", "검증가능성",
		},
		topics: make(map[string]Topic),
	}

	general := []struct {
		code, title, section string
	}{
		{"2-1", "조직 세부 정보", SectionOverview},
		{"2-2", "지속가능성 보고 주체", SectionOverview},
		{"2-3", "보고 기간·빈도·연락처", SectionOverview},
		{"2-6", "활동·가치사슬", SectionOverview},
		{"2-7", "근로자", SectionSocial},
		{"2-9", "거버넌스 구조", SectionGovernance},
		{"2-10", "거버넌스 기구 임명", SectionGovernance},
		{"2-12", "임팩트 관리 감독", SectionGovernance},
		{"2-14", "지속가능성 보고 역할", SectionGovernance},
		{"2-22", "지속가능발전 전략", SectionOverview},
		{"2-23", "정책 선언", SectionGovernance},
		{"2-25", "부정적 임팩트 개선", SectionSocial},
		{"2-26", "조언·우려 제기 메커니즘", SectionGovernance},
		{"2-27", "법규 준수", SectionGovernance},
		{"2-29", "이해관계자 참여", SectionMateriality},
	}
	for _, d := range general {
		c.universal = append(c.universal, Disclosure{
			Code: d.code, Family: FamilyGeneral, Title: d.title, Section: d.section,
		})
	}

	material := []struct {
		code, title string
	}{
		{"3-1", "중대 주제 결정 프로세스"},
		{"3-2", "중대 주제 목록"},
		{"3-3", "중대 주제 관리"},
	}
	for _, d := range material {
		c.universal = append(c.universal, Disclosure{
			Code: d.code, Family: FamilyMaterial, Title: d.title, Section: SectionMateriality,
		})
	}
	sort.Slice(c.universal, func(i, j int) bool {
		return CompareCodes(c.universal[i].Code, c.universal[j].Code) < 0
	})

	topics := []struct {
		family, name, section string
		indicators            [][2]string
	}{
		{"GRI 201", "경제 성과", SectionGovernance, [][2]string{
			{"201-1", "경제가치 창출"}, {"201-2", "기후변화 재무영향"},
		}},
		{"GRI 205", "반부패", SectionGovernance, [][2]string{
			{"205-1", "부패 위험"}, {"205-2", "반부패 정책"}, {"205-3", "부패 사건"},
		}},
		{"GRI 206", "경쟁저해", SectionGovernance, [][2]string{
			{"206-1", "경쟁저해행위"},
		}},
		{"GRI 301", "원재료", SectionEnvironmental, [][2]string{
			{"301-1", "원재료 사용"}, {"301-2", "재생 원재료"},
		}},
		{"GRI 302", "에너지", SectionEnvironmental, [][2]string{
			{"302-1", "에너지 소비"}, {"302-3", "에너지 집약도"}, {"302-4", "에너지 감축"},
		}},
		{"GRI 303", "물", SectionEnvironmental, [][2]string{
			{"303-1", "물 상호작용"}, {"303-3", "취수"}, {"303-5", "물 소비"},
		}},
		{"GRI 304", "생물다양성", SectionEnvironmental, [][2]string{
			{"304-1", "생물다양성 서식지"}, {"304-2", "생물다양성 영향"},
		}},
		{"GRI 305", "배출", SectionEnvironmental, [][2]string{
			{"305-1", "직접 배출 (Scope 1)"}, {"305-2", "간접 배출 (Scope 2)"},
			{"305-3", "기타 간접 배출 (Scope 3)"}, {"305-4", "배출 집약도"}, {"305-5", "배출 감축"},
		}},
		{"GRI 306", "폐기물", SectionEnvironmental, [][2]string{
			{"306-1", "폐기물 발생"}, {"306-3", "발생한 폐기물"},
		}},
		{"GRI 308", "공급업체 환경", SectionEnvironmental, [][2]string{
			{"308-1", "환경 심사 공급업체"}, {"308-2", "공급망 환경영향"},
		}},
		{"GRI 401", "고용", SectionSocial, [][2]string{
			{"401-1", "신규채용·이직"}, {"401-3", "육아휴직"},
		}},
		{"GRI 403", "안전보건", SectionSocial, [][2]string{
			{"403-1", "안전보건 시스템"}, {"403-2", "위험 식별"}, {"403-9", "업무 상해"},
		}},
		{"GRI 404", "교육", SectionSocial, [][2]string{
			{"404-1", "평균 훈련시간"}, {"404-2", "역량 강화"},
		}},
		{"GRI 405", "다양성", SectionSocial, [][2]string{
			{"405-1", "거버넌스 구성"}, {"405-2", "기본급 비율"},
		}},
		{"GRI 406", "차별금지", SectionSocial, [][2]string{
			{"406-1", "차별 사건"},
		}},
		{"GRI 407", "결사의 자유", SectionSocial, [][2]string{
			{"407-1", "결사 침해 위험"},
		}},
		{"GRI 408", "아동노동", SectionSocial, [][2]string{
			{"408-1", "아동노동 위험"},
		}},
		{"GRI 409", "강제노동", SectionSocial, [][2]string{
			{"409-1", "강제노동 위험"},
		}},
		{"GRI 413", "지역사회", SectionSocial, [][2]string{
			{"413-1", "지역사회 참여"},
		}},
		{"GRI 414", "공급업체 사회", SectionSocial, [][2]string{
			{"414-1", "사회 심사 공급업체"}, {"414-2", "공급망 사회영향"},
		}},
		{"GRI 416", "고객 안전", SectionSocial, [][2]string{
			{"416-1", "제품 안전 평가"},
		}},
		{"GRI 418", "개인정보", SectionSocial, [][2]string{
			{"418-1", "개인정보 위반"},
		}},
	}
	for _, t := range topics {
		topic := Topic{Family: t.family, Name: t.name, Section: t.section}
		for _, ind := range t.indicators {
			topic.Indicators = append(topic.Indicators, Disclosure{
				Code: ind[0], Family: t.family, Title: ind[1], Section: t.section,
			})
		}
		c.topics[t.family] = topic
		c.families = append(c.families, t.family)
	}
	sort.Strings(c.families)
	return c
}
