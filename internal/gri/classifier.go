// File path: internal/gri/classifier.go
package gri

import (
	"sort"
	"strings"
)

// keywordFamilies is the closed keyword vocabulary mapping material-issue
// wording to topic-standard families. Matching is substring-based and
// case-insensitive; there is no inference beyond this table.
var keywordFamilies = map[string][]string{
	"기후변화":         {"GRI 302", "GRI 305"},
	"climate":      {"GRI 302", "GRI 305"},
	"탄소":           {"GRI 305"},
	"carbon":       {"GRI 305"},
	"에너지":          {"GRI 302"},
	"energy":       {"GRI 302"},
	"안전":           {"GRI 403"},
	"보건":           {"GRI 403"},
	"safety":       {"GRI 403"},
	"공급망":          {"GRI 308", "GRI 414"},
	"협력사":          {"GRI 308", "GRI 414"},
	"supply chain": {"GRI 308", "GRI 414"},
	"윤리":           {"GRI 205", "GRI 206"},
	"ethics":       {"GRI 205", "GRI 206"},
	"부패":           {"GRI 205"},
	"corruption":   {"GRI 205"},
	"인권":           {"GRI 406", "GRI 407", "GRI 408", "GRI 409"},
	"human rights": {"GRI 406", "GRI 407", "GRI 408", "GRI 409"},
	"물":            {"GRI 303"},
	"수자원":          {"GRI 303"},
	"water":        {"GRI 303"},
	"생물다양성":        {"GRI 304"},
	"biodiversity": {"GRI 304"},
	"폐기물":          {"GRI 306"},
	"waste":        {"GRI 306"},
	"순환":           {"GRI 301", "GRI 306"},
	"경제":           {"GRI 201"},
	"재무":           {"GRI 201"},
	"고용":           {"GRI 401"},
	"인재":           {"GRI 401", "GRI 404"},
	"교육":           {"GRI 404"},
	"다양성":          {"GRI 405"},
	"diversity":    {"GRI 405"},
	"차별":           {"GRI 406"},
	"지역":           {"GRI 413"},
	"community":    {"GRI 413"},
	"품질":           {"GRI 416"},
	"정보":           {"GRI 418"},
	"privacy":      {"GRI 418"},
}

// Classify maps a declared material-issue name to the topic-standard families
// it touches. Multiple keywords may hit the same name; their families union
// into one set. The result is sorted, so identical input always yields
// identical output. An empty result means the issue is unmapped, which the
// assembler reports but does not treat as fatal.
func Classify(issueName string) []string {
	lowered := strings.ToLower(issueName)
	set := make(map[string]struct{})
	for keyword, families := range keywordFamilies {
		if !strings.Contains(lowered, keyword) {
			continue
		}
		for _, f := range families {
			set[f] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
