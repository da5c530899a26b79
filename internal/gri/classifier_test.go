// File path: internal/gri/classifier_test.go
package gri

import (
	"reflect"
	"testing"
)

func TestClassifyKnownIssues(t *testing.T) {
	cases := []struct {
		name string
		want []string
	}{
		{"기후변화 대응", []string{"GRI 302", "GRI 305"}},
		{"안전보건", []string{"GRI 403"}},
		{"공급망 관리", []string{"GRI 308", "GRI 414"}},
		{"윤리경영", []string{"GRI 205", "GRI 206"}},
		{"Climate Change Response", []string{"GRI 302", "GRI 305"}},
		{"인권 경영", []string{"GRI 406", "GRI 407", "GRI 408", "GRI 409"}},
	}
	for _, tc := range cases {
		got := Classify(tc.name)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("classify %q: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestClassifyUnmappedIssueReturnsEmptySet(t *testing.T) {
	if got := Classify("무관한 이슈"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestClassifyUnionsOverlappingKeywords(t *testing.T) {
	// "기후변화" and "에너지" both match; families union without duplicates.
	got := Classify("기후변화와 에너지 전환")
	want := []string{"GRI 302", "GRI 305"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	first := Classify("기후변화 대응")
	for i := 0; i < 50; i++ {
		if got := Classify("기후변화 대응"); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: got %v, want %v", i, got, first)
		}
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	lower := Classify("supply chain management")
	upper := Classify("SUPPLY CHAIN Management")
	if !reflect.DeepEqual(lower, upper) {
		t.Fatalf("case sensitivity leak: %v vs %v", lower, upper)
	}
	if len(lower) == 0 {
		t.Fatal("expected supply chain keywords to match")
	}
}
