// File path: internal/esg/record.go

// Package esg holds the normalized in-memory representation of all report
// inputs: company facts, policies, material issues and yearly metric series.
// It carries no assembly logic; every other component consumes it.
package esg

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// MaterialIssue is a sustainability topic the organization identified as
// significant, scored 0-100 on both the financial and the impact axis.
type MaterialIssue struct {
	Name      string  `json:"name"`
	Financial float64 `json:"financial"`
	Impact    float64 `json:"impact"`
}

// MetricPoint is one yearly observation of a KPI series. Values pass through
// to the rendered report verbatim; no aggregation or unit conversion happens.
type MetricPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Record is the full data record one report run is assembled from. Unknown
// payload fields are ignored during decoding; the required subset is
// enumerated by MissingRequiredFields.
type Record struct {
	CompanyName  string `json:"company_name"`
	ReportYear   int    `json:"report_year"`
	CEOMessage   string `json:"ceo_message,omitempty"`
	ESGStrategy  string `json:"esg_strategy,omitempty"`
	EnvPolicy    string `json:"env_policy,omitempty"`
	SocialPolicy string `json:"social_policy,omitempty"`
	GovStructure string `json:"gov_structure,omitempty"`

	MaterialIssues []MaterialIssue          `json:"material_issues"`
	Metrics        map[string][]MetricPoint `json:"metrics,omitempty"`
}

// RequiredFields are the payload keys assembly refuses to proceed without.
var RequiredFields = []string{"company_name", "report_year", "material_issues"}

// ParsePayload decodes a raw JSON payload into a Record. Extra fields are
// dropped silently; structural type mismatches are errors.
func ParsePayload(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parse payload: %w", err)
	}
	return rec, nil
}

// MissingRequiredFields reports which required fields the record still owes.
// Front ends drive their prompt loops off this without the engine knowing
// anything about terminals or forms.
func MissingRequiredFields(rec Record) []string {
	var missing []string
	if strings.TrimSpace(rec.CompanyName) == "" {
		missing = append(missing, "company_name")
	}
	if rec.ReportYear == 0 {
		missing = append(missing, "report_year")
	}
	if len(rec.MaterialIssues) == 0 {
		missing = append(missing, "material_issues")
	}
	return missing
}

// ValidationError names every missing required field and every invariant
// violation found in a payload. It is fatal: assembly does not proceed.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, "; "))
	}
	if len(parts) == 0 {
		return "validation error"
	}
	return strings.Join(parts, "; ")
}

// Validate checks the record against the data-model invariants: the required
// fields are present, every issue score sits within [0,100], every metric
// series has at least one point, and the year sets of all series agree so
// trend tables align.
func (r Record) Validate() error {
	verr := &ValidationError{Missing: MissingRequiredFields(r)}

	for _, issue := range r.MaterialIssues {
		name := issue.Name
		if strings.TrimSpace(name) == "" {
			verr.Invalid = append(verr.Invalid, "material_issues: issue with empty name")
			continue
		}
		if issue.Financial < 0 || issue.Financial > 100 {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("issue %q: financial score %.4g outside [0,100]", name, issue.Financial))
		}
		if issue.Impact < 0 || issue.Impact > 100 {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("issue %q: impact score %.4g outside [0,100]", name, issue.Impact))
		}
	}

	var refSeries string
	var refYears []int
	for _, series := range sortedSeriesNames(r.Metrics) {
		points := r.Metrics[series]
		if len(points) == 0 {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("metric series %q has no entries", series))
			continue
		}
		years := seriesYears(points)
		if refYears == nil {
			refSeries, refYears = series, years
			continue
		}
		if !equalYears(refYears, years) {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("metric series %q years do not match series %q", series, refSeries))
		}
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return verr
	}
	return nil
}

// Normalized returns a copy of the record with metric points in chronological
// order. The original record is left untouched; assembly freezes this copy.
func (r Record) Normalized() Record {
	out := r
	out.MaterialIssues = append([]MaterialIssue(nil), r.MaterialIssues...)
	if len(r.Metrics) > 0 {
		out.Metrics = make(map[string][]MetricPoint, len(r.Metrics))
		for name, points := range r.Metrics {
			sorted := append([]MetricPoint(nil), points...)
			sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })
			out.Metrics[name] = sorted
		}
	}
	return out
}

// SeriesNames returns the metric series names in stable sorted order.
func (r Record) SeriesNames() []string {
	return sortedSeriesNames(r.Metrics)
}

func sortedSeriesNames(metrics map[string][]MetricPoint) []string {
	if len(metrics) == 0 {
		return nil
	}
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func seriesYears(points []MetricPoint) []int {
	years := make([]int, 0, len(points))
	for _, p := range points {
		years = append(years, p.Year)
	}
	sort.Ints(years)
	return years
}

func equalYears(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
