// File path: internal/api/types.go
package api

import (
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/common"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/report"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/store"
)

type submitDataResponse struct {
	Status  string   `json:"status"`
	Stored  int      `json:"stored"`
	Missing []string `json:"missing_required_fields,omitempty"`
}

type uploadArtifactResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
}

type generateReportResponse struct {
	Document    *report.Document    `json:"document"`
	Diagnostics []report.Diagnostic `json:"diagnostics"`
}

type validationErrorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing_required_fields,omitempty"`
	Invalid []string `json:"invalid_fields,omitempty"`
}

type contextResponse struct {
	Fields    map[string]interface{} `json:"fields"`
	Artifacts []store.Artifact       `json:"artifacts"`
}

type logsResponse struct {
	Entries []common.LogEntry `json:"entries"`
}
