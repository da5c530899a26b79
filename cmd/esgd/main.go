// File path: cmd/esgd/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/api"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/common"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/esg"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/report"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/store"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug("esgd: .env file not loaded", "error", err)
	} else {
		logger.Info("esgd: environment loaded from .env")
	}

	addr := flag.String("addr", ":8084", "listen address")
	storePath := flag.String("store", defaultStorePath(), "path to the SQLite run-context database")
	uploadRoot := flag.String("uploads", "", "directory uploaded evidence artifacts are stored under")
	layoutPath := flag.String("layout", strings.TrimSpace(os.Getenv("ESG_LAYOUT_FILE")), "optional YAML section layout override")
	rankRule := flag.String("rank", strings.TrimSpace(os.Getenv("ESG_RANK_RULE")), "materiality ranking rule: average, financial or impact")
	render := flag.Bool("render", false, "render one report from a data file and exit instead of serving")
	dataPath := flag.String("data", "", "input data file for -render (discovered as esg_data.json when empty)")
	outPath := flag.String("out", "report.md", "output path for -render")
	flag.Parse()

	opts := report.Options{}
	if trimmed := strings.TrimSpace(*layoutPath); trimmed != "" {
		layout, err := report.LoadLayout(trimmed)
		if err != nil {
			logger.Error("esgd: layout load failed", "path", trimmed, "error", err)
			fmt.Println("layout error:", err)
			os.Exit(1)
		}
		opts.Layout = layout
	}
	switch rule := report.RankRule(strings.TrimSpace(*rankRule)); rule {
	case "", report.RankAverage, report.RankFinancial, report.RankImpact:
		opts.Rank = rule
	default:
		logger.Error("esgd: unknown rank rule", "rule", rule)
		fmt.Println("rank rule error: unknown rule", rule)
		os.Exit(1)
	}

	if *render {
		if err := renderOnce(*dataPath, *outPath, opts); err != nil {
			logger.Error("esgd: render failed", "error", err)
			fmt.Println("render error:", err)
			os.Exit(1)
		}
		return
	}

	st, err := store.Open(*storePath)
	if err != nil {
		logger.Error("esgd: context store open failed", "path", *storePath, "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer st.Close()

	cfg := api.DefaultConfig()
	cfg.Layout = opts.Layout
	cfg.Rank = opts.Rank
	if trimmed := strings.TrimSpace(*uploadRoot); trimmed != "" {
		cfg.UploadRoot = trimmed
	}
	server, err := api.NewServer(st, &cfg)
	if err != nil {
		logger.Error("esgd: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("esgd: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("esgd: server stopped", "error", err)
		fmt.Println("server stopped:", err)
		os.Exit(1)
	}
}

// renderOnce assembles a single report from a payload file and writes the
// markdown artifact, the script-style path around the HTTP surface.
func renderOnce(dataPath, outPath string, opts report.Options) error {
	logger := common.Logger()
	path := strings.TrimSpace(dataPath)
	if path == "" {
		found, err := esg.FindDataFile(".", esg.DefaultDataFile)
		if err != nil {
			return err
		}
		path = found
		logger.Info("esgd: data file discovered", "path", path)
	}
	rec, err := esg.LoadFile(path)
	if err != nil {
		return err
	}
	doc, diags, err := report.Assemble(rec, opts)
	if err != nil {
		return err
	}
	for _, d := range diags {
		logger.Warn("esgd: diagnostic", "kind", d.Kind, "subject", d.Subject, "detail", d.Detail)
	}
	if err := os.WriteFile(outPath, []byte(doc.Markdown), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("esgd: report written", "path", outPath, "sections", len(doc.Sections), "diagnostics", len(diags))
	fmt.Printf("Report written to %s (%d diagnostics)\n", outPath, len(diags))
	return nil
}

func defaultStorePath() string {
	return filepath.Join("data", "context.db")
}
