// Package report generates Markdown reports of finished scans.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/lanscan/internal/model"
	"github.com/user/lanscan/internal/scanner"
	"github.com/user/lanscan/internal/util"
)

// ReportData holds all data for a report.
type ReportData struct {
	GeneratedAt time.Time
	Session     *model.ScanSession

	OnlineHosts []model.ScanResult
	ProbeErrors []model.ScanResult
	Named       int
}

// Generate collects report data for a session.
func Generate(session *model.ScanSession) *ReportData {
	data := &ReportData{
		GeneratedAt: time.Now(),
		Session:     session,
		OnlineHosts: scanner.Online(session.Results),
	}

	for _, r := range session.Results {
		if r.Err != "" {
			data.ProbeErrors = append(data.ProbeErrors, r)
		}
	}
	for _, h := range data.OnlineHosts {
		if h.Hostname != "" {
			data.Named++
		}
	}

	return data
}

// FormatMarkdown renders the report as Markdown.
func FormatMarkdown(data *ReportData) string {
	s := data.Session
	var sb strings.Builder

	sb.WriteString("# Network Scan Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.GeneratedAt.Format("2006-01-02 15:04:05")))

	sb.WriteString("## Scan\n\n")
	sb.WriteString("| Field | Value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Mode | %s |\n", s.Mode))
	sb.WriteString(fmt.Sprintf("| Local address | %s |\n", s.Local))
	sb.WriteString(fmt.Sprintf("| Range | %s |\n", s.Range))
	sb.WriteString(fmt.Sprintf("| Started | %s |\n", s.StartedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n\n", s.Duration().Round(time.Millisecond)))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Addresses scanned: %d\n", s.Summary.Total))
	sb.WriteString(fmt.Sprintf("- Online: %d (%.0f%%)\n", s.Summary.OnlineCount, s.Summary.OnlinePercentage))
	sb.WriteString(fmt.Sprintf("- Offline: %d (%.0f%%)\n", s.Summary.OfflineCount, s.Summary.OfflinePercentage))
	sb.WriteString(fmt.Sprintf("- Online hosts with a name: %d\n", data.Named))
	if len(data.ProbeErrors) > 0 {
		sb.WriteString(fmt.Sprintf("- Probe errors (counted offline): %d\n", len(data.ProbeErrors)))
	}
	sb.WriteString("\n")

	if s.Summary.Total > 0 {
		sb.WriteString(GeneratePieChart(s.Summary))
		sb.WriteString("\n")
	}

	sb.WriteString("## Online Hosts\n\n")
	if len(data.OnlineHosts) == 0 {
		sb.WriteString("_No hosts answered._\n\n")
	} else {
		sb.WriteString("| IP-Address | Hostname | Latency |\n|---|---|---|\n")
		for _, h := range data.OnlineHosts {
			name := h.Hostname
			if name == "" {
				name = "-"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %.1f ms |\n", h.Address, escapeCell(name), h.LatencyMs))
		}
		sb.WriteString("\n")
	}

	if len(data.ProbeErrors) > 0 {
		sb.WriteString("## Probe Errors\n\n")
		sb.WriteString("| IP-Address | Error |\n|---|---|\n")
		for _, r := range data.ProbeErrors {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", r.Address, escapeCell(r.Err)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteMarkdownFile writes the report into dir under a timestamped name and
// returns the path.
func WriteMarkdownFile(data *ReportData, dir string) (string, error) {
	if err := util.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}

	name := fmt.Sprintf("lanscan-%s.md", data.GeneratedAt.Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile writes the report to path.
func WriteFile(path string, data *ReportData) error {
	if err := os.WriteFile(path, []byte(FormatMarkdown(data)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
