package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/lanscan/internal/model"
	"github.com/user/lanscan/internal/scanner"
)

const (
	addrWidth     = 15
	hostnameWidth = 36
	chartWidth    = 60
)

// RenderResults renders the final view: a rule, the online hosts, and the
// online/offline breakdown.
func RenderResults(results []model.ScanResult, summary model.ScanSummary) string {
	var sb strings.Builder

	sb.WriteString(renderRule("Results", chartWidth+4))
	sb.WriteString("\n\n")

	if summary.Total == 0 {
		sb.WriteString(DimStyle.Render("No addresses were scanned."))
		sb.WriteString("\n")
		return sb.String()
	}

	online := scanner.Online(results)
	if len(online) == 0 {
		sb.WriteString(DimStyle.Render("No hosts answered."))
	} else {
		sb.WriteString(renderTable(online, false))
	}
	sb.WriteString("\n\n")

	sb.WriteString(RenderBreakdown(summary.OnlinePercentage, summary.OfflinePercentage, chartWidth))
	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render(fmt.Sprintf("%d of %d addresses online", summary.OnlineCount, summary.Total)))
	if summary.ErrorCount > 0 {
		sb.WriteString(DimStyle.Render(fmt.Sprintf(", %d probe errors (see log)", summary.ErrorCount)))
	}
	sb.WriteString("\n")

	return sb.String()
}

func renderRule(title string, width int) string {
	label := " " + title + " "
	side := (width - lipgloss.Width(label)) / 2
	if side < 2 {
		side = 2
	}
	line := strings.Repeat("─", side)
	return RuleStyle.Render(line + label + line)
}

// renderTable draws the IP-Address / Hostname / Status table. cropped adds a
// marker row showing that earlier rows are hidden.
func renderTable(results []model.ScanResult, cropped bool) string {
	var rows []string
	rows = append(rows, TableHeaderStyle.Render(fmt.Sprintf("%-*s  %-*s  %s",
		addrWidth, "IP-Address", hostnameWidth, "Hostname", "Status")))
	rows = append(rows, strings.Repeat("─", addrWidth+hostnameWidth+11))

	if cropped {
		rows = append(rows, DimStyle.Render("..."))
	}

	for _, r := range results {
		rows = append(rows, fmt.Sprintf("%-*s  %-*s  %s",
			addrWidth, r.Address.String(),
			hostnameWidth, truncate(r.Hostname, hostnameWidth),
			RenderStatus(r.Reachable)))
	}

	return TableStyle.Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
