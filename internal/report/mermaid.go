package report

import (
	"fmt"
	"strings"

	"github.com/user/lanscan/internal/model"
)

// GeneratePieChart creates a Mermaid pie chart of the online/offline split.
func GeneratePieChart(summary model.ScanSummary) string {
	var sb strings.Builder

	sb.WriteString("```mermaid\n")
	sb.WriteString("pie showData\n")
	sb.WriteString("    title Host availability\n")
	sb.WriteString(fmt.Sprintf("    \"Online\" : %.0f\n", summary.OnlinePercentage))
	sb.WriteString(fmt.Sprintf("    \"Offline\" : %.0f\n", summary.OfflinePercentage))
	sb.WriteString("```\n")

	return sb.String()
}
