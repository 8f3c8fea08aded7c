package scanner

import (
	"github.com/user/lanscan/internal/model"
)

// Summarize computes online/offline statistics. The online share is truncated
// toward zero and the offline share is its complement, so the two add up to
// exactly 100. An empty result set yields zero for both.
func Summarize(results []model.ScanResult) model.ScanSummary {
	s := model.ScanSummary{Total: len(results)}
	for _, r := range results {
		if r.Reachable {
			s.OnlineCount++
		}
		if r.Err != "" {
			s.ErrorCount++
		}
	}
	s.OfflineCount = s.Total - s.OnlineCount

	if s.Total == 0 {
		return s
	}

	online := s.OnlineCount * 100 / s.Total
	s.OnlinePercentage = float64(online)
	s.OfflinePercentage = float64(100 - online)
	return s
}

// Online returns the reachable results in scan order.
func Online(results []model.ScanResult) []model.ScanResult {
	var out []model.ScanResult
	for _, r := range results {
		if r.Reachable {
			out = append(out, r)
		}
	}
	return out
}

// Collector is an append-only store of results for one scan session.
type Collector struct {
	results []model.ScanResult
}

// NewCollector creates a collector sized for n results.
func NewCollector(n int) *Collector {
	return &Collector{results: make([]model.ScanResult, 0, n)}
}

// Add appends a result.
func (c *Collector) Add(r model.ScanResult) {
	c.results = append(c.results, r)
}

// Len returns how many results have been collected.
func (c *Collector) Len() int {
	return len(c.results)
}

// OnlineCount returns how many collected results are reachable.
func (c *Collector) OnlineCount() int {
	n := 0
	for _, r := range c.results {
		if r.Reachable {
			n++
		}
	}
	return n
}

// Results returns the collected results in order.
func (c *Collector) Results() []model.ScanResult {
	return c.results
}

// Summary summarizes the collected results.
func (c *Collector) Summary() model.ScanSummary {
	return Summarize(c.results)
}
