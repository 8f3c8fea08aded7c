// Package model defines core data structures for lanscan.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/user/lanscan/internal/iprange"
)

// Mode selects how the scan range is built.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// ParseMode parses a mode name, ignoring case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAuto:
		return ModeAuto, nil
	case ModeManual:
		return ModeManual, nil
	}
	return "", fmt.Errorf("unknown mode %q (want auto or manual)", s)
}

// Status labels shown for a result.
const (
	StatusOnline  = "Online"
	StatusOffline = "Offline"
)

// ScanResult is the outcome of probing a single address.
type ScanResult struct {
	Address   iprange.IPv4 `json:"address"`
	Hostname  string       `json:"hostname"`
	Reachable bool         `json:"reachable"`
	LatencyMs float64      `json:"latency_ms"`
	// Err holds a probe-internal fault. The address still counts as offline.
	Err      string    `json:"error,omitempty"`
	ProbedAt time.Time `json:"probed_at"`
}

// Status returns StatusOnline or StatusOffline.
func (r ScanResult) Status() string {
	if r.Reachable {
		return StatusOnline
	}
	return StatusOffline
}

// ScanSummary holds the aggregate statistics of a finished scan.
type ScanSummary struct {
	Total             int     `json:"total"`
	OnlineCount       int     `json:"online_count"`
	OfflineCount      int     `json:"offline_count"`
	ErrorCount        int     `json:"error_count"`
	OnlinePercentage  float64 `json:"online_percentage"`
	OfflinePercentage float64 `json:"offline_percentage"`
}

// ScanSession describes one scan run for reporting.
type ScanSession struct {
	Mode       Mode          `json:"mode"`
	Local      iprange.IPv4  `json:"local"`
	Range      iprange.Range `json:"range"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Results    []ScanResult  `json:"results"`
	Summary    ScanSummary   `json:"summary"`
}

// Duration returns how long the scan ran.
func (s *ScanSession) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
