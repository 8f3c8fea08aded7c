package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/user/lanscan/internal/iprange"
	"github.com/user/lanscan/internal/model"
	"github.com/user/lanscan/internal/probes"
	"github.com/user/lanscan/internal/report"
	"github.com/user/lanscan/internal/scanner"
	"github.com/user/lanscan/internal/tui"
	"github.com/user/lanscan/internal/util"
)

var (
	scanMode       string
	scanStart      string
	scanEnd        string
	scanYes        bool
	scanPlain      bool
	scanTimeout    time.Duration
	scanIface      string
	scanReport     string
	scanSaveReport bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the local /24 network",
	Long: `Scan the local /24 network for hosts that answer a ping.

In auto mode the whole /24 around this machine's address is scanned.
In manual mode only the last octets of the start and stop addresses are
used; the first three octets always come from this machine's address.

Missing answers are asked for interactively. When stdout is not a
terminal (or with --plain) nothing is asked and results are streamed as
plain text.

Examples:
  lanscan scan
  lanscan scan --mode auto --yes
  lanscan scan --mode manual --start 192.168.1.10 --end 192.168.1.50
  lanscan scan --plain --timeout 100ms --report -`,
	RunE: runScan,
}

func init() {
	addScanFlags(scanCmd)
}

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&scanMode, "mode", "m", "",
		"Scan mode: auto or manual (prompted when empty)")
	cmd.Flags().StringVar(&scanStart, "start", "",
		"Start address for manual mode")
	cmd.Flags().StringVar(&scanEnd, "end", "",
		"Stop address for manual mode")
	cmd.Flags().BoolVarP(&scanYes, "yes", "y", false,
		"Skip the confirmation and exit prompts")
	cmd.Flags().BoolVar(&scanPlain, "plain", false,
		"Plain streaming output, no prompts")
	cmd.Flags().DurationVarP(&scanTimeout, "timeout", "t", util.DefaultProbeTimeout,
		"Ping timeout per address")
	cmd.Flags().StringVarP(&scanIface, "interface", "i", "",
		"Use the address of this network interface")
	cmd.Flags().StringVarP(&scanReport, "report", "o", "",
		"Write a Markdown report to this file (- for stdout)")
	cmd.Flags().BoolVar(&scanSaveReport, "save-report", false,
		"Write a Markdown report to the report directory")
}

func runScan(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("timeout") {
		cfg.ProbeTimeout = scanTimeout
	}
	if scanIface != "" {
		cfg.Interface = scanIface
	}

	resolver := probes.NewLocalResolver(cfg.Interface)
	engine := scanner.NewEngine(probes.NewDefaultHostProbe(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		session *model.ScanSession
		err     error
	)
	if scanPlain || !isTerminal(os.Stdout) {
		session, err = runPlain(ctx, os.Stdout, resolver, engine)
		if err != nil {
			return err
		}
	} else {
		app := tui.NewApp(cfg, resolver, engine, tui.NewPrompter(nil, nil), os.Stdout)
		session, err = app.Run(ctx, tui.Options{
			Mode:      scanMode,
			Start:     scanStart,
			End:       scanEnd,
			AssumeYes: scanYes,
		})
		if err != nil {
			util.Error("Scan failed: %v", err)
			return errReported
		}
	}

	if session == nil {
		return nil
	}
	return writeReport(session)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runPlain scans without prompts and prints one line per address.
func runPlain(ctx context.Context, out io.Writer, resolver tui.LocalResolver, engine *scanner.Engine) (*model.ScanSession, error) {
	modeName := scanMode
	if modeName == "" {
		modeName = cfg.DefaultMode
	}
	mode, err := model.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	local, err := resolver.Resolve()
	if err != nil {
		return nil, err
	}

	plan, err := buildPlan(mode, local)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Local address: %s\n", local)
	fmt.Fprintf(out, "Scanning %s (%d addresses, timeout %s)\n\n", plan.Range, plan.Range.Count(), cfg.ProbeTimeout)
	fmt.Fprintf(out, "%-15s  %-36s  %s\n", "IP-Address", "Hostname", "Status")

	session := &model.ScanSession{
		Mode:      plan.Mode,
		Local:     plan.Local,
		Range:     plan.Range,
		StartedAt: time.Now(),
	}
	session.Results = engine.Run(ctx, plan.Range, plan.Local, func(r model.ScanResult) {
		fmt.Fprintf(out, "%-15s  %-36s  %s\n", r.Address, r.Hostname, r.Status())
	})
	session.FinishedAt = time.Now()
	session.Summary = scanner.Summarize(session.Results)

	s := session.Summary
	fmt.Fprintf(out, "\nOnline: %d (%.0f%%)  Offline: %d (%.0f%%)  Total: %d\n",
		s.OnlineCount, s.OnlinePercentage, s.OfflineCount, s.OfflinePercentage, s.Total)
	if s.ErrorCount > 0 {
		fmt.Fprintf(out, "Probe errors: %d (see log)\n", s.ErrorCount)
	}

	if err := ctx.Err(); err != nil {
		return session, fmt.Errorf("scan interrupted: %w", err)
	}
	return session, nil
}

func buildPlan(mode model.Mode, local iprange.IPv4) (scanner.Plan, error) {
	if mode == model.ModeAuto {
		return scanner.PlanAuto(local), nil
	}
	if scanStart == "" || scanEnd == "" {
		return scanner.Plan{}, errors.New("manual mode needs --start and --end without a terminal")
	}
	return scanner.PlanManual(local, scanStart, scanEnd, cfg.StrictManual)
}

func writeReport(session *model.ScanSession) error {
	if scanReport == "" && !scanSaveReport {
		return nil
	}

	data := report.Generate(session)

	if scanSaveReport {
		path, err := report.WriteMarkdownFile(data, cfg.ReportOutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report saved to: %s\n", path)
	}

	switch scanReport {
	case "":
	case "-":
		fmt.Println(report.FormatMarkdown(data))
	default:
		if err := report.WriteFile(scanReport, data); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report saved to: %s\n", scanReport)
	}
	return nil
}
