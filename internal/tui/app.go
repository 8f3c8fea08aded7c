// Package tui provides the interactive terminal front end.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/lanscan/internal/iprange"
	"github.com/user/lanscan/internal/model"
	"github.com/user/lanscan/internal/scanner"
	"github.com/user/lanscan/internal/util"
)

var errInvalidEntry = errors.New("invalid IP address entered")

// LocalResolver finds the machine's own address.
type LocalResolver interface {
	Resolve() (iprange.IPv4, error)
}

// Options holds answers given up front; empty fields are prompted for.
type Options struct {
	Mode      string
	Start     string
	End       string
	AssumeYes bool
}

// App is the interactive scan session.
type App struct {
	config   *util.Config
	resolver LocalResolver
	engine   *scanner.Engine
	prompter *Prompter
	out      io.Writer
	live     func(ctx context.Context, plan scanner.Plan) ([]model.ScanResult, error)
}

// NewApp creates a new TUI application writing to out.
func NewApp(cfg *util.Config, resolver LocalResolver, engine *scanner.Engine, prompter *Prompter, out io.Writer) *App {
	a := &App{
		config:   cfg,
		resolver: resolver,
		engine:   engine,
		prompter: prompter,
		out:      out,
	}
	a.live = func(ctx context.Context, plan scanner.Plan) ([]model.ScanResult, error) {
		return RunLive(ctx, a.engine, plan, a.config.LiveRows, tea.WithOutput(a.out))
	}
	return a
}

// Run walks the whole session: banner, mode, range, confirmation, live scan,
// results and the exit prompt. A nil session with a nil error means the user
// declined to scan.
func (a *App) Run(ctx context.Context, opts Options) (*model.ScanSession, error) {
	fmt.Fprintln(a.out, BannerStyle.Render("lanscan"))
	fmt.Fprintln(a.out, HighlightStyle.Render("This network scanner can only be used for class C (/24) networks!"))
	fmt.Fprintln(a.out)

	session, err := a.session(ctx, opts)
	if err != nil && !errors.Is(err, ErrAborted) {
		fmt.Fprintln(a.out, ErrorStyle.Render("Error: "+err.Error()))
	}
	fmt.Fprintln(a.out)

	if opts.AssumeYes || errors.Is(err, ErrAborted) {
		return session, err
	}

	for {
		exit, perr := a.prompter.Confirm("Exit the program?", false)
		if perr != nil || exit {
			break
		}
	}
	return session, err
}

func (a *App) session(ctx context.Context, opts Options) (*model.ScanSession, error) {
	mode, err := a.chooseMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(a.out, NoteStyle.Render(fmt.Sprintf("Mode is set to %s", titleCase(string(mode)))))
	fmt.Fprintln(a.out)

	local, err := a.resolver.Resolve()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "Your IP-Address is %s.\n", HighlightStyle.Render(local.String()))

	plan, err := a.plan(mode, local, opts)
	if err != nil {
		return nil, err
	}
	if plan.PrefixOverridden {
		fmt.Fprintln(a.out, WarningStyle.Render(fmt.Sprintf(
			"Only the last octet is used; addresses are taken from %s/24.", local.WithLastOctet(0))))
	}

	fmt.Fprintf(a.out, "The program will scan for devices in the range from %s to %s\n\n",
		HighlightStyle.Render(plan.Range.Start.String()),
		HighlightStyle.Render(plan.Range.End.String()))

	if !opts.AssumeYes {
		run, err := a.prompter.Confirm("Run scanner?", true)
		if err != nil {
			return nil, err
		}
		if !run {
			util.Info("Scan of %s declined", plan.Range)
			return nil, nil
		}
	}

	session := &model.ScanSession{
		Mode:      plan.Mode,
		Local:     plan.Local,
		Range:     plan.Range,
		StartedAt: time.Now(),
	}

	results, err := a.live(ctx, plan)
	if err != nil {
		return nil, err
	}
	session.FinishedAt = time.Now()
	session.Results = results
	session.Summary = scanner.Summarize(results)

	util.Info("Scan of %s finished: %d/%d online in %s",
		plan.Range, session.Summary.OnlineCount, session.Summary.Total, session.Duration().Round(time.Millisecond))

	fmt.Fprint(a.out, RenderResults(results, session.Summary))
	return session, nil
}

func (a *App) chooseMode(given string) (model.Mode, error) {
	if given != "" {
		return model.ParseMode(given)
	}

	def := 0
	if m, err := model.ParseMode(a.config.DefaultMode); err == nil && m == model.ModeManual {
		def = 1
	}
	choice, err := a.prompter.Select("In which mode should the network be tested?", []string{"Auto", "Manual"}, def)
	if err != nil {
		return "", err
	}
	return model.ParseMode(choice)
}

func (a *App) plan(mode model.Mode, local iprange.IPv4, opts Options) (scanner.Plan, error) {
	if mode == model.ModeAuto {
		return scanner.PlanAuto(local), nil
	}

	start, err := a.address("Enter the start IP address:", opts.Start)
	if err != nil {
		return scanner.Plan{}, err
	}
	end, err := a.address("Enter the stop IP address:", opts.End)
	if err != nil {
		return scanner.Plan{}, err
	}
	return scanner.PlanManual(local, start, end, a.config.StrictManual)
}

// address returns given when set, otherwise prompts until a valid address is typed.
func (a *App) address(title, given string) (string, error) {
	if given != "" {
		return given, nil
	}
	return a.prompter.Input(title, func(s string) error {
		if _, err := iprange.Parse(s); err != nil {
			return errInvalidEntry
		}
		return nil
	})
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
