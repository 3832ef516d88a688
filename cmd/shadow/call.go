package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/clock"
	"github.com/verte-zerg/shadow/internal/report"
	"github.com/verte-zerg/shadow/internal/session"
)

const defaultCallWidth = 80

var comboStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call",
		Short: "Run a session without the TUI, printing call-outs",
		Args:  cobra.NoArgs,
		RunE:  runCallCmd,
	}
}

func runCallCmd(cmd *cobra.Command, _ []string) error {
	setup, err := resolveSession(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupDebugLog()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	c := newCaller(out, isTerminal(out), terminalWidth(out))

	loop := clock.NewLoop()
	ctrl := session.NewController(setup.catalog, loop, c.listener(loop),
		session.WithCadence(setup.cadence),
		session.WithSource(setup.source))
	defer ctrl.Close()

	if err := setup.applyTo(ctrl); err != nil {
		return err
	}
	if err := c.header(setup.catalog, ctrl); err != nil {
		return err
	}
	if err := ctrl.Start(ctrl.Selection()); err != nil {
		if errors.Is(err, session.ErrEmptySelection) {
			return fmt.Errorf("%w (use --drill or set drills in the config)", err)
		}
		return fmt.Errorf("failed to start session: %w", err)
	}
	if s, ok := ctrl.Session(); ok {
		log.Printf("session %s started: %d drills", s.ID(), s.PoolSize())
		c.session = s
	}

	if err := loop.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			ctrl.Cancel()
			c.finishLine()
			logErrln("Session stopped")
			return nil
		}
		return err
	}
	return c.err
}

// caller prints session events as text. All methods run on the loop.
type caller struct {
	out     io.Writer
	tty     bool
	width   int
	bar     progress.Model
	session *session.Session
	last    string
	err     error
}

func newCaller(out io.Writer, tty bool, width int) *caller {
	bar := progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage())
	bar.Width = width / 2
	return &caller{out: out, tty: tty, width: width, bar: bar}
}

func (c *caller) listener(loop *clock.Loop) session.Listener {
	return session.ListenerFuncs{
		ComboChanged: c.combo,
		Progress:     c.progress,
		Complete: func() {
			c.finishLine()
			c.printf("Session complete\n")
			log.Printf("session complete")
			loop.Exit()
		},
	}
}

func (c *caller) header(cat catalog.Catalog, ctrl *session.Controller) error {
	sel := ctrl.Selection()
	var names []string
	for i, ex := range cat.Exercises {
		if sel.Checked(i) {
			names = append(names, ex.Name)
		}
	}
	pace := catalog.FormatNumber(sel.Pace()) + " seconds per combo"
	for _, p := range cat.Paces {
		if p.TimeoutInSec == sel.Pace() {
			pace = catalog.PaceLabel(p)
		}
	}
	_, err := fmt.Fprintf(c.out, "%s\n%s, %s\nDrills: %s\n\n",
		report.Title(cat), report.FormatMinutes(sel.Duration()), pace, strings.Join(names, ", "))
	return err
}

func (c *caller) combo(d catalog.Drill) {
	line := d.ShortName
	if d.LongName != "" && d.LongName != d.ShortName {
		line += "  " + d.LongName
	}
	line = runewidth.Truncate(line, c.width, "…")
	if c.tty {
		c.clearLine()
		line = comboStyle.Render(line)
	}
	c.printf("%s\n", line)
	if c.tty && c.last != "" {
		c.printf("%s", c.last)
	}
}

func (c *caller) progress(fraction float64) {
	if !c.tty || c.session == nil {
		return
	}
	line := c.bar.ViewAs(fraction) + " " + report.FormatRemaining(c.session.Remaining())
	if line == c.last {
		return
	}
	c.clearLine()
	c.last = line
	c.printf("%s", line)
}

func (c *caller) clearLine() {
	c.printf("\r\x1b[K")
}

func (c *caller) finishLine() {
	if c.tty && c.last != "" {
		c.clearLine()
		c.last = ""
	}
}

func (c *caller) printf(format string, args ...any) {
	if c.err != nil {
		return
	}
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		c.err = fmt.Errorf("failed to write output: %w", err)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultCallWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultCallWidth
	}
	return width
}
