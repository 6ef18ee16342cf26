package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"git.home.luguber.info/inful/staticfiles/internal/staticcopy"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Inputs `embed:""`
}

func (c *CheckCmd) Run(_ context.Context, g *Global) error {
	event, err := c.event(os.Stdin)
	if err != nil {
		return err
	}
	opts, err := c.options(g.Config)
	if err != nil {
		return err
	}
	reporter := staticcopy.NewReporter(staticcopy.WithLogger(g.Logger))
	root, steps, err := reporter.Plan(event, opts)
	if err != nil {
		return err
	}
	if !event.IsSuccess() {
		_, _ = fmt.Fprintf(g.Out, "event %s: nothing to copy\n", event.Type)
		return nil
	}
	printPlan(g.Out, root, steps)
	return nil
}

func printPlan(w io.Writer, root string, steps []staticcopy.Step) {
	_, _ = fmt.Fprintf(w, "project root: %s\n", root)
	if len(steps) == 0 {
		_, _ = fmt.Fprintln(w, "no entries configured")
		return
	}
	for _, s := range steps {
		_, _ = fmt.Fprintf(w, "entry %d:", s.Index+1)
		switch s.Skip {
		case staticcopy.SkipEnv:
			_, _ = fmt.Fprintf(w, " skipped (environment mismatch: %s)\n", formatEnv(s.Entry.Env))
			continue
		case staticcopy.SkipNoDestination:
			_, _ = fmt.Fprintf(w, " skipped (no output directories) source %s\n", s.Source)
			continue
		}
		kind := "file"
		if s.SourceIsDir {
			kind = "dir"
		}
		_, _ = fmt.Fprintf(w, " %s %s glob %q\n", kind, s.Source, s.Matcher.Pattern())
		for _, d := range s.Destinations {
			_, _ = fmt.Fprintf(w, "  -> %s\n", d)
		}
	}
}

func formatEnv(env map[string]string) string {
	parts := make([]string, 0, len(env))
	for k, v := range env {
		parts = append(parts, k+"="+v)
	}
	slices.Sort(parts)
	return strings.Join(parts, ", ")
}
