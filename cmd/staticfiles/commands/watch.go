package commands

import (
	"context"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/staticfiles/internal/build"
	"git.home.luguber.info/inful/staticfiles/internal/config"
	"git.home.luguber.info/inful/staticfiles/internal/errors"
	"git.home.luguber.info/inful/staticfiles/internal/settings"
	"git.home.luguber.info/inful/staticfiles/internal/staticcopy"
	"git.home.luguber.info/inful/staticfiles/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Inputs   `embed:""`
	Debounce *time.Duration `help:"Quiet period after a change before copying, 0 copies immediately (default from config)"`
	Resync   *time.Duration `help:"Also copy on this interval, 0 to disable (default from config)"`
}

func (w *WatchCmd) Run(ctx context.Context, g *Global) error {
	if w.Report == "-" {
		return errors.ValidationError("watch cannot read the build report from stdin").Build()
	}
	if w.debounce(g.Config) < 0 || w.resync(g.Config) < 0 {
		return errors.ValidationError("--debounce and --resync must not be negative").Build()
	}
	opts, err := w.options(g.Config)
	if err != nil {
		return err
	}
	event, err := w.event(nil)
	if err != nil {
		return err
	}
	r, err := newReaction(g, w.metricsFile(g.Config))
	if err != nil {
		return err
	}

	paths, err := watchPaths(r.reporter, event, opts)
	if err != nil {
		return err
	}
	if w.Report != "" {
		paths = append(paths, w.Report)
	}

	watcher := watch.New(func(ctx context.Context) error {
		// The report may be rewritten by the bundler between runs.
		ev, err := w.event(nil)
		if err != nil {
			return err
		}
		return r.dispatch(ctx, ev, opts)
	}, watch.Options{
		Paths:    paths,
		Debounce: w.debounce(g.Config),
		Resync:   w.resync(g.Config),
		Logger:   g.Logger,
	})
	return watcher.Run(ctx)
}

func (w *WatchCmd) debounce(cfg *config.Config) time.Duration {
	if w.Debounce != nil {
		return *w.Debounce
	}
	return cfg.Watch.Debounce
}

func (w *WatchCmd) resync(cfg *config.Config) time.Duration {
	if w.Resync != nil {
		return *w.Resync
	}
	return cfg.Watch.Resync
}

// watchPaths lists the manifest plus every static source an entry would
// copy from, whatever the type of the current event.
func watchPaths(reporter *staticcopy.Reporter, event build.Event, opts build.Options) ([]string, error) {
	planned := build.Event{Type: build.EventBuildSuccess, BundleGraph: event.BundleGraph}
	root, steps, err := reporter.Plan(planned, opts)
	if err != nil {
		return nil, err
	}
	paths := []string{filepath.Join(root, settings.ManifestFile)}
	seen := map[string]bool{paths[0]: true}
	for _, s := range steps {
		if s.Skip == staticcopy.SkipEnv || seen[s.Source] {
			continue
		}
		seen[s.Source] = true
		paths = append(paths, s.Source)
	}
	return paths, nil
}
