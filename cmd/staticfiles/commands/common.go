package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/staticfiles/internal/build"
	"git.home.luguber.info/inful/staticfiles/internal/config"
	"git.home.luguber.info/inful/staticfiles/internal/envgate"
	"git.home.luguber.info/inful/staticfiles/internal/errors"
	"git.home.luguber.info/inful/staticfiles/internal/logfields"
	"git.home.luguber.info/inful/staticfiles/internal/metrics"
	"git.home.luguber.info/inful/staticfiles/internal/plugin"
	"git.home.luguber.info/inful/staticfiles/internal/staticcopy"
)

// Global carries state shared by every subcommand.
type Global struct {
	Out    io.Writer
	Logger *slog.Logger
	Config *config.Config
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Runner configuration file path" default:"staticfiles.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Copy  CopyCmd  `cmd:"" help:"Copy static files into the output directories of a successful build"`
	Check CheckCmd `cmd:"" help:"Resolve and print the copy plan without copying"`
	Watch WatchCmd `cmd:"" help:"Copy, then re-copy whenever static sources change"`
}

// AfterApply runs after flag parsing; loads the runner config and sets up
// logging once.
func (c *CLI) AfterApply(g *Global) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		g.Logger = slog.Default()
		return err
	}
	level := cfg.EffectiveLogLevel(c.Verbose, os.LookupEnv)
	g.Config = cfg
	g.Logger = config.NewLogger(os.Stderr, level, cfg.LogFormat)
	slog.SetDefault(g.Logger)
	return nil
}

// Inputs are the flags every reaction-driving command accepts.
type Inputs struct {
	Report      string   `help:"JSON build report to react to ('-' for stdin)" placeholder:"FILE" xor:"event"`
	DistDir     []string `name:"dist-dir" help:"Build output directory, relative paths resolve against the project root (repeatable)" placeholder:"DIR" xor:"event"`
	ProjectRoot string   `name:"project-root" help:"Project root used when no package manager marker is set" placeholder:"DIR"`
	EnvFile     []string `name:"env-file" help:"Dotenv file merged under the process environment (repeatable)" placeholder:"FILE"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus metrics to this file after each run" placeholder:"FILE"`
}

// event builds the build event the reaction responds to.
func (in *Inputs) event(stdin io.Reader) (build.Event, error) {
	switch {
	case in.Report == "-":
		return build.LoadReport(stdin)
	case in.Report != "":
		f, err := os.Open(in.Report)
		if err != nil {
			if os.IsNotExist(err) {
				return build.Event{}, errors.NotFoundError("build report not found").WithCause(err).
					WithContext("path", in.Report).
					Build()
			}
			return build.Event{}, errors.FileSystemError("cannot open build report").WithCause(err).
				WithContext("path", in.Report).
				Build()
		}
		defer func() { _ = f.Close() }()
		return build.LoadReport(f)
	case len(in.DistDir) > 0:
		// Relative directories are resolved by the reporter against the
		// project root, the same way report distDirs are.
		return build.SuccessFromDistDirs(in.DistDir...), nil
	default:
		return build.Event{}, errors.ValidationError("either --report or --dist-dir is required").Build()
	}
}

// options builds the reporter options. Flags win over the runner config.
func (in *Inputs) options(cfg *config.Config) (build.Options, error) {
	files := in.EnvFile
	if len(files) == 0 {
		files = cfg.EnvFiles
	}
	env, err := envgate.Snapshot(files...)
	if err != nil {
		return build.Options{}, errors.ConfigError("cannot read env file").WithCause(err).Build()
	}

	root := in.ProjectRoot
	if root == "" {
		root = cfg.ProjectRoot
	}
	if root != "" {
		if root, err = filepath.Abs(root); err != nil {
			return build.Options{}, errors.ValidationError("invalid project root").WithCause(err).Build()
		}
	}
	return build.Options{Env: env, ProjectRoot: root}, nil
}

func (in *Inputs) metricsFile(cfg *config.Config) string {
	if in.MetricsFile != "" {
		return in.MetricsFile
	}
	return cfg.MetricsFile
}

// reaction wires the static-copy reporter into a plugin registry together
// with its metrics sink.
type reaction struct {
	registry    *plugin.Registry
	reporter    *staticcopy.Reporter
	recorder    *metrics.PrometheusRecorder
	metricsFile string
	logger      *slog.Logger
}

func newReaction(g *Global, metricsFile string) (*reaction, error) {
	r := &reaction{registry: plugin.NewRegistry(), metricsFile: metricsFile, logger: g.Logger}
	opts := []staticcopy.Option{staticcopy.WithLogger(g.Logger)}
	if metricsFile != "" {
		r.recorder = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, staticcopy.WithRecorder(r.recorder))
	}
	r.reporter = staticcopy.NewReporter(opts...)
	if err := r.registry.Register(r.reporter); err != nil {
		return nil, errors.InternalError("cannot register reporter").WithCause(err).Build()
	}
	return r, nil
}

// dispatch delivers event to every registered reporter, then flushes metrics.
func (r *reaction) dispatch(ctx context.Context, event build.Event, opts build.Options) error {
	err := r.registry.Dispatch(ctx, event, opts)
	if r.recorder != nil {
		if werr := r.recorder.WriteTextfile(r.metricsFile); werr != nil {
			r.logger.Warn("Failed to write metrics file", logfields.Path(r.metricsFile), logfields.Error(werr))
		}
	}
	return err
}
