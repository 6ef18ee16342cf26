package staticcopy

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/staticfiles/internal/build"
	"git.home.luguber.info/inful/staticfiles/internal/copier"
	"git.home.luguber.info/inful/staticfiles/internal/envgate"
	"git.home.luguber.info/inful/staticfiles/internal/errors"
	"git.home.luguber.info/inful/staticfiles/internal/logfields"
	"git.home.luguber.info/inful/staticfiles/internal/metrics"
	"git.home.luguber.info/inful/staticfiles/internal/observability"
	"git.home.luguber.info/inful/staticfiles/internal/plugin"
	"git.home.luguber.info/inful/staticfiles/internal/settings"
	"git.home.luguber.info/inful/staticfiles/internal/version"
)

// PluginName is the registry name of the static-copy reporter.
const PluginName = "static-copy"

// Reporter copies static files after successful builds.
type Reporter struct {
	recorder metrics.Recorder
	logger   *slog.Logger
	newRunID func() string
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Reporter) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewReporter creates a static-copy reporter.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ plugin.Reporter = (*Reporter)(nil)

// Metadata implements plugin.Reporter.
func (r *Reporter) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        PluginName,
		Version:     version.Version,
		Type:        plugin.PluginTypeReporter,
		Description: "Copies static files into build output directories after a successful build",
	}
}

// Result summarises one reaction.
type Result struct {
	RunID          string
	ProjectRoot    string
	OutputDirs     []string
	EntriesCopied  int
	EntriesSkipped int
	Stats          copier.Stats
}

// Report implements plugin.Reporter.
func (r *Reporter) Report(ctx context.Context, event build.Event, opts build.Options) error {
	_, err := r.Run(ctx, event, opts)
	return err
}

// Run performs one reaction and returns its summary. Events other than
// buildSuccess are ignored.
func (r *Reporter) Run(ctx context.Context, event build.Event, opts build.Options) (Result, error) {
	start := time.Now()
	if !event.IsSuccess() {
		r.logger.Debug("Ignoring build event", logfields.Event(string(event.Type)))
		r.recorder.ObserveReaction(time.Since(start), metrics.OutcomeIgnored)
		return Result{}, nil
	}

	res := Result{RunID: r.newRunID()}
	ctx = observability.WithEvent(observability.WithRunID(ctx, res.RunID), string(event.Type))
	log := observability.Logger(ctx, r.logger)

	err := r.run(ctx, log, event, opts, &res)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailed
	}
	r.recorder.ObserveReaction(time.Since(start), outcome)
	if err != nil {
		return res, err
	}

	log.Info("Static files copied",
		logfields.Count(res.Stats.FilesCopied),
		slog.Int("skipped_files", res.Stats.FilesSkipped),
		slog.Int("entries", res.EntriesCopied),
		slog.Int("entries_skipped", res.EntriesSkipped),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return res, nil
}

func (r *Reporter) run(ctx context.Context, log *slog.Logger, event build.Event, opts build.Options, res *Result) error {
	env, root := resolveOptions(opts)
	res.ProjectRoot = settings.FindProjectRoot(env, root)
	set, err := settings.Load(res.ProjectRoot)
	if err != nil {
		return err
	}
	res.OutputDirs = event.BundleGraph.DistDirs()
	log.Debug("Resolved static copy configuration",
		logfields.ProjectRoot(res.ProjectRoot),
		slog.Int("entries", len(set)),
		slog.Any("output_dirs", res.OutputDirs))

	for i, entry := range set {
		entryCtx := observability.WithEntry(ctx, i)
		entryLog := observability.Logger(entryCtx, r.logger)

		step, err := resolveStep(i, entry, res.ProjectRoot, res.OutputDirs, env)
		if err != nil {
			r.recorder.IncEntry(metrics.EntryFailed)
			return err
		}
		switch step.Skip {
		case SkipEnv:
			entryLog.Info("Skipping entry: environment does not match", slog.Any("env", entry.Env))
			r.recorder.IncEntry(metrics.EntrySkippedEnv)
			res.EntriesSkipped++
			continue
		case SkipNoDestination:
			entryLog.Warn("Skipping entry: no output directories", logfields.Source(step.Source))
			r.recorder.IncEntry(metrics.EntryNoDestination)
			res.EntriesSkipped++
			continue
		}

		st, err := r.execute(entryLog, step)
		res.Stats.Add(st)
		r.recorder.AddFilesCopied(st.FilesCopied)
		r.recorder.AddFilesSkipped(st.FilesSkipped)
		if err != nil {
			r.recorder.IncEntry(metrics.EntryFailed)
			if ce, ok := errors.AsClassified(err); ok {
				return ce.WithContext("entry", i)
			}
			return err
		}
		r.recorder.IncEntry(metrics.EntryCopied)
		res.EntriesCopied++
	}
	return nil
}

// execute copies one step into each destination in order.
func (r *Reporter) execute(log *slog.Logger, step Step) (copier.Stats, error) {
	var total copier.Stats
	for _, dest := range step.Destinations {
		var (
			st  copier.Stats
			err error
		)
		if step.SourceIsDir {
			st, err = copier.CopyDir(step.Source, dest, step.Matcher)
		} else {
			st, err = copier.CopyFile(step.Source, dest, step.Matcher)
		}
		total.Add(st)
		if err != nil {
			return total, err
		}
		log.Debug("Copied static source",
			logfields.Source(step.Source),
			logfields.Dest(dest),
			logfields.Glob(step.Matcher.Pattern()),
			logfields.Count(st.FilesCopied))
	}
	return total, nil
}

// Plan resolves every entry the way a reaction would, without copying.
// Non-success events plan nothing.
func (r *Reporter) Plan(event build.Event, opts build.Options) (string, []Step, error) {
	if !event.IsSuccess() {
		return "", nil, nil
	}
	env, root := resolveOptions(opts)
	projectRoot := settings.FindProjectRoot(env, root)
	set, err := settings.Load(projectRoot)
	if err != nil {
		return projectRoot, nil, err
	}
	outputDirs := event.BundleGraph.DistDirs()
	steps := make([]Step, 0, len(set))
	for i, entry := range set {
		step, err := resolveStep(i, entry, projectRoot, outputDirs, env)
		if err != nil {
			return projectRoot, steps, err
		}
		steps = append(steps, step)
	}
	return projectRoot, steps, nil
}

func resolveOptions(opts build.Options) (envgate.Env, string) {
	env := opts.Env
	if env == nil {
		env = envgate.OS()
	}
	root := opts.ProjectRoot
	if root == "" {
		if wd, err := os.Getwd(); err == nil {
			root = settings.DefaultProjectRoot(wd)
		}
	}
	return env, root
}
