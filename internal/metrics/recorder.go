package metrics

import "time"

// EntryResult labels how a configuration entry was handled.
type EntryResult string

const (
	EntryCopied        EntryResult = "copied"
	EntrySkippedEnv    EntryResult = "skipped_env"
	EntryNoDestination EntryResult = "no_destination"
	EntryFailed        EntryResult = "failed"
)

// Outcome labels a whole reaction.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeIgnored Outcome = "ignored" // event was not a build success
	OutcomeFailed  Outcome = "failed"
)

// Recorder defines observability hooks for copy reactions.
type Recorder interface {
	AddFilesCopied(n int)
	AddFilesSkipped(n int)
	IncEntry(result EntryResult)
	ObserveReaction(d time.Duration, outcome Outcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) AddFilesCopied(int)                     {}
func (NoopRecorder) AddFilesSkipped(int)                    {}
func (NoopRecorder) IncEntry(EntryResult)                   {}
func (NoopRecorder) ObserveReaction(time.Duration, Outcome) {}
