package build

import (
	"git.home.luguber.info/inful/staticfiles/internal/envgate"
)

// EventType discriminates build lifecycle events.
type EventType string

const (
	EventBuildStart    EventType = "buildStart"
	EventBuildProgress EventType = "buildProgress"
	EventBuildSuccess  EventType = "buildSuccess"
	EventBuildFailure  EventType = "buildFailure"
	EventWatchStart    EventType = "watchStart"
	EventWatchEnd      EventType = "watchEnd"
)

// IsValid reports whether t is a known event type.
func (t EventType) IsValid() bool {
	switch t {
	case EventBuildStart, EventBuildProgress, EventBuildSuccess, EventBuildFailure, EventWatchStart, EventWatchEnd:
		return true
	default:
		return false
	}
}

// Event is one build-lifecycle notification.
type Event struct {
	Type EventType `json:"type"`
	// BundleGraph is only populated for buildSuccess.
	BundleGraph *BundleGraph `json:"bundleGraph,omitempty"`
}

// IsSuccess reports whether the event is a successful build completion.
func (e Event) IsSuccess() bool {
	return e.Type == EventBuildSuccess
}

// BundleGraph exposes the bundles produced by a build.
type BundleGraph struct {
	Bundles []Bundle `json:"bundles"`
}

// Bundle is one build output. Target may be nil for inline bundles.
type Bundle struct {
	Name   string  `json:"name,omitempty"`
	Type   string  `json:"type,omitempty"`
	Target *Target `json:"target,omitempty"`
}

// Target is the build target a bundle was emitted for.
type Target struct {
	Name    string `json:"name,omitempty"`
	DistDir string `json:"distDir,omitempty"`
}

// DistDirs returns the unique output directories declared by the bundles'
// targets, in first-seen order. A nil graph has none.
func (g *BundleGraph) DistDirs() []string {
	if g == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(g.Bundles))
	var dirs []string
	for _, b := range g.Bundles {
		if b.Target == nil || b.Target.DistDir == "" {
			continue
		}
		if _, dup := seen[b.Target.DistDir]; dup {
			continue
		}
		seen[b.Target.DistDir] = struct{}{}
		dirs = append(dirs, b.Target.DistDir)
	}
	return dirs
}

// Options is the build-options context handed to reporters.
type Options struct {
	// Env is the environment snapshot of the build.
	Env envgate.Env
	// ProjectRoot is the build tool's own notion of the project root, used
	// when no package-manager marker points elsewhere.
	ProjectRoot string
}

// SuccessFromDistDirs synthesizes a buildSuccess event with one bundle per
// output directory.
func SuccessFromDistDirs(dirs ...string) Event {
	graph := &BundleGraph{Bundles: make([]Bundle, 0, len(dirs))}
	for _, d := range dirs {
		graph.Bundles = append(graph.Bundles, Bundle{Target: &Target{DistDir: d}})
	}
	return Event{Type: EventBuildSuccess, BundleGraph: graph}
}
