// Package plugin provides the reporter plugin system staticfiles dispatches
// build-lifecycle events through. Reporters observe events and perform side
// effects (such as copying static files) after a build.
package plugin

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/staticfiles/internal/build"
)

// Reporter reacts to build-lifecycle events.
type Reporter interface {
	// Metadata returns the plugin's metadata (name, version, type).
	Metadata() PluginMetadata

	// Report handles one event. Reporters ignore event types they do not care
	// about and return nil.
	Report(ctx context.Context, event build.Event, opts build.Options) error
}

// PluginMetadata describes a plugin's identity.
type PluginMetadata struct {
	// Name is the unique plugin identifier (e.g., "static-copy").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Type identifies the plugin category.
	Type PluginType

	// Description provides a human-readable summary of the plugin's purpose.
	Description string
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}
