package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/staticfiles/internal/build"
	sferrors "git.home.luguber.info/inful/staticfiles/internal/errors"
)

// mockReporter records the events it receives.
type mockReporter struct {
	metadata PluginMetadata
	err      error
	calls    *[]string
}

func (m *mockReporter) Metadata() PluginMetadata { return m.metadata }

func (m *mockReporter) Report(_ context.Context, ev build.Event, _ build.Options) error {
	*m.calls = append(*m.calls, m.metadata.Name+":"+string(ev.Type))
	return m.err
}

func newMockReporter(name string, calls *[]string, err error) *mockReporter {
	return &mockReporter{
		metadata: PluginMetadata{Name: name, Version: "v1.0.0", Type: PluginTypeReporter},
		calls:    calls,
		err:      err,
	}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()
	var calls []string
	p := newMockReporter("static-copy", &calls, nil)

	require.NoError(t, registry.Register(p))
	require.Equal(t, 1, registry.Count())
	require.Error(t, registry.Register(p), "duplicate names are rejected")

	got, err := registry.Get("static-copy")
	require.NoError(t, err)
	require.Same(t, p, got)

	_, err = registry.Get("missing")
	require.Error(t, err)
}

func TestRegistryRegisterInvalid(t *testing.T) {
	registry := NewRegistry()
	require.Error(t, registry.Register(nil))

	var calls []string
	bad := newMockReporter("", &calls, nil)
	require.Error(t, registry.Register(bad))

	badType := newMockReporter("x", &calls, nil)
	badType.metadata.Type = "theme"
	require.Error(t, registry.Register(badType))
}

func TestRegistryDispatchOrder(t *testing.T) {
	registry := NewRegistry()
	var calls []string
	require.NoError(t, registry.Register(newMockReporter("first", &calls, nil)))
	require.NoError(t, registry.Register(newMockReporter("second", &calls, nil)))

	require.NoError(t, registry.Dispatch(context.Background(), build.Event{Type: build.EventBuildSuccess}, build.Options{}))
	require.Equal(t, []string{"first:buildSuccess", "second:buildSuccess"}, calls)
}

func TestRegistryDispatchStopsOnError(t *testing.T) {
	registry := NewRegistry()
	var calls []string
	cause := sferrors.FileSystemError("copy failed").Build()
	require.NoError(t, registry.Register(newMockReporter("broken", &calls, cause)))
	require.NoError(t, registry.Register(newMockReporter("after", &calls, nil)))

	err := registry.Dispatch(context.Background(), build.Event{Type: build.EventBuildSuccess}, build.Options{})
	require.Error(t, err)
	require.Equal(t, []string{"broken:buildSuccess"}, calls)

	var pe *PluginError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "broken", pe.PluginName)
	require.True(t, sferrors.HasCategory(err, sferrors.CategoryFileSystem), "classification survives wrapping")
}

func TestRegistryDispatchClassifiesPlainFailures(t *testing.T) {
	registry := NewRegistry()
	var calls []string
	cause := errors.New("reporter exploded")
	require.NoError(t, registry.Register(newMockReporter("broken", &calls, cause)))

	err := registry.Dispatch(context.Background(), build.Event{Type: build.EventBuildSuccess}, build.Options{})
	require.ErrorIs(t, err, cause)
	require.True(t, sferrors.HasCategory(err, sferrors.CategoryPlugin))

	classified, ok := sferrors.AsClassified(err)
	require.True(t, ok)
	plugin, _ := classified.Context().GetString("plugin")
	require.Equal(t, "broken", plugin)
	require.Equal(t, 11, sferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestRegistryDispatchCanceled(t *testing.T) {
	registry := NewRegistry()
	var calls []string
	require.NoError(t, registry.Register(newMockReporter("p", &calls, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, registry.Dispatch(ctx, build.Event{Type: build.EventBuildSuccess}, build.Options{}), context.Canceled)
	require.Empty(t, calls)
}

func TestPluginMetadataString(t *testing.T) {
	m := PluginMetadata{Name: "static-copy", Version: "v1.0.0", Type: PluginTypeReporter}
	require.Equal(t, "static-copy@v1.0.0 (reporter)", m.String())
}
