package build

import (
	"encoding/json"
	"io"

	"git.home.luguber.info/inful/staticfiles/internal/errors"
)

// LoadReport decodes a JSON build report, e.g.
//
//	{"type":"buildSuccess","bundleGraph":{"bundles":[{"name":"index.js","target":{"distDir":"dist"}}]}}
//
// Unknown fields are ignored so bundlers can emit richer reports.
func LoadReport(r io.Reader) (Event, error) {
	var ev Event
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return Event{}, errors.ValidationError("build report is not valid JSON").WithCause(err).
			Build()
	}
	if !ev.Type.IsValid() {
		return Event{}, errors.ValidationError("unknown build event type").
			WithContext("type", string(ev.Type)).
			Build()
	}
	if ev.IsSuccess() && ev.BundleGraph == nil {
		ev.BundleGraph = &BundleGraph{}
	}
	return ev, nil
}
