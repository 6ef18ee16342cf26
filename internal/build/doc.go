// Package build models the build-lifecycle events staticfiles reacts to.
//
// A bundler reports each lifecycle transition as an Event. Only buildSuccess
// carries a BundleGraph; the output directories of its bundles' targets are
// where static files get copied. Events usually arrive as a JSON build report
// (see LoadReport) or are synthesized from explicit output directories.
package build
