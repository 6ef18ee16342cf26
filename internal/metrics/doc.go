// Package metrics records copy activity for staticfiles.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default; PrometheusRecorder is used when a metrics file is configured,
// and its registry is written in the Prometheus text format after each
// reaction (suitable for the node_exporter textfile collector).
package metrics
