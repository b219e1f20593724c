// Package metrics records pipeline and verification metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics stay
// optional. The CLI swaps in a PrometheusRecorder when --metrics-file or
// --metrics-addr is given:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	runner := pipeline.NewRunner().WithRecorder(rec)
//	...
//	_ = rec.WriteTextfile("build.prom")
package metrics
