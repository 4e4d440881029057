/*
Package metrics provides Prometheus instrumentation for seqflow.

Sequences are instrumented by wrapping them with sequence.WithMetrics; the
Redis list source records its page fetches when its Config carries an enabled
metrics.Config. Every wrapped sequence is identified by the "sequence" label,
every source by the "source" label.

Sequence metrics:
  - seqflow_sequence_traversals_total
  - seqflow_sequence_elements_total
  - seqflow_sequence_errors_total
  - seqflow_sequence_active_cursors
  - seqflow_sequence_traversal_duration_seconds

Source metrics:
  - seqflow_source_fetches_total
  - seqflow_source_fetch_errors_total
  - seqflow_source_fetch_duration_seconds

Basic usage:

	reg := prometheus.NewRegistry()
	cfg := metrics.Config{Enabled: true, Registry: reg}

	orders := sequence.WithMetrics(sequence.FromSlice(rows), "orders", cfg)
	total, err := aggregate.SumOf(orders, func(o Order) int64 { return o.Cents })

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

For caches registries per registerer and namespace, so wrapping many
sequences with the same Config registers the collectors once.
*/
package metrics
