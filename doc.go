/*
Package seqflow provides deferred, composable query operators over sequences.

Sequences (pkg/sequence):
  - Sequence and Cursor: the pull-based element source contract
  - sources: FromSlice, Range, Repeat, Generate, FromIter, FromChannel
  - operators: Where, Select, SelectMany, Concat, Take, Skip, Distinct,
    Union, Intersect, Except, Reverse, Zip, Cast, OfType and more
  - elements: First, Last, Single, ElementAt and their OrDefault forms
  - observation: WithMetrics (Prometheus) and Trace (logr)

Queries:
  - grouping: GroupBy, ToLookup, ToMap and ToDictionary
  - ordering: stable multi-key OrderBy / ThenBy
  - join: Join and GroupJoin on matching keys
  - aggregate: Count, Sum, Average, Min, Max, Fold and Reduce

Sources (pkg/source):
  - redislist: a paged Redis list
  - schedule: activation times of a cron expression

Example usage:

	import (
		"github.com/vnykmshr/seqflow/pkg/aggregate"
		"github.com/vnykmshr/seqflow/pkg/sequence"
	)

	evens := sequence.Where(sequence.Range(1, 100), func(n int) bool { return n%2 == 0 })
	total, err := aggregate.Sum(evens) // nothing runs until Sum pulls
*/
package seqflow
