/*
Package sequence provides lazily evaluated sequences and the deferred
operators that compose them.

A Sequence produces Cursors. Building an operator chain does no work: the
functions given to Where, Select and the other operators run only while a
cursor is advanced, and they run again on every new cursor.

	evens := sequence.Where(sequence.Range(1, 10), func(n int) bool { return n%2 == 0 })
	squares := sequence.Select(evens, func(n int) int { return n * n })

	for v := range sequence.Values(squares) {
		fmt.Println(v)
	}

Argument errors, such as a nil source or a nil function, panic with an
*errors.ValidationError when the operator is built. Failures that happen
during a traversal, such as a failing TrySelect projection or an invalid
Cast, stop the cursor and are reported by Cursor.Err and by the terminal
operations, which all return an error.

Operators that buffer their input (Reverse, Intersect, Except) read it when
the cursor is first advanced, never when the operator is built.

Sequences can be observed without changing their semantics: WithMetrics
records traversals in Prometheus and Trace logs them through logr.
*/
package sequence
