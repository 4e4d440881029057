/*
Package aggregate reduces sequences to single values.

Every operation here reads its source when called and returns an error next
to its result: errors.ErrNoElements when a value is required from an empty
sequence, errors.ErrOverflow when integral arithmetic leaves its range, and
any failure reported by the source itself.

Sums are computed in the element type, so an int32 sum overflows at the
int32 limits. Averages of integers accumulate in 64 bits (int64 for signed
types, uint64 for unsigned ones) and are returned as float64.

The Nullable variants work on pointers: nil elements are ignored, and Min,
Max and Average return nil rather than failing when no element is left.
*/
package aggregate
